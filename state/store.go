package state

// RequestStore is the persistence contract of the bridge. Two logical slots:
// the fixed operator account set once at initialization, and one request
// record per requester account. Implementations never delete records; a
// requester's slot is only ever overwritten by a newer request.
//
// The store needs no locking of its own. The Bridge serializes every
// load-check-write sequence, so store calls never interleave per instance.
type RequestStore interface {
	// GetRequest returns the stored record for the account, or (nil, nil)
	// when no record exists.
	GetRequest(account string) (*BridgeRequest, error)

	// PutRequest inserts or unconditionally overwrites the account's record.
	PutRequest(account string, r *BridgeRequest) error

	// GetOperator returns the operator account and whether it has been set.
	GetOperator() (string, bool, error)

	// SetOperator persists the operator account. Called once, at
	// initialization time.
	SetOperator(account string) error

	Close() error
}
