// Bridge request lifecycle control. One request slot per requester account;
// requesters file new requests, the fixed operator advances them through
// doing and on to done or error. The actual cross-chain settlement happens
// out-of-band: a relayer watches for "doing" requests and performs the
// transfer on the destination chain.

package state

import (
	"math/big"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/halfmooncross/bridge-go/common"
)

// Bridge enforces the transition and authorization rules over a RequestStore.
//
// The host chain executed the original contract one call at a time; the
// mutex reproduces that here, serializing every load-check-write sequence.
type Bridge struct {
	mu       sync.Mutex
	store    RequestStore
	operator string
}

// Initialize sets up a fresh instance: validates and persists the operator
// account, which is fixed for the instance's lifetime. Fails with
// ErrAlreadyInitialized if the store already carries an operator.
func Initialize(store RequestStore, operatorAccount string) (*Bridge, error) {
	if !common.IsValidAccountID(operatorAccount) {
		return nil, ErrInvalidOwner
	}

	_, ok, err := store.GetOperator()
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, ErrAlreadyInitialized
	}

	if err := store.SetOperator(operatorAccount); err != nil {
		return nil, err
	}

	logger.WithField("operator", operatorAccount).Info("bridge initialized")
	return &Bridge{store: store, operator: operatorAccount}, nil
}

// Load resumes an instance whose operator was persisted by an earlier
// Initialize. Fails with ErrNotInitialized on a fresh store.
func Load(store RequestStore) (*Bridge, error) {
	operator, ok, err := store.GetOperator()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotInitialized
	}
	return &Bridge{store: store, operator: operator}, nil
}

// Operator returns the fixed operator account.
func (b *Bridge) Operator() string {
	return b.operator
}

// AddBridgeRequest files a new request on behalf of caller. The attached
// native value (in atoms) funds the transfer. An existing non-terminal
// request blocks the new one; a settled (done/error) record is overwritten.
func (b *Bridge) AddBridgeRequest(caller, toBlockchain, toToken, toAddress string, fromTokenAddress *string, attachedAtom *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	candidate, err := newBridgeRequest(toBlockchain, toToken, toAddress, fromTokenAddress, attachedAtom)
	if err != nil {
		return err
	}

	existing, err := b.store.GetRequest(caller)
	if err != nil {
		return err
	}
	if existing != nil && !existing.Status.IsTerminal() {
		return ErrUnfinishedRequest
	}

	if err := b.store.PutRequest(caller, candidate); err != nil {
		return err
	}

	logger.WithFields(logger.Fields{
		"requester":     caller,
		"to_blockchain": toBlockchain,
		"to_token":      toToken,
		"amount_atom":   candidate.FromAmountAtom,
	}).Debug("bridge request created")
	return nil
}

// SetRequestDoing records the destination tx hash and moves the requester's
// request from created to doing. Operator only; the owner check runs before
// the lookup, so a non-operator learns nothing about the slot's existence.
func (b *Bridge) SetRequestDoing(caller, requester, toTxnHash string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if caller != b.operator {
		return ErrNotOwner
	}

	existing, err := b.store.GetRequest(requester)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRequestNotFound
	}

	if err := existing.markDoing(toTxnHash); err != nil {
		return err
	}
	if err := b.store.PutRequest(requester, existing); err != nil {
		return err
	}

	logger.WithFields(logger.Fields{
		"requester":   requester,
		"to_txn_hash": toTxnHash,
	}).Debug("bridge request doing")
	return nil
}

// SetRequestDone settles the requester's doing request as successful.
func (b *Bridge) SetRequestDone(caller, requester string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if caller != b.operator {
		return ErrNotOwner
	}

	existing, err := b.store.GetRequest(requester)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRequestNotFound
	}

	if err := existing.markDone(); err != nil {
		return err
	}
	if err := b.store.PutRequest(requester, existing); err != nil {
		return err
	}

	logger.WithFields(logger.Fields{
		"requester":   requester,
		"to_txn_hash": existing.Status.ToTxnHash,
	}).Debug("bridge request done")
	return nil
}

// SetRequestError settles the requester's doing request as failed, keeping
// the destination tx hash alongside the operator's error message.
func (b *Bridge) SetRequestError(caller, requester, errMsg string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if caller != b.operator {
		return ErrNotOwner
	}

	existing, err := b.store.GetRequest(requester)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRequestNotFound
	}

	if err := existing.markError(errMsg); err != nil {
		return err
	}
	if err := b.store.PutRequest(requester, existing); err != nil {
		return err
	}

	logger.WithFields(logger.Fields{
		"requester": requester,
		"error":     errMsg,
	}).Debug("bridge request error")
	return nil
}

// GetRequestStatus returns the requester's stored record, nil if none.
// Readable by anyone, no authorization.
func (b *Bridge) GetRequestStatus(requester string) (*BridgeRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.store.GetRequest(requester)
}
