package state

import (
	"fmt"
	"math/big"
)

type StatusKind string

const (
	StatusCreated StatusKind = "created" // requester filed the request, nothing happened yet
	StatusDoing   StatusKind = "doing"   // operator picked it up and sent the destination tx
	StatusError   StatusKind = "error"   // operator reported a failure, terminal
	StatusDone    StatusKind = "done"    // operator reported success, terminal
)

// RequestStatus is a tagged status. ToTxnHash is set for doing/error/done,
// ErrMsg only for error. Fields outside the kind's payload stay empty.
type RequestStatus struct {
	Kind      StatusKind
	ToTxnHash string
	ErrMsg    string
}

// IsTerminal reports whether no further transition is possible. A terminal
// record may only be superseded by a brand-new request from the same account.
func (s RequestStatus) IsTerminal() bool {
	return s.Kind == StatusError || s.Kind == StatusDone
}

// BridgeRequest is the single in-flight (or settled) transfer request of one
// requester account. The destination-side fields are caller-supplied and
// opaque here.
type BridgeRequest struct {
	ToBlockchain     string
	ToToken          string
	ToAddress        string
	FromTokenAddress *string // token-funded path, not implemented
	FromAmountAtom   string  // attached native value in atoms, base-10
	Status           RequestStatus
}

// newBridgeRequest builds the candidate record for a fresh request. The
// attached amount funds the transfer when no from-token address is given;
// the token-funded path is rejected before anything else is looked at.
func newBridgeRequest(toBlockchain, toToken, toAddress string, fromTokenAddress *string, attachedAtom *big.Int) (*BridgeRequest, error) {
	if fromTokenAddress != nil {
		return nil, fmt.Errorf("%w: token-funded transfer", ErrNotImplemented)
	}
	if attachedAtom == nil {
		attachedAtom = new(big.Int)
	}
	if attachedAtom.Sign() < 0 {
		return nil, fmt.Errorf("%w: attached amount %s", ErrAmountInvalid, attachedAtom)
	}
	return &BridgeRequest{
		ToBlockchain:     toBlockchain,
		ToToken:          toToken,
		ToAddress:        toAddress,
		FromTokenAddress: fromTokenAddress,
		FromAmountAtom:   attachedAtom.String(),
		Status:           RequestStatus{Kind: StatusCreated},
	}, nil
}

// markDoing moves created -> doing, recording the destination tx hash.
func (r *BridgeRequest) markDoing(toTxnHash string) error {
	switch r.Status.Kind {
	case StatusCreated:
		r.Status = RequestStatus{Kind: StatusDoing, ToTxnHash: toTxnHash}
		return nil
	case StatusDoing, StatusError, StatusDone:
		return fmt.Errorf("%w: expect request to be created, got %s", ErrInvalidTransition, r.Status.Kind)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, r.Status.Kind)
	}
}

// markDone moves doing -> done. The recorded tx hash is carried over so a
// settled request still names the destination tx it refers to.
func (r *BridgeRequest) markDone() error {
	switch r.Status.Kind {
	case StatusDoing:
		r.Status = RequestStatus{Kind: StatusDone, ToTxnHash: r.Status.ToTxnHash}
		return nil
	case StatusCreated, StatusError, StatusDone:
		return fmt.Errorf("%w: expect request to be doing, got %s", ErrInvalidTransition, r.Status.Kind)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, r.Status.Kind)
	}
}

// markError moves doing -> error, keeping the tx hash for the audit trail.
func (r *BridgeRequest) markError(errMsg string) error {
	switch r.Status.Kind {
	case StatusDoing:
		r.Status = RequestStatus{Kind: StatusError, ToTxnHash: r.Status.ToTxnHash, ErrMsg: errMsg}
		return nil
	case StatusCreated, StatusError, StatusDone:
		return fmt.Errorf("%w: expect request to be doing, got %s", ErrInvalidTransition, r.Status.Kind)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, r.Status.Kind)
	}
}
