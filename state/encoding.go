package state

import (
	"encoding/json"
	"fmt"
)

// Wire form of a stored record. Field order is fixed by the struct, so
// encoding the same record always yields the same bytes; both store backends
// persist exactly these bytes, keeping records portable between them.
type jsonStatus struct {
	Kind      StatusKind `json:"kind"`
	ToTxnHash string     `json:"to_txn_hash,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type jsonRequest struct {
	ToBlockchain     string     `json:"to_blockchain"`
	ToToken          string     `json:"to_token"`
	ToAddress        string     `json:"to_address"`
	FromTokenAddress *string    `json:"from_token_address,omitempty"`
	FromAmountAtom   string     `json:"from_amount_atom"`
	Status           jsonStatus `json:"status"`
}

// EncodeRequest serializes a record to its canonical stored form. Records
// with a status kind outside the four known ones are rejected rather than
// written; a corrupt status must never reach the store.
func EncodeRequest(r *BridgeRequest) ([]byte, error) {
	switch r.Status.Kind {
	case StatusCreated, StatusDoing, StatusError, StatusDone:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, r.Status.Kind)
	}
	return json.Marshal(&jsonRequest{
		ToBlockchain:     r.ToBlockchain,
		ToToken:          r.ToToken,
		ToAddress:        r.ToAddress,
		FromTokenAddress: r.FromTokenAddress,
		FromAmountAtom:   r.FromAmountAtom,
		Status: jsonStatus{
			Kind:      r.Status.Kind,
			ToTxnHash: r.Status.ToTxnHash,
			Error:     r.Status.ErrMsg,
		},
	})
}

// DecodeRequest parses the stored form back into a record.
func DecodeRequest(data []byte) (*BridgeRequest, error) {
	var w jsonRequest
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	switch w.Status.Kind {
	case StatusCreated, StatusDoing, StatusError, StatusDone:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, w.Status.Kind)
	}
	return &BridgeRequest{
		ToBlockchain:     w.ToBlockchain,
		ToToken:          w.ToToken,
		ToAddress:        w.ToAddress,
		FromTokenAddress: w.FromTokenAddress,
		FromAmountAtom:   w.FromAmountAtom,
		Status: RequestStatus{
			Kind:      w.Status.Kind,
			ToTxnHash: w.Status.ToTxnHash,
			ErrMsg:    w.Status.Error,
		},
	}, nil
}
