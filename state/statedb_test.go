package state

import (
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestStateDB(t *testing.T) *StateDB {
	db, err := NewStateDB("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStateDBRequestSlot(t *testing.T) {
	db := newTestStateDB(t)

	// empty slot
	r, err := db.GetRequest("alice.near")
	assert.NoError(t, err)
	assert.Nil(t, r)

	// insert
	r0 := &BridgeRequest{
		ToBlockchain:   "Algorand",
		ToToken:        "goNEAR",
		ToAddress:      "ADDR1",
		FromAmountAtom: "100",
		Status:         RequestStatus{Kind: StatusCreated},
	}
	err = db.PutRequest("alice.near", r0)
	assert.NoError(t, err)

	r1, err := db.GetRequest("alice.near")
	assert.NoError(t, err)
	assert.Equal(t, r0, r1)

	// slots are per account
	r, err = db.GetRequest("bob.near")
	assert.NoError(t, err)
	assert.Nil(t, r)

	// overwrite is the only removal mechanism
	r0.Status = RequestStatus{Kind: StatusDone, ToTxnHash: "HASH1"}
	err = db.PutRequest("alice.near", r0)
	assert.NoError(t, err)

	r1, err = db.GetRequest("alice.near")
	assert.NoError(t, err)
	assert.Equal(t, StatusDone, r1.Status.Kind)
	assert.Equal(t, "HASH1", r1.Status.ToTxnHash)
}

func TestStateDBOperatorSlot(t *testing.T) {
	db := newTestStateDB(t)

	_, ok, err := db.GetOperator()
	assert.NoError(t, err)
	assert.False(t, ok)

	err = db.SetOperator("operator.near")
	assert.NoError(t, err)

	operator, ok, err := db.GetOperator()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "operator.near", operator)
}
