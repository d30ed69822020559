package reporter

import (
	"net"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halfmooncross/bridge-go/state"
)

// spin up the full http bridge on an ephemeral port and return a reader
// pointed at it
func newTestHttpBridge(t *testing.T) *HttpReader {
	gin.SetMode(gin.TestMode)

	db, err := state.NewStateDB("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bridge, err := state.Initialize(db, "op")
	require.NoError(t, err)

	h := NewHttpBridge("127.0.0.1", "0", bridge)
	srv := httptest.NewServer(h.SetupRouter())
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)

	return NewHttpReader(host, port)
}

func TestHello(t *testing.T) {
	hr := newTestHttpBridge(t)

	body, err := hr.GetHello()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"message":"world"}`, body)
}

func TestCreateAndQueryRequest(t *testing.T) {
	hr := newTestHttpBridge(t)

	body, code, err := hr.PostAs("alice", ROUTE_REQUEST,
		`{"to_blockchain":"Algorand","to_token":"goNEAR","to_address":"ADDR1","attached_atom":"100"}`)
	require.NoError(t, err)
	assert.Equal(t, 200, code, body)

	body, code, err = hr.GetRequest("alice")
	require.NoError(t, err)
	assert.Equal(t, 200, code)
	assert.JSONEq(t, `{
		"to_blockchain": "Algorand",
		"to_token": "goNEAR",
		"to_address": "ADDR1",
		"from_amount_atom": "100",
		"status": {"kind": "created"}
	}`, body)

	// unknown account
	_, code, err = hr.GetRequest("bob")
	require.NoError(t, err)
	assert.Equal(t, 404, code)

	// missing account_id
	body, code, err = hr.PostAs("alice", ROUTE_REQUEST, `{"to_token":"goNEAR"}`)
	require.NoError(t, err)
	assert.Equal(t, 400, code, body)
}

func TestCallerHeaderRequired(t *testing.T) {
	hr := newTestHttpBridge(t)

	_, code, err := hr.PostAs("", ROUTE_REQUEST,
		`{"to_blockchain":"Algorand","to_token":"goNEAR","to_address":"ADDR1"}`)
	require.NoError(t, err)
	assert.Equal(t, 401, code)
}

func TestOperatorRoutes(t *testing.T) {
	hr := newTestHttpBridge(t)

	_, code, err := hr.PostAs("alice", ROUTE_REQUEST,
		`{"to_blockchain":"Algorand","to_token":"goNEAR","to_address":"ADDR1"}`)
	require.NoError(t, err)
	require.Equal(t, 200, code)

	// not the operator
	_, code, err = hr.PostAs("alice", ROUTE_DOING, `{"account_id":"alice","to_txn_hash":"HASH1"}`)
	require.NoError(t, err)
	assert.Equal(t, 403, code)

	// wrong order: done before doing
	_, code, err = hr.PostAs("op", ROUTE_DONE, `{"account_id":"alice"}`)
	require.NoError(t, err)
	assert.Equal(t, 409, code)

	// no such request
	_, code, err = hr.PostAs("op", ROUTE_DOING, `{"account_id":"bob","to_txn_hash":"HASH1"}`)
	require.NoError(t, err)
	assert.Equal(t, 404, code)

	// happy path
	_, code, err = hr.PostAs("op", ROUTE_DOING, `{"account_id":"alice","to_txn_hash":"HASH1"}`)
	require.NoError(t, err)
	assert.Equal(t, 200, code)

	_, code, err = hr.PostAs("op", ROUTE_ERROR, `{"account_id":"alice","error":"network error"}`)
	require.NoError(t, err)
	assert.Equal(t, 200, code)

	body, code, err := hr.GetRequest("alice")
	require.NoError(t, err)
	assert.Equal(t, 200, code)
	assert.JSONEq(t, `{
		"to_blockchain": "Algorand",
		"to_token": "goNEAR",
		"to_address": "ADDR1",
		"from_amount_atom": "0",
		"status": {"kind": "error", "to_txn_hash": "HASH1", "error": "network error"}
	}`, body)
}

func TestCreateRequestRejections(t *testing.T) {
	hr := newTestHttpBridge(t)

	// token-funded path not implemented
	_, code, err := hr.PostAs("alice", ROUTE_REQUEST,
		`{"to_blockchain":"Algorand","to_token":"goNEAR","to_address":"ADDR1","from_token_address":"usdc.token.near"}`)
	require.NoError(t, err)
	assert.Equal(t, 501, code)

	// bad amount
	_, code, err = hr.PostAs("alice", ROUTE_REQUEST,
		`{"to_blockchain":"Algorand","to_token":"goNEAR","to_address":"ADDR1","attached_atom":"-5"}`)
	require.NoError(t, err)
	assert.Equal(t, 400, code)

	// unfinished request conflicts
	_, code, err = hr.PostAs("alice", ROUTE_REQUEST,
		`{"to_blockchain":"Algorand","to_token":"goNEAR","to_address":"ADDR1"}`)
	require.NoError(t, err)
	require.Equal(t, 200, code)

	_, code, err = hr.PostAs("alice", ROUTE_REQUEST,
		`{"to_blockchain":"Algorand","to_token":"goNEAR","to_address":"ADDR1"}`)
	require.NoError(t, err)
	assert.Equal(t, 409, code)
}
