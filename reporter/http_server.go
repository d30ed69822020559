// HTTP surface of the bridge. The gateway in front of this service
// authenticates callers and injects the caller's account into the
// X-Caller-Account header; by the time a request reaches these handlers the
// identity is trusted. The attached native value travels as a base-10 atom
// string in the request body.

package reporter

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/halfmooncross/bridge-go/common"
	"github.com/halfmooncross/bridge-go/state"
)

const (
	ROUTE_HELLO   = "/hello"
	ROUTE_REQUEST = "/bridge/request"
	ROUTE_DOING   = "/bridge/doing"
	ROUTE_DONE    = "/bridge/done"
	ROUTE_ERROR   = "/bridge/error"

	HEADER_CALLER = "X-Caller-Account"
)

type HttpBridge struct {
	serverIP   string // listen ip
	serverPort string // listen port

	bridge *state.Bridge
}

func NewHttpBridge(serverIP string, serverPort string, bridge *state.Bridge) *HttpBridge {
	return &HttpBridge{
		serverIP:   serverIP,
		serverPort: serverPort,
		bridge:     bridge,
	}
}

// Hook up routes & handlers
func (h *HttpBridge) SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET(ROUTE_HELLO, Hello)
	router.GET(ROUTE_REQUEST, h.GetRequest)
	router.POST(ROUTE_REQUEST, h.CreateRequest)
	router.POST(ROUTE_DOING, h.SetDoing)
	router.POST(ROUTE_DONE, h.SetDone)
	router.POST(ROUTE_ERROR, h.SetError)

	return router
}

// Hook up router & ip:port
func (h *HttpBridge) Run() {
	router := h.SetupRouter()
	address := h.serverIP + ":" + h.serverPort
	if err := router.Run(address); err != nil {
		panic(err)
	}
}

// Liveness route.
func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "world",
	})
}

type createRequestBody struct {
	ToBlockchain     string  `json:"to_blockchain" binding:"required"`
	ToToken          string  `json:"to_token" binding:"required"`
	ToAddress        string  `json:"to_address" binding:"required"`
	FromTokenAddress *string `json:"from_token_address"`
	AttachedAtom     string  `json:"attached_atom"`
}

func (h *HttpBridge) CreateRequest(c *gin.Context) {
	log, caller, ok := callerOf(c)
	if !ok {
		return
	}

	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// No attached_atom means the call carries no value.
	if body.AttachedAtom == "" {
		body.AttachedAtom = "0"
	}
	attached := common.ParseAtomAmount(body.AttachedAtom)
	if attached == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "attached_atom must be a non-negative base-10 integer"})
		return
	}

	err := h.bridge.AddBridgeRequest(caller, body.ToBlockchain, body.ToToken, body.ToAddress, body.FromTokenAddress, attached)
	if err != nil {
		log.Warnf("create request: %v", err)
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}

type setDoingBody struct {
	AccountID string `json:"account_id" binding:"required"`
	ToTxnHash string `json:"to_txn_hash" binding:"required"`
}

func (h *HttpBridge) SetDoing(c *gin.Context) {
	log, caller, ok := callerOf(c)
	if !ok {
		return
	}

	var body setDoingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.bridge.SetRequestDoing(caller, body.AccountID, body.ToTxnHash); err != nil {
		log.Warnf("set doing: %v", err)
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}

type setDoneBody struct {
	AccountID string `json:"account_id" binding:"required"`
}

func (h *HttpBridge) SetDone(c *gin.Context) {
	log, caller, ok := callerOf(c)
	if !ok {
		return
	}

	var body setDoneBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.bridge.SetRequestDone(caller, body.AccountID); err != nil {
		log.Warnf("set done: %v", err)
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}

type setErrorBody struct {
	AccountID string `json:"account_id" binding:"required"`
	Error     string `json:"error" binding:"required"`
}

func (h *HttpBridge) SetError(c *gin.Context) {
	log, caller, ok := callerOf(c)
	if !ok {
		return
	}

	var body setErrorBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.bridge.SetRequestError(caller, body.AccountID, body.Error); err != nil {
		log.Warnf("set error: %v", err)
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}

// Point read, open to anyone. The record is served in its canonical stored
// encoding so relayer tooling parses the same shape it sees in the store.
func (h *HttpBridge) GetRequest(c *gin.Context) {
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id must be provided"})
		return
	}

	r, err := h.bridge.GetRequestStatus(accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no request found"})
		return
	}

	record, err := state.EncodeRequest(r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", record)
}

// callerOf extracts the gateway-authenticated caller account and builds a
// correlation-tagged log entry for the call. Writes the 401 itself when the
// header is missing.
func callerOf(c *gin.Context) (*logger.Entry, string, bool) {
	caller := c.GetHeader(HEADER_CALLER)
	log := logger.WithFields(logger.Fields{
		"req_id": uuid.New().String(),
		"caller": caller,
		"route":  c.FullPath(),
	})
	if caller == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + HEADER_CALLER + " header"})
		return nil, "", false
	}
	return log, caller, true
}

// errStatus maps lifecycle error kinds onto HTTP statuses.
func errStatus(err error) int {
	switch {
	case errors.Is(err, state.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, state.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, state.ErrInvalidTransition), errors.Is(err, state.ErrUnfinishedRequest):
		return http.StatusConflict
	case errors.Is(err, state.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, state.ErrAmountInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
