// Server = request store + lifecycle bridge + http surface.
// All components are configured via envionment variables (strings!).

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"

	_ "github.com/mattn/go-sqlite3"

	"github.com/halfmooncross/bridge-go/redisstore"
	"github.com/halfmooncross/bridge-go/reporter"
	"github.com/halfmooncross/bridge-go/state"
)

// Keep the configuration's fields as "text" as possible.
// Its easier to load it from env vars or a config file.
type BridgeServerConfig struct {
	// state side
	StoreBackend string // "sqlite" or "redis"
	DbFilePath   string // sqlite db file path
	RedisAddr    string // redis host:port

	// the fixed operator; only consulted when the store is fresh
	OperatorAccount string

	// Http side
	HttpIp   string // eg. 0.0.0.0
	HttpPort string // eg. 8080
}

// fileExists checks if a file exists and is readable
func FileExists(filePath string) bool {
	file, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer file.Close()
	return true
}

// openStore picks the store backend from config.
func openStore(bsc *BridgeServerConfig) (state.RequestStore, error) {
	switch bsc.StoreBackend {
	case "redis":
		return redisstore.New(bsc.RedisAddr), nil
	case "sqlite", "":
		return state.NewStateDB("sqlite3", bsc.DbFilePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", bsc.StoreBackend)
	}
}

// openBridge resumes a previously initialized instance, or initializes a
// fresh one with the configured operator. A fresh store with no operator
// configured is a hard error.
func openBridge(store state.RequestStore, operatorAccount string) (*state.Bridge, error) {
	bridge, err := state.Load(store)
	if err == nil {
		return bridge, nil
	}
	if !errors.Is(err, state.ErrNotInitialized) {
		return nil, err
	}
	return state.Initialize(store, operatorAccount)
}

// Create, then start the bridge server and wait.
// Press Ctrl-C to kill the server.
func StartBridgeServerAndWait(bsc *BridgeServerConfig) {
	store, err := openStore(bsc)
	if err != nil {
		logger.Fatalf("failed to open request store: %v", err)
		return
	}
	defer store.Close()

	bridge, err := openBridge(store, bsc.OperatorAccount)
	if err != nil {
		logger.Fatalf("failed to open bridge: %v", err)
		return
	}
	logger.WithField("operator", bridge.Operator()).Info("bridge server ready")

	httpBridge := reporter.NewHttpBridge(bsc.HttpIp, bsc.HttpPort, bridge)
	go httpBridge.Run()

	// Wait for Ctrl-C (SIGINT) or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	sig := <-sigCh
	fmt.Printf("Received signal: %v, shutting down...\n", sig)
}
