// Redis-backed RequestStore for deployments that already run the relayer
// against a redis instance. Records are stored as their canonical JSON
// encoding, one key per requester account, so sqlite and redis deployments
// stay storage-compatible.

package redisstore

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"
	logger "github.com/sirupsen/logrus"

	"github.com/halfmooncross/bridge-go/state"
)

const (
	requestKeyPrefix = "bridgereq:"
	operatorKey      = "bridgeop:operator"
)

type Store struct {
	pool *redis.Pool
}

var _ state.RequestStore = (*Store)(nil)

func dialOptions() []redis.DialOption {
	return []redis.DialOption{
		redis.DialConnectTimeout(5 * time.Second),
		redis.DialReadTimeout(5 * time.Second),
		redis.DialWriteTimeout(5 * time.Second),
	}
}

// New creates a store over a pooled connection to addr (host:port).
func New(addr string) *Store {
	return &Store{
		pool: &redis.Pool{
			MaxIdle: 5,
			Dial:    func() (redis.Conn, error) { return redis.Dial("tcp", addr, dialOptions()...) },
		},
	}
}

func (s *Store) GetRequest(account string) (*state.BridgeRequest, error) {
	conn := s.pool.Get()
	defer conn.Close()

	record, err := redis.Bytes(conn.Do("GET", requestKeyPrefix+account))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, nil
		}
		logger.WithField("account", account).Errorf("redis get: %v", err)
		return nil, err
	}
	return state.DecodeRequest(record)
}

func (s *Store) PutRequest(account string, r *state.BridgeRequest) error {
	record, err := state.EncodeRequest(r)
	if err != nil {
		return err
	}

	conn := s.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("SET", requestKeyPrefix+account, record); err != nil {
		logger.WithField("account", account).Errorf("redis set: %v", err)
		return err
	}
	return nil
}

func (s *Store) GetOperator() (string, bool, error) {
	conn := s.pool.Get()
	defer conn.Close()

	operator, err := redis.String(conn.Do("GET", operatorKey))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return "", false, nil
		}
		logger.Errorf("redis get operator: %v", err)
		return "", false, err
	}
	return operator, true, nil
}

func (s *Store) SetOperator(account string) error {
	conn := s.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("SET", operatorKey, account); err != nil {
		logger.Errorf("redis set operator: %v", err)
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.pool.Close()
}
