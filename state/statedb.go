package state

import (
	"database/sql"

	"github.com/halfmooncross/bridge-go/common"
	"github.com/halfmooncross/bridge-go/database"
)

var keyOperatorAccount = common.Hash256Hex([]byte("KeyOperatorAccount"))

// StateDB is the sqlite-backed RequestStore.
type StateDB struct {
	db        *sql.DB
	stmtCache *database.StmtCache
}

var _ RequestStore = (*StateDB)(nil)

func NewStateDB(driverName, dataSourceName string) (*StateDB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = db.Close()
		}
	}()

	if _, err = db.Exec(requestTable + kvTable); err != nil {
		return nil, err
	}

	return &StateDB{
		db:        db,
		stmtCache: database.NewStmtCache(db),
	}, nil
}

func (st *StateDB) Close() error {
	st.stmtCache.Clear()
	return st.db.Close()
}

func (st *StateDB) GetRequest(account string) (*BridgeRequest, error) {
	query := `SELECT record FROM request WHERE requester = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}

	var record []byte
	if err := stmt.QueryRow(account).Scan(&record); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return DecodeRequest(record)
}

func (st *StateDB) PutRequest(account string, r *BridgeRequest) error {
	record, err := EncodeRequest(r)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO request (requester, record) VALUES (?, ?)`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(account, record)
	return err
}

func (st *StateDB) GetOperator() (string, bool, error) {
	query := `SELECT value FROM kv WHERE key = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return "", false, err
	}

	var value string
	if err := stmt.QueryRow(keyOperatorAccount).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (st *StateDB) SetOperator(account string) error {
	query := `INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(keyOperatorAccount, account)
	return err
}
