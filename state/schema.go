package state

var (
	// one slot per requester account, record is the canonical JSON encoding
	requestTable = `CREATE TABLE IF NOT EXISTS request (
		requester VARCHAR(64) PRIMARY KEY NOT NULL,
		record BLOB NOT NULL
	);`

	// table stores key-value pairs. The key is a 32-byte hex string without prefix.
	kvTable = `CREATE TABLE IF NOT EXISTS kv (
		key CHAR(64) PRIMARY KEY NOT NULL,
		value TEXT NOT NULL
	);`
)
