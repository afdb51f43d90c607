package db

// SchemaSQL is the complete schema for fresh courier installs.
// Tests create tables from this constant so repository code and schema
// cannot drift apart silently.
const SchemaSQL = `
-- Delivery audit log: one row per (message, recipient) attempt.
CREATE TABLE IF NOT EXISTS delivery_attempts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id TEXT NOT NULL,
	sender_id TEXT NOT NULL,
	recipient_id TEXT NOT NULL,
	mode TEXT NOT NULL CHECK(mode IN ('INJECTED', 'FALLBACK_INBOX')),
	outcome TEXT NOT NULL CHECK(outcome IN ('SUCCESS', 'FAILED')),
	error TEXT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_attempts_recipient ON delivery_attempts(recipient_id);
CREATE INDEX IF NOT EXISTS idx_attempts_message ON delivery_attempts(message_id);
`
