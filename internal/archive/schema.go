package archive

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id               TEXT PRIMARY KEY,
    chat_name        TEXT NOT NULL,
    status           TEXT NOT NULL,
    cycles_requested INTEGER NOT NULL DEFAULT 0,
    cycles_completed INTEGER NOT NULL DEFAULT 0,
    record_count     INTEGER NOT NULL DEFAULT 0,
    kept_count       INTEGER NOT NULL DEFAULT 0,
    raw_path         TEXT,
    filtered_path    TEXT,
    error_message    TEXT,
    started_at       TEXT NOT NULL,
    finished_at      TEXT
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`
