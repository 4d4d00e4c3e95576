package store

const schema = `
CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    completed_at TIMESTAMP NOT NULL,
    package_count INTEGER NOT NULL,
    update_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS inventory (
    pkg_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    installed_version TEXT NOT NULL,
    available_version TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS update_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    is_bulk BOOLEAN NOT NULL,
    requested INTEGER NOT NULL,
    succeeded INTEGER NOT NULL DEFAULT 0,
    finished BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS update_results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    pkg_id TEXT NOT NULL,
    success BOOLEAN NOT NULL,
    error_text TEXT NOT NULL DEFAULT '',
    finished_at TIMESTAMP NOT NULL,
    FOREIGN KEY (run_id) REFERENCES update_runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ended_at TIMESTAMP NOT NULL,
    total INTEGER NOT NULL,
    updatable INTEGER NOT NULL,
    applied INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_run ON update_results(run_id);
CREATE INDEX IF NOT EXISTS idx_scans_completed ON scans(completed_at);
`
