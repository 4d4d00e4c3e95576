package app

import (
	"fmt"

	"github.com/blackwell-systems/wingup/internal/config"
	"github.com/blackwell-systems/wingup/internal/engine"
	"github.com/blackwell-systems/wingup/internal/store"
	"github.com/blackwell-systems/wingup/internal/winget"
)

// openStore opens the database and ensures the schema exists.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}

	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}

	return db, nil
}

// toolCommand resolves the winget executable from the --winget flag or the
// config file.
func toolCommand() string {
	if toolPath != "" {
		return toolPath
	}
	cfg, err := config.Load()
	if err != nil {
		return "winget"
	}
	return cfg.Tool.Command
}

// newEngine builds an engine whose events are persisted by the given store.
// Extra sinks receive the same events, after the audit sink.
func newEngine(db *store.Store, extra ...engine.EventSink) (*engine.Engine, *store.Audit) {
	audit := store.NewAudit(db)
	sinks := append(engine.MultiSink{audit}, extra...)
	runner := winget.NewCommandRunner(toolCommand())
	return engine.New(runner, sinks), audit
}
