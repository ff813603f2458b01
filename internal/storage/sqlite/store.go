package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	// Import SQLite driver
	sqlite3 "github.com/ncruces/go-sqlite3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
)

// Verify Manager implements storage.Store at compile time
var _ storage.Store = (*Manager)(nil)

// Manager executes generic CRUD statements against a single SQLite
// connection. It owns the connection from New until Close.
type Manager struct {
	db     *sql.DB
	dbPath string
	opts   options
	closed atomic.Bool
}

// setupWASMCache configures WASM compilation caching to reduce SQLite startup time.
// Returns the cache directory path (empty string if using in-memory cache).
//
// Cache location is ~/.cache/catalog/wasm/ (platform-specific via os.UserCacheDir).
// wazero keys the cache by its own version, so stale entries are harmless.
func setupWASMCache() string {
	cacheDir := ""
	if userCache, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(userCache, "catalog", "wasm")
	}

	var cache wazero.CompilationCache
	if cacheDir != "" {
		if c, err := wazero.NewCompilationCacheWithDir(cacheDir); err == nil {
			cache = c
		}
	}

	// Fallback to in-memory cache if dir creation failed
	if cache == nil {
		cache = wazero.NewCompilationCache()
		cacheDir = ""
	}

	sqlite3.RuntimeConfig = wazero.NewRuntimeConfig().WithCompilationCache(cache)

	return cacheDir
}

func init() {
	_ = setupWASMCache()
}

// New opens (creating if needed) the database at path and returns a Manager
// holding exclusive use of one connection. Pass ":memory:" for a private
// in-memory database.
func New(ctx context.Context, path string, opts ...Option) (*Manager, error) {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}

	pragmas := fmt.Sprintf("_pragma=busy_timeout(%d)&_pragma=foreign_keys(ON)", o.busyTimeout.Milliseconds())

	var connStr string
	isInMemory := false
	switch {
	case path == ":memory:":
		// WAL mode doesn't work with in-memory databases
		connStr = "file::memory:?mode=memory&" + pragmas + "&_pragma=journal_mode(DELETE)"
		isInMemory = true
	case strings.HasPrefix(path, "file:"):
		connStr = path
		isInMemory = strings.Contains(path, "mode=memory")
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		if !strings.Contains(path, "_pragma=busy_timeout") {
			connStr += sep + pragmas
		}
	default:
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		connStr = "file:" + path + "?" + pragmas
	}

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection for the life of the process. This also keeps an
	// in-memory database alive between statements.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if !isInMemory {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	absPath := path
	if !isInMemory && !strings.HasPrefix(path, "file:") {
		if absPath, err = filepath.Abs(path); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
	}

	o.logger.Debug("database opened", zap.String("path", absPath))

	return &Manager{
		db:     db,
		dbPath: absPath,
		opts:   o,
	}, nil
}

// Close checkpoints the WAL and closes the connection. Calling it more
// than once is a no-op.
func (m *Manager) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	// Without a checkpoint, writes may be stranded in the WAL between runs.
	_, _ = m.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	m.opts.logger.Debug("database closed", zap.String("path", m.dbPath))
	return m.db.Close()
}

// Path returns the absolute path to the database file
func (m *Manager) Path() string {
	return m.dbPath
}

// IsClosed returns true if Close() has been called
func (m *Manager) IsClosed() bool {
	return m.closed.Load()
}
