package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/singleflight"
)

const (
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	connectTimeout  = 10 * time.Second
)

// Connector lazily establishes and memoizes a single database handle for the
// life of the process. Concurrent callers attach to one in-flight connection
// attempt; a failed attempt is delivered to every attached caller and is not
// cached, so the next call starts fresh.
//
// Construct one Connector at startup and inject it; there is no package-level
// state.
type Connector struct {
	dsn    string
	logger *slog.Logger

	// open is swappable for tests.
	open func(ctx context.Context) (*sql.DB, error)

	group singleflight.Group
	mu    sync.RWMutex
	db    *sql.DB
}

// NewConnector returns a Connector for the given DSN. No I/O happens until
// the first Get call.
func NewConnector(dsn string, logger *slog.Logger) *Connector {
	c := &Connector{
		dsn:    dsn,
		logger: logger,
	}
	c.open = c.openAndPing
	return c
}

// Get returns the shared database handle, opening it on first use.
// It is safe to call concurrently and repeatedly.
func (c *Connector) Get(ctx context.Context) (*sql.DB, error) {
	c.mu.RLock()
	db := c.db
	c.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := c.group.Do("connect", func() (any, error) {
		// A racing caller may have finished the connect between our read
		// and the Do call.
		c.mu.RLock()
		existing := c.db
		c.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		// The attempt is shared by every attached waiter, so it must not
		// inherit the first caller's cancellation; it runs under the
		// connector's own timeout instead.
		attemptCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), connectTimeout)
		defer cancel()
		db, err := c.open(attemptCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.db = db
		c.mu.Unlock()
		c.logger.Info("database connection established")
		return db, nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return v.(*sql.DB), nil
}

// Close closes the cached handle if one was opened.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

func (c *Connector) openAndPing(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", c.dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}
