// Package keywords exposes the CQL operations a keyword-driven test
// framework calls: connect, disconnect, switch, execute (sync and async),
// and column projection. A Library instance owns one connection cache;
// every statement runs against whichever connection is currently active.
package keywords

import (
	"context"
	"strconv"
	"strings"

	"github.com/robotcql/robotcql/internal/cassandra"
	"github.com/robotcql/robotcql/internal/conncache"
	"github.com/robotcql/robotcql/internal/errs"
	"github.com/robotcql/robotcql/internal/logger"
)

// schemaKeyspacesStatement backs GetColumnFromSchemaKeyspaces.
const schemaKeyspacesStatement = "SELECT * FROM system.schema_keyspaces"

// DialFunc opens a session to a cluster. The production dial is
// cassandra.Connect; tests substitute fakes.
type DialFunc func(ctx context.Context, cfg *cassandra.Config) (cassandra.Session, error)

// Library is the keyword surface. It is driven sequentially by the test
// framework and is not safe for concurrent use; the server layer
// serializes access to it.
type Library struct {
	cache *conncache.Cache
	log   *logger.Logger
	dial  DialFunc
}

// New returns a Library dialing real clusters through the gocql driver.
func New(log *logger.Logger) *Library {
	return NewWithDial(log, func(ctx context.Context, cfg *cassandra.Config) (cassandra.Session, error) {
		return cassandra.Connect(ctx, cfg)
	})
}

// NewWithDial returns a Library with a custom dial function.
func NewWithDial(log *logger.Logger, dial DialFunc) *Library {
	if log == nil {
		log = logger.New(nil)
	}
	return &Library{
		cache: conncache.New(),
		log:   log,
		dial:  dial,
	}
}

// Connect opens a session to the cluster described by cfg, registers it
// (optionally under alias), and makes it the current connection.
// Returns the connection index.
func (l *Library) Connect(ctx context.Context, cfg *cassandra.Config, alias string) (int, error) {
	l.log.With().
		Str("hosts", strings.Join(cfg.Hosts, ",")).
		Int("port", cfg.Port).
		Str("alias", alias).
		Logger().
		Info("connecting to cluster")

	session, err := l.dial(ctx, cfg)
	if err != nil {
		return 0, err
	}

	index, err := l.cache.Register(session, alias)
	if err != nil {
		session.Close()
		return 0, err
	}

	l.log.Infof("connection %d established", index)
	return index, nil
}

// Disconnect closes the current connection and removes it from the cache.
// The cache is left with no current connection; index numbering continues.
func (l *Library) Disconnect() error {
	session, err := l.cache.RemoveCurrent()
	if err != nil {
		return err
	}
	session.Close()
	l.log.Info("current connection closed")
	return nil
}

// CloseAll closes every open connection and resets index numbering so the
// next Connect returns 1. Teardown is best-effort.
func (l *Library) CloseAll() error {
	err := l.cache.CloseAll(func(s cassandra.Session) error {
		s.Close()
		return nil
	})
	l.log.Info("all connections closed")
	return err
}

// Switch makes another open connection current. A numeric argument is
// treated as a connection index, anything else as an alias.
// Returns the index that was current immediately before the call.
func (l *Library) Switch(indexOrAlias string) (int, error) {
	var prev int
	var err error
	if index, convErr := strconv.Atoi(strings.TrimSpace(indexOrAlias)); convErr == nil {
		prev, err = l.cache.SwitchIndex(index)
	} else {
		prev, err = l.cache.SwitchAlias(indexOrAlias)
	}
	if err != nil {
		return 0, err
	}

	l.log.With().
		Str("target", indexOrAlias).
		Int("previous", prev).
		Logger().
		Debug("switched connection")
	return prev, nil
}

// CurrentIndex returns the index of the current connection, 0 when none.
func (l *Library) CurrentIndex() int {
	return l.cache.CurrentIndex()
}

// Execute runs a CQL statement on the current connection and returns the
// materialized result set.
func (l *Library) Execute(ctx context.Context, statement string) (cassandra.Rows, error) {
	session, err := l.cache.Current()
	if err != nil {
		return nil, err
	}

	l.log.Debugf("executing: %s", statement)
	return session.Execute(ctx, statement)
}

// ExecuteAsync starts a CQL statement on the current connection and
// returns immediately. Resolve the handle with GetAsyncResult.
func (l *Library) ExecuteAsync(ctx context.Context, statement string) (*cassandra.Pending, error) {
	session, err := l.cache.Current()
	if err != nil {
		return nil, err
	}

	l.log.Debugf("executing async: %s", statement)
	return session.ExecuteAsync(ctx, statement), nil
}

// GetAsyncResult blocks until the pending statement finishes and returns
// its result set. A driver failure is reported as ErrKindOperationFailed.
func (l *Library) GetAsyncResult(pending *cassandra.Pending) (cassandra.Rows, error) {
	rows, err := pending.Wait()
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindOperationFailed, "operation failed", err)
	}
	return rows, nil
}

// GetColumn executes a CQL select statement and returns the named
// column's value from every row, in row order, as strings.
func (l *Library) GetColumn(ctx context.Context, column, statement string) ([]string, error) {
	rows, err := l.Execute(ctx, statement)
	if err != nil {
		return nil, err
	}
	return cassandra.ProjectColumn(column, rows)
}

// GetColumnFromSchemaKeyspaces returns the named column's values from the
// system.schema_keyspaces table.
func (l *Library) GetColumnFromSchemaKeyspaces(ctx context.Context, column string) ([]string, error) {
	return l.GetColumn(ctx, column, schemaKeyspacesStatement)
}
