package cassandra

import (
	"context"
	"time"

	"github.com/gocql/gocql"

	"github.com/robotcql/robotcql/internal/errs"
)

// Driver is the gocql-backed Session implementation. One Driver wraps one
// authenticated session to a cluster; topology discovery, load balancing,
// and reconnection are owned by gocql.
type Driver struct {
	session        *gocql.Session
	requestTimeout time.Duration
}

// Connect opens a session to the cluster described by cfg.
// Dial and authentication failures return ErrKindConnectionSetup.
func Connect(_ context.Context, cfg *Config) (*Driver, error) {
	cluster := gocql.NewCluster(cfg.Hosts...)
	if cfg.Port != 0 {
		cluster.Port = cfg.Port
	}
	if cfg.Keyspace != "" {
		cluster.Keyspace = cfg.Keyspace
	}
	if cfg.ConnectTimeout > 0 {
		cluster.ConnectTimeout = cfg.ConnectTimeout
	}
	cluster.DisableInitialHostLookup = cfg.DisableInitialHostLookup
	if cfg.RequestTimeout > 0 {
		cluster.Timeout = cfg.RequestTimeout
	}

	if cfg.Consistency != "" {
		consistency, err := gocql.ParseConsistencyWrapper(cfg.Consistency)
		if err != nil {
			return nil, errs.Wrap(errs.ErrKindConnectionSetup,
				"invalid consistency level", err)
		}
		cluster.Consistency = consistency
	}

	if cfg.Username != "" && cfg.Password != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionSetup,
			"failed to connect to cluster", err)
	}

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = defaultRequestTimeout
	}

	return &Driver{session: session, requestTimeout: timeout}, nil
}

// --- Session implementation ---

// Execute runs stmt synchronously and materializes every row in order.
// The configured request timeout applies when ctx carries no deadline.
func (d *Driver) Execute(ctx context.Context, stmt string) (Rows, error) {
	if _, ok := ctx.Deadline(); !ok && d.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.requestTimeout)
		defer cancel()
	}

	iter := d.session.Query(stmt).WithContext(ctx).Iter()

	rows := make(Rows, 0)
	for {
		row := make(Row)
		if !iter.MapScan(row) {
			break
		}
		rows = append(rows, row)
	}

	if err := iter.Close(); err != nil {
		return nil, mapError(err, "statement execution failed")
	}
	return rows, nil
}

// ExecuteAsync starts stmt in the background and returns immediately.
// The returned handle resolves through Pending.Wait.
func (d *Driver) ExecuteAsync(ctx context.Context, stmt string) *Pending {
	p := NewPending()
	go func() {
		p.Complete(d.Execute(ctx, stmt))
	}()
	return p
}

// Close shuts down the underlying gocql session.
func (d *Driver) Close() {
	d.session.Close()
}
