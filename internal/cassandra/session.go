package cassandra

import "context"

// Session is the contract the connection cache and keyword layer depend on.
// The production implementation is *Driver over gocql; tests substitute
// in-memory fakes.
type Session interface {
	// Execute runs a CQL statement and returns the materialized result set.
	Execute(ctx context.Context, stmt string) (Rows, error)

	// ExecuteAsync starts a CQL statement and returns immediately with a
	// handle that resolves to the result set.
	ExecuteAsync(ctx context.Context, stmt string) *Pending

	// Close shuts the session down. Safe to call once; the session is
	// unusable afterwards.
	Close()
}

// Pending represents an in-flight asynchronous statement. It is completed
// exactly once by the session that issued it and resolved by Wait. There
// is no cancellation: once issued, the statement runs to completion or
// failure as decided by the driver.
type Pending struct {
	done chan struct{}
	rows Rows
	err  error
}

// NewPending returns an unresolved handle. Session implementations call
// Complete when the statement finishes.
func NewPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Complete records the outcome and releases all Wait callers.
// Must be called exactly once.
func (p *Pending) Complete(rows Rows, err error) {
	p.rows = rows
	p.err = err
	close(p.done)
}

// Wait blocks until the statement finishes and returns its outcome.
// Safe to call from multiple goroutines; every caller sees the same result.
func (p *Pending) Wait() (Rows, error) {
	<-p.done
	return p.rows, p.err
}
