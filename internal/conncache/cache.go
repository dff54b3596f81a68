// Package conncache keeps track of open cluster sessions for the keyword
// layer: each registered session gets a stable 1-based index and an
// optional alias, and exactly one registered session is "current" at a
// time. The cache is plain state with no locking — the keyword framework
// drives it from a single logical thread, and callers needing parallelism
// use separate cache instances.
package conncache

import (
	"errors"
	"fmt"

	"github.com/robotcql/robotcql/internal/cassandra"
	"github.com/robotcql/robotcql/internal/errs"
)

// entry is one live registration.
type entry struct {
	index   int
	alias   string
	session cassandra.Session
}

// Cache maps indices and aliases to live sessions and tracks the current one.
// Indices are assigned monotonically per Register and are never reused
// until CloseAll resets the counter.
type Cache struct {
	entries   []*entry
	byAlias   map[string]*entry
	current   *entry
	nextIndex int
}

// New returns an empty cache. The first Register returns index 1.
func New() *Cache {
	return &Cache{
		byAlias:   make(map[string]*entry),
		nextIndex: 1,
	}
}

// Register stores the session under the next sequential index, optionally
// binds alias, and makes the session current. Returns the assigned index.
// An alias already bound to a live entry is rejected with
// ErrKindDuplicateAlias; the last-writer-shadows behavior of loosely typed
// connection caches is deliberately not reproduced.
func (c *Cache) Register(session cassandra.Session, alias string) (int, error) {
	if alias != "" {
		if _, taken := c.byAlias[alias]; taken {
			return 0, errs.New(errs.ErrKindDuplicateAlias,
				fmt.Sprintf("alias %q already bound to a live connection", alias))
		}
	}

	e := &entry{
		index:   c.nextIndex,
		alias:   alias,
		session: session,
	}
	c.nextIndex++

	c.entries = append(c.entries, e)
	if alias != "" {
		c.byAlias[alias] = e
	}
	c.current = e

	return e.index, nil
}

// SwitchIndex makes the entry with the given index current and returns the
// index that was current immediately before the call (0 when none was).
func (c *Cache) SwitchIndex(index int) (int, error) {
	for _, e := range c.entries {
		if e.index == index {
			return c.makeCurrent(e), nil
		}
	}
	return 0, errs.New(errs.ErrKindUnknownConnection,
		fmt.Sprintf("no connection with index %d", index))
}

// SwitchAlias makes the entry bound to alias current and returns the index
// that was current immediately before the call (0 when none was).
func (c *Cache) SwitchAlias(alias string) (int, error) {
	e, ok := c.byAlias[alias]
	if !ok {
		return 0, errs.New(errs.ErrKindUnknownConnection,
			fmt.Sprintf("no connection with alias %q", alias))
	}
	return c.makeCurrent(e), nil
}

func (c *Cache) makeCurrent(e *entry) int {
	prev := c.CurrentIndex()
	c.current = e
	return prev
}

// Current returns the active session.
func (c *Cache) Current() (cassandra.Session, error) {
	if c.current == nil {
		return nil, errs.New(errs.ErrKindNoActiveConnection, "no open connection")
	}
	return c.current.session, nil
}

// CurrentIndex returns the index of the active entry, or 0 when none is active.
func (c *Cache) CurrentIndex() int {
	if c.current == nil {
		return 0
	}
	return c.current.index
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// RemoveCurrent detaches the current entry and returns its session so the
// caller can tear it down. The cache is left with no current entry; index
// numbering continues from where it was.
func (c *Cache) RemoveCurrent() (cassandra.Session, error) {
	if c.current == nil {
		return nil, errs.New(errs.ErrKindNoActiveConnection, "no open connection")
	}

	removed := c.current
	for i, e := range c.entries {
		if e == removed {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
	if removed.alias != "" {
		delete(c.byAlias, removed.alias)
	}
	c.current = nil

	return removed.session, nil
}

// CloseAll tears down every live entry with the supplied closer, then
// discards all entries and resets the index counter so the next Register
// returns 1. Teardown failures are collected and returned joined; the
// cache is cleared regardless.
func (c *Cache) CloseAll(closer func(cassandra.Session) error) error {
	var failures []error
	for _, e := range c.entries {
		if err := closer(e.session); err != nil {
			failures = append(failures, fmt.Errorf("closing connection %d: %w", e.index, err))
		}
	}

	c.entries = nil
	c.byAlias = make(map[string]*entry)
	c.current = nil
	c.nextIndex = 1

	return errors.Join(failures...)
}
