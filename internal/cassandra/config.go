package cassandra

import "time"

const (
	// DefaultPort is the native protocol port of an Apache Cassandra node.
	DefaultPort = 9042

	defaultConnectTimeout = 10 * time.Second
	defaultRequestTimeout = 60 * time.Second
)

// Config holds all settings needed to open a session against a cluster.
type Config struct {
	// Hosts are contact points; the driver discovers the rest of the
	// cluster from them.
	Hosts []string

	// Port is the native protocol port on every contact point.
	Port int

	// Keyspace is the keyspace the session starts in. Optional —
	// statements may address keyspaces explicitly.
	Keyspace string

	// Username and Password enable password authentication when both
	// are non-empty.
	Username string
	Password string

	// Consistency is the consistency level name (e.g. "QUORUM").
	// Empty means the driver default.
	Consistency string

	// ConnectTimeout limits session establishment.
	ConnectTimeout time.Duration

	// RequestTimeout is the per-statement deadline applied when the
	// caller's context carries none.
	RequestTimeout time.Duration

	// DisableInitialHostLookup skips reading system.peers on connect.
	// Useful against single-node test clusters behind NAT.
	DisableInitialHostLookup bool
}

// DefaultConfig returns a Config for the given contact points with the
// standard port and timeouts.
func DefaultConfig(hosts ...string) *Config {
	return &Config{
		Hosts:          hosts,
		Port:           DefaultPort,
		ConnectTimeout: defaultConnectTimeout,
		RequestTimeout: defaultRequestTimeout,
	}
}
