package session

import (
	"time"
)

// Default intervals used when a Settings field is left zero.
const (
	DefaultRetryInterval     = 5 * time.Second
	DefaultWaitTimeout       = 200 * time.Millisecond
	DefaultKeepaliveInterval = 30 * time.Second
	DefaultRefreshInterval   = time.Minute
	DefaultQueueCapacity     = 1024
)

// Settings is the session's runtime configuration. RetryInterval,
// WaitTimeout, KeepaliveInterval, RefreshInterval, Verbose, and Stop are the
// hot subset: the monitor re-applies them on every refresh without a restart.
// Host, Port, and ClientID are connection identity; changing them at runtime
// is recorded but intentionally not applied, they take effect on the next
// process start.
type Settings struct {
	Host     string
	Port     int
	ClientID int

	// RetryInterval is the pause between failed connect attempts.
	RetryInterval time.Duration
	// WaitTimeout bounds every queue wait, and therefore the worst-case
	// shutdown latency of each worker loop.
	WaitTimeout time.Duration
	// KeepaliveInterval is how long the session may stay idle before the
	// monitor dispatches a heartbeat.
	KeepaliveInterval time.Duration
	// RefreshInterval is how often the monitor re-reads live settings.
	RefreshInterval time.Duration
	// Verbose switches debug logging on.
	Verbose bool
	// Stop is the operational kill switch. When a refresh observes it
	// set, the session shuts down.
	Stop bool
}

// withDefaults returns a copy with zero intervals replaced by defaults.
func (s Settings) withDefaults() Settings {
	if s.RetryInterval <= 0 {
		s.RetryInterval = DefaultRetryInterval
	}

	if s.WaitTimeout <= 0 {
		s.WaitTimeout = DefaultWaitTimeout
	}

	if s.KeepaliveInterval <= 0 {
		s.KeepaliveInterval = DefaultKeepaliveInterval
	}

	if s.RefreshInterval <= 0 {
		s.RefreshInterval = DefaultRefreshInterval
	}

	return s
}

// SettingsSource re-reads live settings for the monitor's periodic refresh.
type SettingsSource interface {
	Load() (Settings, error)
}
