// Package session implements the broker session layer: a long-lived,
// reconnect-capable connection to the external gateway, driven by one
// supervisor goroutine and four worker goroutines per connection generation
// (transmit, receive, router, monitor).
//
// Each successful (re)connect increments a generation token and hands a fresh
// cancellation context to the workers of that generation. The supervisor
// always joins the previous worker cohort before starting the next one, so
// two generations never race on the shared queues.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
	"github.com/CasinoHe/quanttrader-sub001/internal/logger"
)

// State is the supervisor's connection state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateStopping
	StateStopped
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateStopping:
		return "STOPPING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Supervisor owns the connection lifecycle. It keeps exactly one live
// connection to the gateway, or none, and is the only component that starts
// or stops the worker loops.
type Supervisor struct {
	client   gateway.Client
	registry *CorrelationRegistry
	outbound *Queue[gateway.Request]
	inbound  *Queue[gateway.Response]
	disp     *Dispatcher
	log      *logger.Logger
	source   SettingsSource

	state      atomic.Int32
	generation atomic.Int64

	// activeWorkers counts worker goroutines currently running across all
	// generations. Never exceeds the worker-set size; tests assert that.
	activeWorkers atomic.Int32

	retryInterval     atomic.Int64
	waitTimeout       atomic.Int64
	keepaliveInterval atomic.Int64
	refreshInterval   atomic.Int64

	identityMu sync.Mutex
	host       string
	port       int
	clientID   int

	handlerMu          sync.RWMutex
	errorHandler       func(*gateway.ErrorResponse)
	executionHandler   func(*gateway.ExecutionResponse)
	orderStatusHandler func(*gateway.OrderStatusResponse)
	connectedHandler   func(generation int64)

	// lastServerTime is the unix time last reported by the gateway clock.
	lastServerTime atomic.Int64

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewSupervisor builds a supervisor over the given client. The settings
// source may be nil, in which case the monitor skips config refresh.
func NewSupervisor(client gateway.Client, settings Settings, source SettingsSource, log *logger.Logger) *Supervisor {
	registry := NewCorrelationRegistry()
	outbound := NewQueue[gateway.Request](DefaultQueueCapacity)
	inbound := NewQueue[gateway.Response](DefaultQueueCapacity)

	s := &Supervisor{
		client:   client,
		registry: registry,
		outbound: outbound,
		inbound:  inbound,
		disp:     NewDispatcher(registry, outbound, log),
		log:      log,
		source:   source,
		stopCh:   make(chan struct{}),
	}

	settings = settings.withDefaults()
	s.retryInterval.Store(int64(settings.RetryInterval))
	s.waitTimeout.Store(int64(settings.WaitTimeout))
	s.keepaliveInterval.Store(int64(settings.KeepaliveInterval))
	s.refreshInterval.Store(int64(settings.RefreshInterval))
	s.host = settings.Host
	s.port = settings.Port
	s.clientID = settings.ClientID

	s.state.Store(int32(StateDisconnected))

	client.SetResponseQueue(inbound)

	return s
}

// Dispatcher returns the request dispatcher bound to this session.
func (s *Supervisor) Dispatcher() *Dispatcher { return s.disp }

// State returns the current connection state.
func (s *Supervisor) State() State { return State(s.state.Load()) }

// Generation returns the current generation token. It increments once per
// successful connect and never decreases.
func (s *Supervisor) Generation() int64 { return s.generation.Load() }

// ActiveWorkers returns the number of worker goroutines currently running.
func (s *Supervisor) ActiveWorkers() int32 { return s.activeWorkers.Load() }

// LastServerTime returns the gateway clock value last observed by the
// router, or the zero time if none arrived yet.
func (s *Supervisor) LastServerTime() time.Time {
	v := s.lastServerTime.Load()
	if v == 0 {
		return time.Time{}
	}

	return time.Unix(0, v)
}

// SetErrorHandler installs the broadcast handler for gateway errors.
// Last registration wins.
func (s *Supervisor) SetErrorHandler(handler func(*gateway.ErrorResponse)) {
	s.handlerMu.Lock()
	defer s.handlerMu.Unlock()

	s.errorHandler = handler
}

// SetExecutionHandler installs the handler for unsolicited fill reports.
// Last registration wins.
func (s *Supervisor) SetExecutionHandler(handler func(*gateway.ExecutionResponse)) {
	s.handlerMu.Lock()
	defer s.handlerMu.Unlock()

	s.executionHandler = handler
}

// SetOrderStatusHandler installs the handler for authoritative order state
// changes from the venue. Last registration wins.
func (s *Supervisor) SetOrderStatusHandler(handler func(*gateway.OrderStatusResponse)) {
	s.handlerMu.Lock()
	defer s.handlerMu.Unlock()

	s.orderStatusHandler = handler
}

// SetConnectedHandler installs a hook that runs once per successful connect,
// after the generation's workers have started. Subscriptions die with their
// connection, so callers use this hook to re-establish them on reconnect.
// Last registration wins.
func (s *Supervisor) SetConnectedHandler(handler func(generation int64)) {
	s.handlerMu.Lock()
	defer s.handlerMu.Unlock()

	s.connectedHandler = handler
}

// Stop requests a cooperative shutdown. It is observed by every worker
// within one wait-timeout period. Safe to call more than once and from any
// goroutine, including the monitor applying the config kill switch.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() {
		s.state.Store(int32(StateStopping))
		close(s.stopCh)
	})
}

// Run drives the connect/reconnect loop until Stop is called or ctx is
// cancelled. Connect failures are retried forever: this is a long-running
// service, not a best-effort client. Run returns only after every worker of
// the final generation has joined.
func (s *Supervisor) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-runCtx.Done():
		}
	}()

	defer func() {
		s.client.Disconnect()
		s.state.Store(int32(StateStopped))
		s.log.Info("session stopped", zap.Int64("generation", s.generation.Load()))
	}()

	for {
		if runCtx.Err() != nil {
			return ctx.Err()
		}

		s.state.Store(int32(StateConnecting))

		if err := s.client.Connect(runCtx); err != nil {
			s.log.Error("connect to gateway failed",
				zap.Duration("retry_in", s.RetryInterval()),
				zap.Error(err),
			)

			if !s.sleep(runCtx, s.RetryInterval()) {
				return ctx.Err()
			}

			continue
		}

		generation := s.generation.Add(1)
		s.state.Store(int32(StateConnected))
		s.log.Info("connected to gateway", zap.Int64("generation", generation))

		genCtx, genCancel := context.WithCancel(runCtx)

		var wg sync.WaitGroup

		wg.Add(4)

		go s.runTransmit(genCtx, generation, &wg)
		go s.runReceive(genCtx, generation, &wg)
		go s.runRouter(genCtx, generation, &wg)
		go s.runMonitor(genCtx, generation, &wg)

		s.handlerMu.RLock()
		connected := s.connectedHandler
		s.handlerMu.RUnlock()

		if connected != nil {
			connected(generation)
		}

		s.superviseConnection(genCtx)

		// Full stop before restart: cancel this generation's workers and
		// wait for all of them to join before anything else runs.
		genCancel()
		wg.Wait()

		s.client.Disconnect()

		if dropped := s.registry.Clear(); dropped > 0 {
			s.log.Warn("dropped stale correlation entries on generation teardown",
				zap.Int("dropped", dropped),
				zap.Int64("generation", generation),
			)
		}

		if runCtx.Err() != nil {
			return ctx.Err()
		}

		s.state.Store(int32(StateDisconnected))
		s.log.Warn("gateway connection lost, reconnecting", zap.Int64("generation", generation))
	}
}

// superviseConnection blocks while the connection is healthy. It returns when
// the client reports disconnection or the generation context is cancelled.
func (s *Supervisor) superviseConnection(ctx context.Context) {
	for {
		if !s.sleep(ctx, s.RetryInterval()) {
			return
		}

		if !s.client.IsConnected() {
			return
		}
	}
}

// sleep waits d, returning false early when ctx is cancelled.
func (s *Supervisor) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// RetryInterval returns the current connect retry interval.
func (s *Supervisor) RetryInterval() time.Duration {
	return time.Duration(s.retryInterval.Load())
}

// WaitTimeout returns the current queue wait timeout.
func (s *Supervisor) WaitTimeout() time.Duration {
	return time.Duration(s.waitTimeout.Load())
}

// KeepaliveInterval returns the current keepalive interval.
func (s *Supervisor) KeepaliveInterval() time.Duration {
	return time.Duration(s.keepaliveInterval.Load())
}

// RefreshInterval returns the current settings refresh interval.
func (s *Supervisor) RefreshInterval() time.Duration {
	return time.Duration(s.refreshInterval.Load())
}

// applySettings applies the hot subset of a freshly loaded Settings and
// records (without applying) changes to the connection identity.
func (s *Supervisor) applySettings(settings Settings) {
	settings = settings.withDefaults()

	s.retryInterval.Store(int64(settings.RetryInterval))
	s.waitTimeout.Store(int64(settings.WaitTimeout))
	s.keepaliveInterval.Store(int64(settings.KeepaliveInterval))
	s.refreshInterval.Store(int64(settings.RefreshInterval))

	s.log.SetVerbose(settings.Verbose)

	s.identityMu.Lock()
	identityChanged := settings.Host != s.host || settings.Port != s.port || settings.ClientID != s.clientID
	host, port, clientID := s.host, s.port, s.clientID
	if identityChanged {
		// Record the new identity so the next refresh does not warn again.
		// The live connection keeps its identity until the process restarts.
		s.host, s.port, s.clientID = settings.Host, settings.Port, settings.ClientID
	}
	s.identityMu.Unlock()

	if identityChanged {
		s.log.Warn("connection identity changed in config; restart required to apply",
			zap.String("previous_host", host),
			zap.Int("previous_port", port),
			zap.Int("previous_client_id", clientID),
			zap.String("new_host", settings.Host),
			zap.Int("new_port", settings.Port),
			zap.Int("new_client_id", settings.ClientID),
		)
	}

	if settings.Stop {
		s.log.Info("stop flag observed in settings, shutting session down")
		s.Stop()
	}
}
