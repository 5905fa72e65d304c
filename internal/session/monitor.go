package session

import (
	"context"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
)

// runMonitor keeps the connection warm and the settings fresh. It sends a
// current-time heartbeat when the session has been idle for a full keepalive
// interval, and periodically reloads settings from the configured source,
// applying the hot subset in place.
func (s *Supervisor) runMonitor(ctx context.Context, generation int64, wg *sync.WaitGroup) {
	s.activeWorkers.Add(1)
	defer s.activeWorkers.Add(-1)
	defer wg.Done()

	s.log.Debug("monitor loop started", zap.Int64("generation", generation))
	defer s.log.Debug("monitor loop stopped", zap.Int64("generation", generation))

	lastRefresh := time.Now()

	for {
		if !s.sleep(ctx, s.WaitTimeout()) {
			return
		}

		// Idle-aware keepalive: a session that dispatched anything
		// recently does not need a heartbeat on top.
		if time.Since(s.disp.LastActivity()) >= s.KeepaliveInterval() {
			s.keepAlive(generation)
		}

		if s.source != nil && time.Since(lastRefresh) >= s.RefreshInterval() {
			lastRefresh = time.Now()
			s.refreshSettings()
		}
	}
}

// keepAlive dispatches a current-time request. The reply doubles as the
// liveness probe; the router consumes it silently.
func (s *Supervisor) keepAlive(generation int64) {
	requestID := s.disp.Dispatch(&gateway.CurrentTimeRequest{}, optional.None[ResponseCallback]())
	if requestID == DispatchFailed {
		s.log.Warn("keepalive dispatch rejected", zap.Int64("generation", generation))

		return
	}

	s.log.Debug("keepalive sent",
		zap.Int64("request_id", requestID),
		zap.Int64("generation", generation),
	)
}

// refreshSettings reloads from the settings source and applies the hot
// subset. Load failures keep the previous settings in force.
func (s *Supervisor) refreshSettings() {
	settings, err := s.source.Load()
	if err != nil {
		s.log.Error("settings reload failed, keeping previous settings", zap.Error(err))

		return
	}

	s.applySettings(settings)
}
