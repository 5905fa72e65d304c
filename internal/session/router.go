package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
)

// runRouter drains the inbound queue and delivers each response to its
// consumer. Errors, executions and order status changes are broadcast to the
// registered handlers; everything else is matched against the correlation
// registry. A response with no correlation entry is logged at warn and
// dropped, never treated as fatal.
func (s *Supervisor) runRouter(ctx context.Context, generation int64, wg *sync.WaitGroup) {
	s.activeWorkers.Add(1)
	defer s.activeWorkers.Add(-1)
	defer wg.Done()

	s.log.Debug("router loop started", zap.Int64("generation", generation))
	defer s.log.Debug("router loop stopped", zap.Int64("generation", generation))

	for {
		if ctx.Err() != nil {
			return
		}

		response, ok := s.inbound.Pop(ctx, s.WaitTimeout())
		if !ok {
			continue
		}

		s.route(response)
	}
}

// route delivers one response. Handler and callback invocations happen
// outside any lock held by the session.
func (s *Supervisor) route(response gateway.Response) {
	switch resp := response.(type) {
	case *gateway.ErrorResponse:
		// Gateway errors can reference an unrelated in-flight request, so
		// they always go to the broadcast handler, never to the entry the
		// id happens to point at.
		s.handlerMu.RLock()
		handler := s.errorHandler
		s.handlerMu.RUnlock()

		if handler != nil {
			handler(resp)

			return
		}

		s.log.Error("gateway error",
			zap.Int("code", resp.Code),
			zap.Int64("request_id", resp.RequestID()),
			zap.String("message", resp.Message),
		)

		return

	case *gateway.ExecutionResponse:
		s.handlerMu.RLock()
		handler := s.executionHandler
		s.handlerMu.RUnlock()

		if handler == nil {
			s.log.Warn("execution report with no handler installed",
				zap.Int64("order_id", resp.OrderID),
				zap.Float64("fill_quantity", resp.FillQuantity),
				zap.Float64("fill_price", resp.FillPrice),
			)

			return
		}

		handler(resp)

		return

	case *gateway.OrderStatusResponse:
		s.handlerMu.RLock()
		handler := s.orderStatusHandler
		s.handlerMu.RUnlock()

		if handler == nil {
			s.log.Warn("order status with no handler installed",
				zap.Int64("order_id", resp.OrderID),
				zap.String("status", resp.Status),
			)

			return
		}

		handler(resp)

		return

	case *gateway.CurrentTimeResponse:
		// Keepalive reply. Record the gateway clock and consume silently.
		s.lastServerTime.Store(resp.Time.UnixNano())
		s.log.Debug("gateway time", zap.Time("server_time", resp.Time))

		return
	}

	callback, ok := s.registry.Get(response.RequestID())
	if !ok {
		s.log.Warn("unmatched response dropped",
			zap.String("kind", string(response.Kind())),
			zap.Int64("request_id", response.RequestID()),
		)

		return
	}

	// The entry stays registered after delivery: a kept-up-to-date bar
	// series keeps streaming past its terminal bar, and tick subscriptions
	// never terminate on their own. Cancels and generation teardown are
	// the only removers.
	callback(response)
}
