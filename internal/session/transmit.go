package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
)

// runTransmit drains the outbound queue and forwards each request to the
// client. A transmit error is logged and the request dropped; connection
// health is the supervisor's call, not this loop's.
func (s *Supervisor) runTransmit(ctx context.Context, generation int64, wg *sync.WaitGroup) {
	s.activeWorkers.Add(1)
	defer s.activeWorkers.Add(-1)
	defer wg.Done()

	s.log.Debug("transmit loop started", zap.Int64("generation", generation))
	defer s.log.Debug("transmit loop stopped", zap.Int64("generation", generation))

	for {
		if ctx.Err() != nil {
			return
		}

		request, ok := s.outbound.Pop(ctx, s.WaitTimeout())
		if !ok {
			continue
		}

		if err := s.transmit(request); err != nil {
			s.log.Error("transmit failed",
				zap.String("kind", string(request.Kind())),
				zap.Int64("request_id", request.RequestID()),
				zap.Int64("generation", generation),
				zap.Error(err),
			)
		}
	}
}

// transmit maps one request onto the matching client call. The request set is
// sealed, so the switch is exhaustive over the concrete types.
func (s *Supervisor) transmit(request gateway.Request) error {
	switch req := request.(type) {
	case *gateway.CurrentTimeRequest:
		return s.client.RequestCurrentTime(req.RequestID())
	case *gateway.HistoricalDataRequest:
		return s.client.RequestHistoricalData(req)
	case *gateway.RealtimeDataRequest:
		return s.client.RequestRealtimeData(req)
	case *gateway.CancelHistoricalDataRequest:
		// The cancel tears down the original subscription's correlation;
		// no further bars must reach a stale callback.
		s.registry.Remove(req.TargetRequestID)

		return s.client.CancelHistoricalData(req.TargetRequestID)
	case *gateway.CancelRealtimeDataRequest:
		s.registry.Remove(req.TargetRequestID)

		return s.client.CancelRealtimeData(req.TargetRequestID)
	case *gateway.PlaceOrderRequest:
		return s.client.PlaceOrder(req)
	case *gateway.CancelOrderRequest:
		return s.client.CancelOrder(req.OrderID)
	default:
		s.log.Error("unknown request kind", zap.String("kind", string(request.Kind())))

		return nil
	}
}
