package session

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// runReceive runs the client's message pump for one generation. The pump
// decodes wire messages and pushes them onto the inbound queue; when it
// returns early while the generation is still live, the loop backs off one
// wait-timeout period and restarts it rather than spinning.
func (s *Supervisor) runReceive(ctx context.Context, generation int64, wg *sync.WaitGroup) {
	s.activeWorkers.Add(1)
	defer s.activeWorkers.Add(-1)
	defer wg.Done()

	s.log.Debug("receive loop started", zap.Int64("generation", generation))
	defer s.log.Debug("receive loop stopped", zap.Int64("generation", generation))

	for {
		if ctx.Err() != nil {
			return
		}

		if err := s.client.ProcessMessages(ctx); err != nil {
			s.log.Error("message pump failed",
				zap.Int64("generation", generation),
				zap.Error(err),
			)
		}

		if ctx.Err() != nil {
			return
		}

		// On a dead connection the supervisor notices on its next health
		// check; either way, back off before restarting the pump.
		s.sleep(ctx, s.WaitTimeout())
	}
}
