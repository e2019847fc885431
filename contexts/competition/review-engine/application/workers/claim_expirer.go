package workers

import (
	"context"
	"log/slog"
	"time"

	application "codecomp/contexts/competition/review-engine/application"
	"codecomp/contexts/competition/review-engine/ports"
)

// ClaimExpirer sweeps advisory reviewer locks that crossed their TTL so a
// disconnected reviewer session cannot strand a pending submission.
type ClaimExpirer struct {
	Claims *application.ClaimRegistry
	Clock  ports.Clock
	Logger *slog.Logger
}

func (e ClaimExpirer) RunOnce(_ context.Context) error {
	logger := application.ResolveLogger(e.Logger)
	now := time.Now().UTC()
	if e.Clock != nil {
		now = e.Clock.Now().UTC()
	}

	released := e.Claims.ReleaseExpired(now)
	if released > 0 {
		logger.Info("claim expiry sweep completed",
			"event", "review_claim_expiry_completed",
			"module", "competition/review-engine",
			"layer", "worker",
			"released_count", released,
		)
	}
	return nil
}
