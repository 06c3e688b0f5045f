package badge

import (
	"context"

	"go.uber.org/zap"
)

// Notifier forwards badge events to the delivery layer (email, push).
type Notifier interface {
	BadgeAwarded(ctx context.Context, e Event)
	BadgeRemoved(ctx context.Context, e Event)
}

// LogNotifier is the default Notifier when no delivery channel is configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) BadgeAwarded(_ context.Context, e Event) {
	n.log.Info("badge notification queued",
		zap.String("event_id", e.ID),
		zap.String("kind", "awarded"),
		zap.Uint("promoteur_id", e.PromoteurID),
		zap.String("badge", e.Badge.Code),
	)
}

func (n *LogNotifier) BadgeRemoved(_ context.Context, e Event) {
	n.log.Info("badge notification queued",
		zap.String("event_id", e.ID),
		zap.String("kind", "removed"),
		zap.Uint("promoteur_id", e.PromoteurID),
		zap.String("badge", e.Badge.Code),
		zap.String("reason", e.Reason),
	)
}
