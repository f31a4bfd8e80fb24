package controller

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ayusman/mudra/internal/pointer"
)

// RightClickLimiter fires at most one right click per cooldown.
type RightClickLimiter struct {
	cooldown time.Duration
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewRightClickLimiter creates a limiter that allows one right click per cooldown.
func NewRightClickLimiter(cooldown time.Duration, logger *zap.Logger) *RightClickLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RightClickLimiter{
		cooldown: cooldown,
		limiter:  rate.NewLimiter(rate.Every(cooldown), 1),
		logger:   logger,
	}
}

// Cooldown returns the minimum spacing between right clicks.
func (r *RightClickLimiter) Cooldown() time.Duration {
	return r.cooldown
}

// Fire attempts a right click at now. It fires when at least the cooldown has
// passed since the last fire; otherwise it returns nothing.
//
// Writes s.LastRightClick, only when it fires.
func (r *RightClickLimiter) Fire(s *Session, now time.Time) []pointer.Action {
	if !r.limiter.AllowN(now, 1) {
		return nil
	}
	s.LastRightClick = now
	r.logger.Info("right click")
	return []pointer.Action{{Kind: pointer.RightClick}}
}
