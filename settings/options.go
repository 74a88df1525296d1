package settings

import (
	"time"

	"go.uber.org/ratelimit"
)

type ServiceOption func(*Service)

// WithStorageKey overrides the key under which the record is persisted.
func WithStorageKey(key string) ServiceOption {
	return func(svc *Service) {
		svc.key = key
	}
}

// WithClock overrides the time source used for UpdatedAt stamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(svc *Service) {
		svc.now = now
	}
}

// WithUpdateRatelimiter paces administrative updates.
func WithUpdateRatelimiter(rl ratelimit.Limiter) ServiceOption {
	return func(svc *Service) {
		svc.updateRatelimiter = rl
	}
}

// WithAuditor enables change recording on every update.
func WithAuditor(auditor Auditor) ServiceOption {
	return func(svc *Service) {
		svc.auditor = auditor
	}
}
