package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the health payload. OK does not depend on the audit database.
type Status struct {
	OK       bool   `json:"ok"`
	Strategy string `json:"strategy"`
	Database string `json:"database,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	strategy func() string
	db       Pinger
}

// NewService constructs a new health service. db may be nil when the
// provider call log is kept in memory.
func NewService(strategy func() string, db Pinger) *Service {
	return &Service{strategy: strategy, db: db}
}

// Status reports the active strategy and, when configured, database reachability.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true}
	if s.strategy != nil {
		st.Strategy = s.strategy()
	}
	if s.db == nil {
		return st
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.PingContext(pingCtx); err != nil {
		st.Database = "down"
	} else {
		st.Database = "up"
	}
	return st
}
