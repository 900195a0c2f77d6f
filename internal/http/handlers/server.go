package handlers

import (
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
	"github.com/rogerio-castellano/warehouse-inventory/internal/inventory"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

// Server holds what the handlers need. Every field is required except Now.
type Server struct {
	Inventory   *inventory.Service
	Adjustments repo.AdjustmentRepository
	Metrics     repo.MetricsRepository
	Auth        *auth.AuthService
	Now         func() time.Time
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
