package cache

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
)

// Noop se usa cuando no hay Redis configurado: nunca hay hit.
type Noop struct{}

func (Noop) Get(context.Context, string, string) (*dto.DashboardStats, bool) { return nil, false }
func (Noop) Set(context.Context, string, string, *dto.DashboardStats)        {}
func (Noop) InvalidateStore(context.Context, string)                         {}
