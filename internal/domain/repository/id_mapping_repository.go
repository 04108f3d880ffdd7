package repository

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
)

// IDMappingRepository persiste el mapeo ID externo → ID interno por tienda,
// entre ejecuciones de importación.
type IDMappingRepository interface {
	Get(ctx context.Context, storeID, kind, externalID string) (string, bool, error)
	// Put inserta o reemplaza el mapeo.
	Put(ctx context.Context, m entity.IDMapping) error
}
