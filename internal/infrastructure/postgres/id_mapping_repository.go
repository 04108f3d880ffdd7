package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var _ repository.IDMappingRepository = (*IDMappingRepo)(nil)

// IDMappingRepo mapeo persistente ID externo -> ID interno por tienda.
type IDMappingRepo struct {
	q Querier
}

// NewIDMappingRepository construye el adaptador.
func NewIDMappingRepository(q Querier) *IDMappingRepo {
	return &IDMappingRepo{q: q}
}

func (r *IDMappingRepo) Get(ctx context.Context, storeID, kind, externalID string) (string, bool, error) {
	var id string
	err := r.q.QueryRow(ctx, `
		SELECT internal_id FROM id_mappings WHERE store_id = $1 AND kind = $2 AND external_id = $3`,
		storeID, kind, externalID).Scan(&id)
	if err != nil {
		if noRows(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get id mapping: %w", err)
	}
	return id, true, nil
}

// Put inserta o reemplaza el mapeo.
func (r *IDMappingRepo) Put(ctx context.Context, m entity.IDMapping) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO id_mappings (store_id, kind, external_id, internal_id) VALUES ($1, $2, $3, $4)
		ON CONFLICT (store_id, kind, external_id) DO UPDATE SET internal_id = EXCLUDED.internal_id`,
		m.StoreID, m.Kind, m.ExternalID, m.InternalID)
	if err != nil {
		return fmt.Errorf("put id mapping: %w", err)
	}
	return nil
}
