package memory

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var _ repository.IDMappingRepository = (*IDMappingRepo)(nil)

// IDMappingRepo implementación en memoria de IDMappingRepository.
type IDMappingRepo struct {
	s session
}

// NewIDMappingRepository construye el repositorio.
func NewIDMappingRepository(db *DB) *IDMappingRepo {
	return &IDMappingRepo{s: session{db: db}}
}

func (r *IDMappingRepo) Get(_ context.Context, storeID, kind, externalID string) (id string, ok bool, _ error) {
	r.s.read(func() { id, ok = r.s.db.mappings[mappingKey{storeID, kind, externalID}] })
	return id, ok, nil
}

func (r *IDMappingRepo) Put(_ context.Context, m entity.IDMapping) error {
	r.s.write(func() { r.s.db.mappings[mappingKey{m.StoreID, m.Kind, m.ExternalID}] = m.InternalID })
	return nil
}
