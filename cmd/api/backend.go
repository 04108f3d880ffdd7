package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/CellStock-api/internal/application/sales"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/memory"
	"github.com/jhoicas/CellStock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/CellStock-api/pkg/config"
	"github.com/jhoicas/CellStock-api/pkg/logger"
)

// backend repositorios y transacciones del driver elegido.
type backend struct {
	stores    repository.StoreRepository
	users     repository.UserRepository
	models    repository.ModelRepository
	units     repository.UnitRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	mappings  repository.IDMappingRepository
	tx        sales.TxRunner
	close     func()
}

func openBackend(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*backend, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		db := memory.NewDB()
		return &backend{
			stores:    memory.NewStoreRepository(db),
			users:     memory.NewUserRepository(db),
			models:    memory.NewModelRepository(db),
			units:     memory.NewUnitRepository(db),
			customers: memory.NewCustomerRepository(db),
			sales:     memory.NewSaleRepository(db),
			mappings:  memory.NewIDMappingRepository(db),
			tx:        memory.NewTxRunner(db),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}
	return &backend{
		stores:    postgres.NewStoreRepository(pool),
		users:     postgres.NewUserRepository(pool),
		models:    postgres.NewModelRepository(pool),
		units:     postgres.NewUnitRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		mappings:  postgres.NewIDMappingRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}
