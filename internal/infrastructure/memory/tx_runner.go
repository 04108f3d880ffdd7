package memory

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/application/sales"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)

type txState struct {
	undo []func()
}

func (t *txState) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

// TxRunner serializa las transacciones tomando el lock de escritura de la DB.
// Si fn falla (o entra en pánico) se aplican las acciones de deshacer en orden inverso.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunSale ejecuta fn con repositorios de catálogo y ventas atados a la transacción.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	models repository.ModelRepository,
	units repository.UnitRepository,
	saleRepo repository.SaleRepository,
) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	tx := &txState{}
	s := session{db: r.db, tx: tx}
	committed := false
	defer func() {
		if !committed {
			tx.rollback()
		}
	}()

	if err := fn(&ModelRepo{s: s}, &UnitRepo{s: s}, &SaleRepo{s: s}); err != nil {
		return err
	}
	committed = true
	return nil
}
