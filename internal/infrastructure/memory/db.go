// Package memory implementa los puertos de repositorio sobre mapas en memoria.
// Se usa en tests y en desarrollo con DB_DRIVER=memory.
package memory

import (
	"slices"
	"sync"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
)

// DB contiene todas las colecciones. Las lecturas devuelven copias.
type DB struct {
	mu        sync.RWMutex
	stores    *table[entity.Store]
	users     *table[entity.User]
	models    *table[entity.ProductModel]
	units     *table[entity.ProductUnit]
	customers *table[entity.Customer]
	sales     *table[entity.Sale]
	mappings  map[mappingKey]string
}

type mappingKey struct {
	storeID, kind, externalID string
}

// NewDB crea una base vacía.
func NewDB() *DB {
	return &DB{
		stores:    newTable(func(s *entity.Store) *entity.Store { c := *s; return &c }),
		users:     newTable(func(u *entity.User) *entity.User { c := *u; return &c }),
		models:    newTable(func(m *entity.ProductModel) *entity.ProductModel { c := *m; return &c }),
		units:     newTable(cloneUnit),
		customers: newTable(func(c *entity.Customer) *entity.Customer { cc := *c; return &cc }),
		sales:     newTable(cloneSale),
		mappings:  make(map[mappingKey]string),
	}
}

func cloneUnit(u *entity.ProductUnit) *entity.ProductUnit {
	c := *u
	if u.Battery != nil {
		b := *u.Battery
		c.Battery = &b
	}
	return &c
}

func cloneSale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Items = slices.Clone(s.Items)
	return &c
}

// table guarda filas por ID conservando el orden de inserción.
type table[T any] struct {
	rows  map[string]*T
	order []string
	clone func(*T) *T
}

func newTable[T any](clone func(*T) *T) *table[T] {
	return &table[T]{rows: make(map[string]*T), clone: clone}
}

func (t *table[T]) get(id string) (*T, bool) {
	v, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	return t.clone(v), true
}

// raw devuelve la fila sin copiar; solo para mutaciones bajo lock.
func (t *table[T]) raw(id string) (*T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) insertAt(idx int, id string, v *T) {
	t.rows[id] = t.clone(v)
	if idx < 0 || idx >= len(t.order) {
		t.order = append(t.order, id)
		return
	}
	t.order = slices.Insert(t.order, idx, id)
}

func (t *table[T]) put(id string, v *T) {
	t.rows[id] = t.clone(v)
}

// remove borra la fila y devuelve la copia eliminada y su posición.
func (t *table[T]) remove(id string) (*T, int, bool) {
	v, ok := t.rows[id]
	if !ok {
		return nil, -1, false
	}
	delete(t.rows, id)
	idx := slices.Index(t.order, id)
	if idx >= 0 {
		t.order = slices.Delete(t.order, idx, idx+1)
	}
	return v, idx, true
}

// filter devuelve copias de las filas que cumplen fn, en orden de inserción.
func (t *table[T]) filter(fn func(*T) bool) []*T {
	out := make([]*T, 0)
	for _, id := range t.order {
		v := t.rows[id]
		if fn(v) {
			out = append(out, t.clone(v))
		}
	}
	return out
}

func (t *table[T]) count(fn func(*T) bool) int {
	n := 0
	for _, v := range t.rows {
		if fn(v) {
			n++
		}
	}
	return n
}

// session ata los repositorios a la DB y, dentro de una transacción, al registro de deshacer.
// En transacción el lock de escritura ya lo tiene el TxRunner.
type session struct {
	db *DB
	tx *txState
}

func (s session) read(fn func()) {
	if s.tx == nil {
		s.db.mu.RLock()
		defer s.db.mu.RUnlock()
	}
	fn()
}

func (s session) write(fn func()) {
	if s.tx == nil {
		s.db.mu.Lock()
		defer s.db.mu.Unlock()
	}
	fn()
}

func (s session) onRollback(undo func()) {
	if s.tx != nil {
		s.tx.undo = append(s.tx.undo, undo)
	}
}

// insert agrega la fila registrando su deshacer.
func insert[T any](s session, t *table[T], id string, v *T) {
	t.insertAt(-1, id, v)
	s.onRollback(func() { t.remove(id) })
}

// replace sobrescribe la fila registrando el valor previo.
func replace[T any](s session, t *table[T], id string, v *T) bool {
	prev, ok := t.raw(id)
	if !ok {
		return false
	}
	t.put(id, v)
	s.onRollback(func() { t.rows[id] = prev })
	return true
}

// drop elimina la fila registrando su reinserción en la misma posición.
func drop[T any](s session, t *table[T], id string) bool {
	prev, idx, ok := t.remove(id)
	if !ok {
		return false
	}
	s.onRollback(func() { t.insertAt(idx, id, prev) })
	return true
}
