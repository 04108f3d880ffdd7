// Package analytics contiene los agregados del dashboard de tienda y de plataforma.
package analytics

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/CellStock-api/internal/application/dto"
	"github.com/jhoicas/CellStock-api/internal/application/tenancy"
	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

const topModels = 10 // modelos en el ranking de más vendidos

// Cache guarda dashboards ya calculados por (tienda, mes).
type Cache interface {
	Get(ctx context.Context, storeID, month string) (*dto.DashboardStats, bool)
	Set(ctx context.Context, storeID, month string, stats *dto.DashboardStats)
	InvalidateStore(ctx context.Context, storeID string)
}

// Repos puertos de lectura que usa el dashboard.
type Repos struct {
	Stores    repository.StoreRepository
	Users     repository.UserRepository
	Models    repository.ModelRepository
	Units     repository.UnitRepository
	Customers repository.CustomerRepository
	Sales     repository.SaleRepository
}

// DashboardUseCase calcula estadísticas recorriendo inventario y ventas.
// Las lecturas no son consistentes con escrituras concurrentes.
type DashboardUseCase struct {
	r     Repos
	cache Cache
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(r Repos, cache Cache) *DashboardUseCase {
	return &DashboardUseCase{r: r, cache: cache}
}

// Dashboard estadísticas de una tienda. month filtra solo el ranking por prefijo
// de fecha: "2024-03" es un mes, "2024" el año entero.
func (uc *DashboardUseCase) Dashboard(ctx context.Context, scope tenancy.Scope, month string) (*dto.DashboardStats, error) {
	month = strings.TrimSpace(month)
	if err := validPeriod(month); err != nil {
		return nil, err
	}
	storeID := scope.StoreID()
	if uc.cache != nil {
		if stats, ok := uc.cache.Get(ctx, storeID, month); ok {
			return stats, nil
		}
	}

	// ── Lecturas en paralelo ──────────────────────────────────────────────────
	var (
		models    []*entity.ProductModel
		units     []*entity.ProductUnit
		sales     []*entity.Sale
		customers int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { models, err = uc.r.Models.ListByStore(gctx, storeID); return err })
	g.Go(func() (err error) { units, err = uc.r.Units.List(gctx, storeID, repository.UnitFilter{}); return err })
	g.Go(func() (err error) { sales, err = uc.r.Sales.ListByStore(gctx, storeID); return err })
	g.Go(func() (err error) { customers, err = uc.r.Customers.Count(gctx, storeID); return err })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &dto.DashboardStats{
		TotalModels:    len(models),
		TotalCustomers: customers,
		TotalSales:     len(sales),
		Revenue:        decimal.Zero,
		InStock:        []dto.ModelStock{},
		OutOfStock:     []dto.ModelStock{},
		Month:          month,
	}

	available := make(map[string]int, len(models))
	for _, u := range units {
		if !u.Sold {
			stats.AvailableUnits++
			available[u.ModelID]++
		}
	}
	for _, m := range models {
		ms := dto.ModelStock{ModelID: m.ID, Name: m.Name, AvailableUnits: available[m.ID]}
		if ms.AvailableUnits > 0 {
			stats.InStock = append(stats.InStock, ms)
		} else {
			stats.OutOfStock = append(stats.OutOfStock, ms)
		}
	}
	for _, s := range sales {
		stats.Revenue = stats.Revenue.Add(s.Total)
	}
	stats.TopModels = rankModels(sales, month)

	if uc.cache != nil {
		uc.cache.Set(ctx, storeID, month, stats)
	}
	return stats, nil
}

// validPeriod acepta vacío, YYYY o YYYY-MM.
func validPeriod(p string) error {
	if p == "" {
		return nil
	}
	layout := "2006-01"
	if len(p) == 4 {
		layout = "2006"
	}
	if _, err := time.Parse(layout, p); err != nil {
		return domain.InvalidInput("mes inválido, use el formato YYYY-MM o YYYY")
	}
	return nil
}

// rankModels top de modelos por unidades vendidas. Los empates conservan el
// orden en que cada modelo apareció por primera vez. Las líneas sin modelo
// (ventas importadas sin unidades) no cuentan.
func rankModels(sales []*entity.Sale, month string) []dto.TopModel {
	index := make(map[string]int)
	ranking := []dto.TopModel{}
	for _, s := range sales {
		if month != "" && !strings.HasPrefix(s.Date.UTC().Format(time.RFC3339), month) {
			continue
		}
		for _, it := range s.Items {
			if it.ModelID == "" {
				continue
			}
			i, ok := index[it.ModelID]
			if !ok {
				i = len(ranking)
				index[it.ModelID] = i
				ranking = append(ranking, dto.TopModel{ModelID: it.ModelID, Name: it.ModelName, Value: decimal.Zero})
			}
			ranking[i].Quantity++
			ranking[i].Value = ranking[i].Value.Add(it.Price)
		}
	}
	sort.SliceStable(ranking, func(a, b int) bool { return ranking[a].Quantity > ranking[b].Quantity })
	if len(ranking) > topModels {
		ranking = ranking[:topModels]
	}
	return ranking
}

// StoreStats métricas resumidas de una tienda para los listados de administración.
func (uc *DashboardUseCase) StoreStats(ctx context.Context, storeID string) (dto.StoreStats, error) {
	st, _, err := uc.storeStats(ctx, storeID)
	return st, err
}

func (uc *DashboardUseCase) storeStats(ctx context.Context, storeID string) (dto.StoreStats, []*entity.Sale, error) {
	var (
		st    dto.StoreStats
		sales []*entity.Sale
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { st.TotalModels, err = uc.r.Models.Count(gctx, storeID); return err })
	g.Go(func() (err error) { st.AvailableUnits, err = uc.r.Units.CountAvailable(gctx, storeID, ""); return err })
	g.Go(func() (err error) { st.TotalCustomers, err = uc.r.Customers.Count(gctx, storeID); return err })
	g.Go(func() (err error) { sales, err = uc.r.Sales.ListByStore(gctx, storeID); return err })
	if err := g.Wait(); err != nil {
		return dto.StoreStats{}, nil, err
	}
	st.TotalSales = len(sales)
	st.Revenue = decimal.Zero
	for _, s := range sales {
		st.Revenue = st.Revenue.Add(s.Total)
	}
	return st, sales, nil
}

// PlatformDashboard agregado de todas las tiendas (solo super_admin).
func (uc *DashboardUseCase) PlatformDashboard(ctx context.Context) (*dto.PlatformDashboard, error) {
	stores, err := uc.r.Stores.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.r.Users.List(ctx)
	if err != nil {
		return nil, err
	}

	perStore := make([]dto.StoreStats, len(stores))
	storeSales := make([][]*entity.Sale, len(stores))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, s := range stores {
		g.Go(func() (err error) {
			perStore[i], storeSales[i], err = uc.storeStats(gctx, s.ID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.PlatformDashboard{
		TotalStores: len(stores),
		TotalUsers:  len(users),
		Revenue:     decimal.Zero,
		Stores:      make([]dto.StoreWithStats, 0, len(stores)),
	}
	var all []*entity.Sale
	for i, s := range stores {
		if s.Active {
			out.ActiveStores++
		}
		out.TotalModels += perStore[i].TotalModels
		out.AvailableUnits += perStore[i].AvailableUnits
		out.TotalCustomers += perStore[i].TotalCustomers
		out.TotalSales += perStore[i].TotalSales
		all = append(all, storeSales[i]...)
		out.Revenue = out.Revenue.Add(perStore[i].Revenue)
		out.Stores = append(out.Stores, dto.StoreWithStats{
			StoreResponse: dto.StoreResponse{
				ID:        s.ID,
				Name:      s.Name,
				Slug:      s.Slug,
				Active:    s.Active,
				LogoURL:   s.LogoURL,
				CreatedAt: s.CreatedAt,
			},
			Stats: perStore[i],
		})
	}
	out.TopModels = rankModels(all, "")
	return out, nil
}
