package production_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigmomma/inventario-erp/internal/application/production"
	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
	"github.com/bigmomma/inventario-erp/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: un almacén compartido y un TxRunner que lo fotografía al
// abrir la "transacción" y lo restaura si fn falla, para poder afirmar que la
// ejecución es todo-o-nada.
// ──────────────────────────────────────────────────────────────────────────────

type prodStore struct {
	seq       int
	orders    map[string]*entity.ProductionOrder
	movements map[string]*entity.StockMovement
	balances  map[string]*entity.StockBalance
	batches   map[string]*entity.ProductBatch
	locations map[string]*entity.Location
	materials map[string]*entity.Material
	products  map[string]*entity.Product
	recipes   map[string]*entity.Recipe
	lines     map[string][]entity.RecipeLine
}

func newProdStore() *prodStore {
	return &prodStore{
		orders:    make(map[string]*entity.ProductionOrder),
		movements: make(map[string]*entity.StockMovement),
		balances:  make(map[string]*entity.StockBalance),
		batches:   make(map[string]*entity.ProductBatch),
		locations: make(map[string]*entity.Location),
		materials: make(map[string]*entity.Material),
		products:  make(map[string]*entity.Product),
		recipes:   make(map[string]*entity.Recipe),
		lines:     make(map[string][]entity.RecipeLine),
	}
}

func (s *prodStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func cloneMap[V any](m map[string]*V) map[string]*V {
	out := make(map[string]*V, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

type prodTxRunner struct {
	store *prodStore
}

func (r *prodTxRunner) RunProduction(ctx context.Context, fn func(
	orderRepo repository.ProductionOrderRepository,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	batchRepo repository.ProductBatchRepository,
	locationRepo repository.LocationRepository,
) error) error {
	orders := cloneMap(r.store.orders)
	movements := cloneMap(r.store.movements)
	balances := cloneMap(r.store.balances)
	batches := cloneMap(r.store.batches)

	err := fn(
		&prodOrderRepo{store: r.store},
		&prodMovementRepo{store: r.store},
		&prodBalanceRepo{store: r.store},
		&prodBatchRepo{store: r.store},
		&prodLocationRepo{store: r.store},
	)
	if err != nil {
		// rollback
		r.store.orders = orders
		r.store.movements = movements
		r.store.balances = balances
		r.store.batches = batches
	}
	return err
}

type prodOrderRepo struct{ store *prodStore }

func (r *prodOrderRepo) Create(_ context.Context, o *entity.ProductionOrder) error {
	if o.ID == "" {
		o.ID = r.store.nextID("op")
	}
	cp := *o
	r.store.orders[o.ID] = &cp
	return nil
}

func (r *prodOrderRepo) GetByID(_ context.Context, id string) (*entity.ProductionOrder, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *prodOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *prodOrderRepo) MarkConsumed(_ context.Context, id string) error {
	o, ok := r.store.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = entity.OrderConsumed
	return nil
}

func (r *prodOrderRepo) ListByWarehouse(_ context.Context, warehouseID string, _, _ int) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, o := range r.store.orders {
		if o.WarehouseID == warehouseID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

type prodMovementRepo struct{ store *prodStore }

func (r *prodMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = r.store.nextID("mov")
	}
	cp := *m
	r.store.movements[m.ID] = &cp
	return nil
}

func (r *prodMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	m, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *prodMovementRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *prodMovementRepo) Update(_ context.Context, _ *entity.StockMovement) error { return nil }
func (r *prodMovementRepo) Delete(_ context.Context, _ string) error                { return nil }

func (r *prodMovementRepo) List(_ context.Context, _ repository.MovementFilter) ([]*entity.StockMovement, error) {
	return nil, nil
}

type prodBalanceRepo struct{ store *prodStore }

func balanceKey(locationID, materialID string) string { return locationID + "/" + materialID }

func (r *prodBalanceRepo) Get(_ context.Context, locationID, materialID string) (*entity.StockBalance, error) {
	if b, ok := r.store.balances[balanceKey(locationID, materialID)]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.StockBalance{LocationID: locationID, MaterialID: materialID, Quantity: decimal.Zero}, nil
}

func (r *prodBalanceRepo) GetForUpdate(_ context.Context, locationID, materialID string) (*entity.StockBalance, error) {
	key := balanceKey(locationID, materialID)
	if _, ok := r.store.balances[key]; !ok {
		r.store.balances[key] = &entity.StockBalance{LocationID: locationID, MaterialID: materialID, Quantity: decimal.Zero}
	}
	cp := *r.store.balances[key]
	return &cp, nil
}

func (r *prodBalanceRepo) UpdateQuantity(_ context.Context, b *entity.StockBalance) error {
	cp := *b
	r.store.balances[balanceKey(b.LocationID, b.MaterialID)] = &cp
	return nil
}

func (r *prodBalanceRepo) SetReorderMin(_ context.Context, _, _ string, _ decimal.Decimal) error {
	return nil
}

func (r *prodBalanceRepo) SumByMaterial(_ context.Context, materialID, warehouseID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range r.store.balances {
		loc := r.store.locations[b.LocationID]
		if b.MaterialID == materialID && loc != nil && loc.WarehouseID == warehouseID {
			total = total.Add(b.Quantity)
		}
	}
	return total, nil
}

func (r *prodBalanceRepo) ListWithStockForUpdate(_ context.Context, materialID, warehouseID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	for _, b := range r.store.balances {
		loc := r.store.locations[b.LocationID]
		if b.MaterialID == materialID && loc != nil && loc.WarehouseID == warehouseID && b.Quantity.GreaterThan(decimal.Zero) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.store.locations[out[i].LocationID].Name < r.store.locations[out[j].LocationID].Name
	})
	return out, nil
}

func (r *prodBalanceRepo) ListByWarehouse(_ context.Context, _ string) ([]repository.BalanceRow, error) {
	return nil, nil
}

func (r *prodBalanceRepo) AggregateByWarehouse(_ context.Context, _ string) ([]repository.MaterialTotal, error) {
	return nil, nil
}

func (r *prodBalanceRepo) ListBelowReorderMin(_ context.Context, _ string) ([]repository.BalanceRow, error) {
	return nil, nil
}

type prodBatchRepo struct{ store *prodStore }

func (r *prodBatchRepo) Create(_ context.Context, b *entity.ProductBatch) error {
	for _, existing := range r.store.batches {
		if existing.Code == b.Code {
			return domain.ErrDuplicate
		}
	}
	if b.ID == "" {
		b.ID = r.store.nextID("lote")
	}
	cp := *b
	r.store.batches[b.ID] = &cp
	return nil
}

func (r *prodBatchRepo) GetByID(_ context.Context, id string) (*entity.ProductBatch, error) {
	b, ok := r.store.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *prodBatchRepo) CountByProductAndDate(_ context.Context, productID string, date time.Time) (int, error) {
	n := 0
	for _, b := range r.store.batches {
		if b.ProductID == productID &&
			b.ProducedAt.Year() == date.Year() && b.ProducedAt.YearDay() == date.YearDay() {
			n++
		}
	}
	return n, nil
}

func (r *prodBatchRepo) ListSellable(_ context.Context, _, _ string, _ time.Time) ([]*entity.ProductBatch, error) {
	return nil, nil
}

func (r *prodBatchRepo) ListSellableForUpdate(_ context.Context, _, _ string, _ time.Time) ([]*entity.ProductBatch, error) {
	return nil, nil
}

func (r *prodBatchRepo) UpdateAvailable(_ context.Context, _ *entity.ProductBatch) error { return nil }

func (r *prodBatchRepo) ListNearExpiry(_ context.Context, _ string, _ time.Time, _ int) ([]*entity.ProductBatch, error) {
	return nil, nil
}

func (r *prodBatchRepo) ListExpired(_ context.Context, _ string, _ time.Time) ([]*entity.ProductBatch, error) {
	return nil, nil
}

type prodLocationRepo struct{ store *prodStore }

func (r *prodLocationRepo) Create(_ context.Context, l *entity.Location) error {
	cp := *l
	r.store.locations[l.ID] = &cp
	return nil
}

func (r *prodLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := r.store.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *prodLocationRepo) ListByWarehouse(_ context.Context, _ string) ([]*entity.Location, error) {
	return nil, nil
}

func (r *prodLocationRepo) CountByWarehouse(_ context.Context, _ string) (int, error) { return 0, nil }

func (r *prodLocationRepo) FirstActive(_ context.Context, warehouseID string) (*entity.Location, error) {
	var actives []*entity.Location
	for _, l := range r.store.locations {
		if l.WarehouseID == warehouseID && l.Active {
			actives = append(actives, l)
		}
	}
	if len(actives) == 0 {
		return nil, nil
	}
	sort.Slice(actives, func(i, j int) bool { return actives[i].Name < actives[j].Name })
	cp := *actives[0]
	return &cp, nil
}

func (r *prodLocationRepo) Update(_ context.Context, _ *entity.Location) error { return nil }

type prodRecipeRepo struct{ store *prodStore }

func (r *prodRecipeRepo) Create(_ context.Context, rec *entity.Recipe, lines []entity.RecipeLine) error {
	cp := *rec
	r.store.recipes[rec.ID] = &cp
	r.store.lines[rec.ID] = lines
	return nil
}

func (r *prodRecipeRepo) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	rec, ok := r.store.recipes[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *prodRecipeRepo) GetLines(_ context.Context, recipeID string) ([]entity.RecipeLine, error) {
	return r.store.lines[recipeID], nil
}

func (r *prodRecipeRepo) ListByProduct(_ context.Context, _ string) ([]*entity.Recipe, error) {
	return nil, nil
}

func (r *prodRecipeRepo) NextVersion(_ context.Context, _, _ string) (int, error) { return 1, nil }

type prodProductRepo struct{ store *prodStore }

func (r *prodProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *prodProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *prodProductRepo) ListByTenant(_ context.Context, _ string) ([]*entity.Product, error) {
	return nil, nil
}

func (r *prodProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }

type prodMaterialRepo struct{ store *prodStore }

func (r *prodMaterialRepo) Create(_ context.Context, m *entity.Material) error {
	cp := *m
	r.store.materials[m.ID] = &cp
	return nil
}

func (r *prodMaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	m, ok := r.store.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *prodMaterialRepo) ListByTenant(_ context.Context, _ string) ([]*entity.Material, error) {
	return nil, nil
}

func (r *prodMaterialRepo) Update(_ context.Context, _ *entity.Material) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: panadería con una sucursal, dos ubicaciones con harina repartida,
// receta de pan que rinde 20 unidades por lote y consume 0.5 kg de harina.
// ──────────────────────────────────────────────────────────────────────────────

type prodFixture struct {
	uc    *production.ProductionUseCase
	store *prodStore
}

func newProdFixture(t *testing.T) *prodFixture {
	t.Helper()
	store := newProdStore()
	ctx := context.Background()

	products := &prodProductRepo{store: store}
	materials := &prodMaterialRepo{store: store}
	recipes := &prodRecipeRepo{store: store}
	locations := &prodLocationRepo{store: store}
	balances := &prodBalanceRepo{store: store}
	orders := &prodOrderRepo{store: store}

	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "pan", TenantID: "t1", Name: "Pan francés", Unit: "unidad", ShelfLifeDays: 3, Active: true,
	}))
	require.NoError(t, materials.Create(ctx, &entity.Material{
		ID: "harina", TenantID: "t1", Name: "Harina 000", Unit: "kg", Active: true,
	}))
	require.NoError(t, recipes.Create(ctx,
		&entity.Recipe{ID: "rec-1", ProductID: "pan", Name: "Clásica", Version: 1, YieldPerBatch: decimal.NewFromInt(20), Active: true},
		[]entity.RecipeLine{{ID: "l1", RecipeID: "rec-1", MaterialID: "harina", Quantity: decimal.RequireFromString("0.5")}},
	))
	require.NoError(t, locations.Create(ctx, &entity.Location{ID: "loc-a", WarehouseID: "suc-1", Name: "Amasado", Active: true}))
	require.NoError(t, locations.Create(ctx, &entity.Location{ID: "loc-b", WarehouseID: "suc-1", Name: "Bodega", Active: true}))
	require.NoError(t, balances.UpdateQuantity(ctx, &entity.StockBalance{
		LocationID: "loc-a", MaterialID: "harina", Quantity: decimal.RequireFromString("0.6"),
	}))
	require.NoError(t, balances.UpdateQuantity(ctx, &entity.StockBalance{
		LocationID: "loc-b", MaterialID: "harina", Quantity: decimal.RequireFromString("0.5"),
	}))

	uc := production.NewProductionUseCase(
		&prodTxRunner{store: store},
		orders, recipes, products, materials, balances,
		logger.New(logger.Config{Level: "error"}),
	)
	return &prodFixture{uc: uc, store: store}
}

func (f *prodFixture) newOrder(t *testing.T, batches string) *entity.ProductionOrder {
	t.Helper()
	order, err := f.uc.Create(context.Background(), production.CreateInput{
		ProductID:   "pan",
		RecipeID:    "rec-1",
		WarehouseID: "suc-1",
		Batches:     decimal.RequireFromString(batches),
		Date:        time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC),
		ActorID:     "u1",
	})
	require.NoError(t, err)
	return order
}

func (f *prodFixture) balanceQty(locationID string) decimal.Decimal {
	return f.store.balances[balanceKey(locationID, "harina")].Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OrdenEnBorrador(t *testing.T) {
	f := newProdFixture(t)
	order := f.newOrder(t, "2")

	assert.Equal(t, entity.OrderDraft, order.Status)
	assert.NotEmpty(t, order.ID)
	assert.Empty(t, f.store.movements, "crear la orden no toca stock")
}

func TestCreate_LotesNoPositivos(t *testing.T) {
	f := newProdFixture(t)
	_, err := f.uc.Create(context.Background(), production.CreateInput{
		ProductID: "pan", RecipeID: "rec-1", WarehouseID: "suc-1",
		Batches: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_RecetaDeOtroProducto(t *testing.T) {
	f := newProdFixture(t)
	require.NoError(t, (&prodProductRepo{store: f.store}).Create(context.Background(), &entity.Product{
		ID: "torta", TenantID: "t1", Name: "Torta", Unit: "unidad", ShelfLifeDays: 5, Active: true,
	}))
	_, err := f.uc.Create(context.Background(), production.CreateInput{
		ProductID: "torta", RecipeID: "rec-1", WarehouseID: "suc-1",
		Batches: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Execute — camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestExecute_ConsumeGreedyPorNombreDeUbicacionYEmiteLote(t *testing.T) {
	f := newProdFixture(t)
	order := f.newOrder(t, "2") // requiere 1.0 kg de harina

	batch, err := f.uc.Execute(context.Background(), order.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, batch)

	// consumo greedy: Amasado se agota primero (0.6), Bodega aporta el resto (0.4)
	assert.True(t, f.balanceQty("loc-a").Equal(decimal.Zero), "Amasado debe quedar en cero")
	assert.True(t, f.balanceQty("loc-b").Equal(decimal.RequireFromString("0.1")), "Bodega debe quedar con 0.1")

	// cada toma dejó su asiento CONSUMO en el kardex
	require.Len(t, f.store.movements, 2)
	for _, m := range f.store.movements {
		assert.Equal(t, entity.MovementConsumption, m.Kind)
		assert.Equal(t, fmt.Sprintf("OP %s · Harina 000", order.ID), m.Note)
	}

	// lote emitido: rendimiento × lotes, vence a producción + vida útil
	assert.Equal(t, "pan-20240305-001", batch.Code)
	assert.True(t, batch.InitialQty.Equal(decimal.NewFromInt(40)))
	assert.True(t, batch.AvailableQty.Equal(batch.InitialQty))
	assert.Equal(t, time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC), batch.ExpiresAt)
	assert.Equal(t, "loc-a", batch.LocationID, "el destino es la primera ubicación activa por nombre")

	assert.Equal(t, entity.OrderConsumed, f.store.orders[order.ID].Status)
}

func TestExecute_SecuenciaDelCodigoIncrementaPorDia(t *testing.T) {
	f := newProdFixture(t)

	first := f.newOrder(t, "0.5")
	b1, err := f.uc.Execute(context.Background(), first.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "pan-20240305-001", b1.Code)

	second := f.newOrder(t, "0.5")
	b2, err := f.uc.Execute(context.Background(), second.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "pan-20240305-002", b2.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Execute — guardas
// ──────────────────────────────────────────────────────────────────────────────

func TestExecute_StockInsuficienteNoMutaNada(t *testing.T) {
	f := newProdFixture(t)
	order := f.newOrder(t, "4") // requiere 2.0 kg, hay 1.1

	_, err := f.uc.Execute(context.Background(), order.ID, "u1")

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	require.Len(t, insuf.Items, 1)
	assert.Equal(t, "harina", insuf.Items[0].ItemID)
	assert.Equal(t, "Harina 000", insuf.Items[0].ItemName)
	assert.True(t, insuf.Items[0].Required.Equal(decimal.NewFromInt(2)))
	assert.True(t, insuf.Items[0].Available.Equal(decimal.RequireFromString("1.1")))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// todo-o-nada: sin movimientos, sin lote, balances intactos, orden en borrador
	assert.Empty(t, f.store.movements)
	assert.Empty(t, f.store.batches)
	assert.True(t, f.balanceQty("loc-a").Equal(decimal.RequireFromString("0.6")))
	assert.True(t, f.balanceQty("loc-b").Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, entity.OrderDraft, f.store.orders[order.ID].Status)
}

func TestExecute_SinUbicacionDestinoRevierteTodo(t *testing.T) {
	f := newProdFixture(t)
	order := f.newOrder(t, "1")

	// todas las ubicaciones quedan inactivas entre crear y ejecutar
	for _, l := range f.store.locations {
		l.Active = false
	}

	_, err := f.uc.Execute(context.Background(), order.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrNoDestination)

	assert.Empty(t, f.store.movements)
	assert.Empty(t, f.store.batches)
	assert.True(t, f.balanceQty("loc-a").Equal(decimal.RequireFromString("0.6")),
		"el rollback debe restaurar los balances")
	assert.Equal(t, entity.OrderDraft, f.store.orders[order.ID].Status)
}

func TestExecute_FalloTardioRevierteElConsumoYaHecho(t *testing.T) {
	f := newProdFixture(t)
	order := f.newOrder(t, "1")

	// un lote ajeno ya ocupa el código que va a generar la ejecución, así el
	// alta del lote falla recién después de haber consumido materias primas
	f.store.batches["ajeno"] = &entity.ProductBatch{
		ID:         "ajeno",
		ProductID:  "otro-producto",
		Code:       entity.BatchCode("pan", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), 1),
		ProducedAt: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := f.uc.Execute(context.Background(), order.ID, "u1")
	require.ErrorIs(t, err, domain.ErrDuplicate)

	assert.Empty(t, f.store.movements, "el consumo ya aplicado debe revertirse")
	assert.True(t, f.balanceQty("loc-a").Equal(decimal.RequireFromString("0.6")))
	assert.True(t, f.balanceQty("loc-b").Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, entity.OrderDraft, f.store.orders[order.ID].Status)
}

func TestExecute_DobleEjecucionEsNoOp(t *testing.T) {
	f := newProdFixture(t)
	order := f.newOrder(t, "1")

	first, err := f.uc.Execute(context.Background(), order.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := f.uc.Execute(context.Background(), order.ID, "u1")
	require.NoError(t, err)
	assert.Nil(t, second, "la segunda ejecución no emite lote")

	assert.Len(t, f.store.batches, 1, "no debe duplicarse el lote")
	assert.Len(t, f.store.movements, 1, "no debe duplicarse el consumo")
}

func TestExecute_OrdenInexistente(t *testing.T) {
	f := newProdFixture(t)
	_, err := f.uc.Execute(context.Background(), "no-existe", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validate
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_SuficienteNoMuta(t *testing.T) {
	f := newProdFixture(t)
	order := f.newOrder(t, "2")

	require.NoError(t, f.uc.Validate(context.Background(), order.ID))

	assert.Empty(t, f.store.movements)
	assert.True(t, f.balanceQty("loc-a").Equal(decimal.RequireFromString("0.6")))
	assert.Equal(t, entity.OrderDraft, f.store.orders[order.ID].Status)
}

func TestValidate_ReportaFaltantesItemizados(t *testing.T) {
	f := newProdFixture(t)
	order := f.newOrder(t, "10") // requiere 5.0 kg, hay 1.1

	err := f.uc.Validate(context.Background(), order.ID)

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.True(t, insuf.Items[0].Required.Equal(decimal.NewFromInt(5)))
	assert.True(t, insuf.Items[0].Available.Equal(decimal.RequireFromString("1.1")))
}
