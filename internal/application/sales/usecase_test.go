package sales_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigmomma/inventario-erp/internal/application/sales"
	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
	"github.com/bigmomma/inventario-erp/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: almacén compartido con TxRunner que fotografía el estado al
// abrir la "transacción" y lo restaura si fn falla (confirmación todo-o-nada).
// ──────────────────────────────────────────────────────────────────────────────

type salesStore struct {
	seq          int
	sales        map[string]*entity.SalesOrder
	lines        map[string][]entity.SalesOrderLine
	batches      map[string]*entity.ProductBatch
	consumptions map[string]*entity.SalesConsumption
	consOrder    []string // IDs de consumo en orden de inserción
	products     map[string]*entity.Product
	warehouseOf  map[string]string // locationID → warehouseID
}

func newSalesStore() *salesStore {
	return &salesStore{
		sales:        make(map[string]*entity.SalesOrder),
		lines:        make(map[string][]entity.SalesOrderLine),
		batches:      make(map[string]*entity.ProductBatch),
		consumptions: make(map[string]*entity.SalesConsumption),
		products:     make(map[string]*entity.Product),
		warehouseOf:  make(map[string]string),
	}
}

func (s *salesStore) nextID(prefix string) string {
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

type salesTxRunner struct {
	store *salesStore
}

func (r *salesTxRunner) RunSales(ctx context.Context, fn func(
	saleRepo repository.SalesOrderRepository,
	batchRepo repository.ProductBatchRepository,
	consumptionRepo repository.SalesConsumptionRepository,
) error) error {
	salesSnap := cloneMap(r.store.sales)
	batchesSnap := cloneMap(r.store.batches)
	consSnap := cloneMap(r.store.consumptions)
	orderSnap := append([]string(nil), r.store.consOrder...)

	err := fn(
		&saleFakeRepo{store: r.store},
		&batchFakeRepo{store: r.store},
		&consumptionFakeRepo{store: r.store},
	)
	if err != nil {
		// rollback
		r.store.sales = salesSnap
		r.store.batches = batchesSnap
		r.store.consumptions = consSnap
		r.store.consOrder = orderSnap
	}
	return err
}

type saleFakeRepo struct{ store *salesStore }

func (r *saleFakeRepo) Create(_ context.Context, sale *entity.SalesOrder, lines []entity.SalesOrderLine) error {
	if sale.ID == "" {
		sale.ID = r.store.nextID("venta")
	}
	cp := *sale
	r.store.sales[sale.ID] = &cp
	for i := range lines {
		lines[i].SaleID = sale.ID
	}
	r.store.lines[sale.ID] = lines
	return nil
}

func (r *saleFakeRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	s, ok := r.store.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *saleFakeRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *saleFakeRepo) GetLines(_ context.Context, saleID string) ([]entity.SalesOrderLine, error) {
	return r.store.lines[saleID], nil
}

func (r *saleFakeRepo) MarkConfirmed(_ context.Context, id string) error {
	s, ok := r.store.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = entity.SaleConfirmed
	return nil
}

func (r *saleFakeRepo) ListByWarehouse(_ context.Context, warehouseID string, _, _ int) ([]*entity.SalesOrder, error) {
	var out []*entity.SalesOrder
	for _, s := range r.store.sales {
		if s.WarehouseID == warehouseID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type batchFakeRepo struct{ store *salesStore }

func (r *batchFakeRepo) Create(_ context.Context, b *entity.ProductBatch) error {
	if b.ID == "" {
		b.ID = r.store.nextID("lote")
	}
	cp := *b
	r.store.batches[b.ID] = &cp
	return nil
}

func (r *batchFakeRepo) GetByID(_ context.Context, id string) (*entity.ProductBatch, error) {
	b, ok := r.store.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *batchFakeRepo) CountByProductAndDate(_ context.Context, _ string, _ time.Time) (int, error) {
	return 0, nil
}

// listSellable orden FEFO: vencimiento ascendente y, a igual vencimiento, creación ascendente.
func (r *batchFakeRepo) listSellable(productID, warehouseID string, today time.Time) []*entity.ProductBatch {
	var out []*entity.ProductBatch
	for _, b := range r.store.batches {
		if b.ProductID != productID || r.store.warehouseOf[b.LocationID] != warehouseID {
			continue
		}
		if !b.Sellable(today) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiresAt.Equal(out[j].ExpiresAt) {
			return out[i].ExpiresAt.Before(out[j].ExpiresAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *batchFakeRepo) ListSellable(_ context.Context, productID, warehouseID string, today time.Time) ([]*entity.ProductBatch, error) {
	return r.listSellable(productID, warehouseID, today), nil
}

func (r *batchFakeRepo) ListSellableForUpdate(_ context.Context, productID, warehouseID string, today time.Time) ([]*entity.ProductBatch, error) {
	return r.listSellable(productID, warehouseID, today), nil
}

func (r *batchFakeRepo) UpdateAvailable(_ context.Context, b *entity.ProductBatch) error {
	stored, ok := r.store.batches[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.AvailableQty = b.AvailableQty
	return nil
}

func (r *batchFakeRepo) ListNearExpiry(_ context.Context, _ string, _ time.Time, _ int) ([]*entity.ProductBatch, error) {
	return nil, nil
}

func (r *batchFakeRepo) ListExpired(_ context.Context, _ string, _ time.Time) ([]*entity.ProductBatch, error) {
	return nil, nil
}

type consumptionFakeRepo struct{ store *salesStore }

func (r *consumptionFakeRepo) Create(_ context.Context, c *entity.SalesConsumption) error {
	if c.ID == "" {
		c.ID = r.store.nextID("cons")
	}
	cp := *c
	r.store.consumptions[c.ID] = &cp
	r.store.consOrder = append(r.store.consOrder, c.ID)
	return nil
}

func (r *consumptionFakeRepo) ListBySale(_ context.Context, saleID string) ([]*entity.SalesConsumption, error) {
	var out []*entity.SalesConsumption
	for _, id := range r.store.consOrder {
		c, ok := r.store.consumptions[id]
		if !ok || c.SaleID != saleID {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

type productFakeRepo struct{ store *salesStore }

func (r *productFakeRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *productFakeRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productFakeRepo) ListByTenant(_ context.Context, _ string) ([]*entity.Product, error) {
	return nil, nil
}

func (r *productFakeRepo) Update(_ context.Context, _ *entity.Product) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: tres lotes de pan con saldos 5/3/2. B2 y B3 vencen antes que B1;
// B3 se produjo después que B2, así el desempate por creación queda visible.
// ──────────────────────────────────────────────────────────────────────────────

type salesFixture struct {
	uc    *sales.SalesUseCase
	store *salesStore
}

func newSalesFixture(t *testing.T) *salesFixture {
	t.Helper()
	store := newSalesStore()
	ctx := context.Background()
	now := time.Now()

	products := &productFakeRepo{store: store}
	batches := &batchFakeRepo{store: store}
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "pan", TenantID: "t1", Name: "Pan francés", Unit: "unidad", ShelfLifeDays: 3, Active: true,
	}))
	store.warehouseOf["mostrador"] = "suc-1"

	seed := []struct {
		id      string
		expires time.Time
		qty     int64
		created time.Time
	}{
		{"b1", now.AddDate(0, 0, 10), 5, now.Add(-3 * time.Hour)},
		{"b2", now.AddDate(0, 0, 5), 3, now.Add(-2 * time.Hour)},
		{"b3", now.AddDate(0, 0, 5), 2, now.Add(-1 * time.Hour)},
	}
	for _, s := range seed {
		require.NoError(t, batches.Create(ctx, &entity.ProductBatch{
			ID:           s.id,
			ProductID:    "pan",
			LocationID:   "mostrador",
			Code:         "pan-" + s.id,
			ExpiresAt:    s.expires,
			InitialQty:   decimal.NewFromInt(s.qty),
			AvailableQty: decimal.NewFromInt(s.qty),
			CreatedAt:    s.created,
		}))
	}

	uc := sales.NewSalesUseCase(
		&salesTxRunner{store: store},
		&saleFakeRepo{store: store},
		batches,
		products,
		&consumptionFakeRepo{store: store},
		logger.New(logger.Config{Level: "error"}),
	)
	return &salesFixture{uc: uc, store: store}
}

func (f *salesFixture) newSale(t *testing.T, qty string) *entity.SalesOrder {
	t.Helper()
	sale, err := f.uc.Create(context.Background(), sales.CreateInput{
		TenantID:    "t1",
		WarehouseID: "suc-1",
		Lines:       []sales.LineInput{{ProductID: "pan", Quantity: decimal.RequireFromString(qty)}},
		ActorID:     "u1",
	})
	require.NoError(t, err)
	return sale
}

func (f *salesFixture) availableOf(batchID string) decimal.Decimal {
	return f.store.batches[batchID].AvailableQty
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateVenta_EnBorradorSinTocarLotes(t *testing.T) {
	f := newSalesFixture(t)
	sale := f.newSale(t, "4")

	assert.Equal(t, entity.SaleDraft, sale.Status)
	assert.True(t, f.availableOf("b1").Equal(decimal.NewFromInt(5)), "crear no consume lotes")
	assert.Empty(t, f.store.consumptions)
}

func TestCreateVenta_SinLineas(t *testing.T) {
	f := newSalesFixture(t)
	_, err := f.uc.Create(context.Background(), sales.CreateInput{TenantID: "t1", WarehouseID: "suc-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateVenta_CantidadNoPositiva(t *testing.T) {
	f := newSalesFixture(t)
	_, err := f.uc.Create(context.Background(), sales.CreateInput{
		TenantID:    "t1",
		WarehouseID: "suc-1",
		Lines:       []sales.LineInput{{ProductID: "pan", Quantity: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateVenta_ProductoDeOtroTenant(t *testing.T) {
	f := newSalesFixture(t)
	_, err := f.uc.Create(context.Background(), sales.CreateInput{
		TenantID:    "t-ajeno",
		WarehouseID: "suc-1",
		Lines:       []sales.LineInput{{ProductID: "pan", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirm — FEFO
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_ConsumeFEFOConDesempatePorCreacion(t *testing.T) {
	f := newSalesFixture(t)
	sale := f.newSale(t, "7")

	require.NoError(t, f.uc.Confirm(context.Background(), sale.ID, "u1"))

	// b2 y b3 vencen primero y se agotan completos (b2 antes que b3 por creación);
	// b1 cubre el resto parcialmente
	assert.True(t, f.availableOf("b2").Equal(decimal.Zero), "b2 debe agotarse")
	assert.True(t, f.availableOf("b3").Equal(decimal.Zero), "b3 debe agotarse")
	assert.True(t, f.availableOf("b1").Equal(decimal.NewFromInt(3)), "b1 debe aportar solo 2")

	cons, err := f.uc.Consumptions(context.Background(), sale.ID)
	require.NoError(t, err)
	require.Len(t, cons, 3)
	assert.Equal(t, "b2", cons[0].BatchID)
	assert.True(t, cons[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "b3", cons[1].BatchID)
	assert.True(t, cons[1].Quantity.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "b1", cons[2].BatchID)
	assert.True(t, cons[2].Quantity.Equal(decimal.NewFromInt(2)))

	assert.Equal(t, entity.SaleConfirmed, f.store.sales[sale.ID].Status)
}

func TestConfirm_LotesVencidosNoParticipan(t *testing.T) {
	f := newSalesFixture(t)
	// un lote vencido con saldo grande no puede cubrir la venta
	require.NoError(t, (&batchFakeRepo{store: f.store}).Create(context.Background(), &entity.ProductBatch{
		ID:           "vencido",
		ProductID:    "pan",
		LocationID:   "mostrador",
		Code:         "pan-vencido",
		ExpiresAt:    time.Now().AddDate(0, 0, -1),
		InitialQty:   decimal.NewFromInt(100),
		AvailableQty: decimal.NewFromInt(100),
		CreatedAt:    time.Now().Add(-48 * time.Hour),
	}))

	sale := f.newSale(t, "11") // hay 10 vendibles (5+3+2) + 100 vencidos

	err := f.uc.Confirm(context.Background(), sale.ID, "u1")

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.True(t, insuf.Items[0].Available.Equal(decimal.NewFromInt(10)),
		"el saldo vencido no cuenta como disponible")
	assert.True(t, f.availableOf("vencido").Equal(decimal.NewFromInt(100)))
}

func TestConfirm_InsuficienteNoMutaNada(t *testing.T) {
	f := newSalesFixture(t)
	sale := f.newSale(t, "12")

	err := f.uc.Confirm(context.Background(), sale.ID, "u1")

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	require.Len(t, insuf.Items, 1)
	assert.Equal(t, "pan", insuf.Items[0].ItemID)
	assert.Equal(t, "Pan francés", insuf.Items[0].ItemName)
	assert.True(t, insuf.Items[0].Required.Equal(decimal.NewFromInt(12)))
	assert.True(t, insuf.Items[0].Available.Equal(decimal.NewFromInt(10)))

	assert.True(t, f.availableOf("b1").Equal(decimal.NewFromInt(5)))
	assert.True(t, f.availableOf("b2").Equal(decimal.NewFromInt(3)))
	assert.True(t, f.availableOf("b3").Equal(decimal.NewFromInt(2)))
	assert.Empty(t, f.store.consumptions)
	assert.Equal(t, entity.SaleDraft, f.store.sales[sale.ID].Status)
}

func TestConfirm_DobleConfirmacionEsNoOp(t *testing.T) {
	f := newSalesFixture(t)
	sale := f.newSale(t, "3")

	require.NoError(t, f.uc.Confirm(context.Background(), sale.ID, "u1"))
	require.NoError(t, f.uc.Confirm(context.Background(), sale.ID, "u1"))

	cons, err := f.uc.Consumptions(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Len(t, cons, 1, "no debe duplicarse el consumo")
	assert.True(t, f.availableOf("b2").Equal(decimal.Zero), "b2 vence primero y cubre los 3")
	assert.True(t, f.availableOf("b3").Equal(decimal.NewFromInt(2)), "b3 no debe tocarse")
}

func TestConfirm_LineasDelMismoProductoSobrevendidasRevierteTodo(t *testing.T) {
	// cada línea pasa el chequeo por separado (6 ≤ 10) pero juntas exceden el
	// saldo: la segunda queda con remanente y la transacción completa se revierte
	f := newSalesFixture(t)
	sale, err := f.uc.Create(context.Background(), sales.CreateInput{
		TenantID:    "t1",
		WarehouseID: "suc-1",
		Lines: []sales.LineInput{
			{ProductID: "pan", Quantity: decimal.NewFromInt(6)},
			{ProductID: "pan", Quantity: decimal.NewFromInt(6)},
		},
		ActorID: "u1",
	})
	require.NoError(t, err)

	err = f.uc.Confirm(context.Background(), sale.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrConsistency)

	var cons *domain.ConsistencyError
	require.ErrorAs(t, err, &cons)
	assert.Equal(t, "venta", cons.Op)
	assert.True(t, cons.Remaining.Equal(decimal.NewFromInt(2)))

	assert.True(t, f.availableOf("b1").Equal(decimal.NewFromInt(5)), "el consumo de la primera línea debe revertirse")
	assert.True(t, f.availableOf("b2").Equal(decimal.NewFromInt(3)))
	assert.True(t, f.availableOf("b3").Equal(decimal.NewFromInt(2)))
	assert.Empty(t, f.store.consumptions)
	assert.Equal(t, entity.SaleDraft, f.store.sales[sale.ID].Status)
}

func TestConfirm_VentaInexistente(t *testing.T) {
	f := newSalesFixture(t)
	err := f.uc.Confirm(context.Background(), "no-existe", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Check
// ──────────────────────────────────────────────────────────────────────────────

func TestCheck_SuficienteNoMuta(t *testing.T) {
	f := newSalesFixture(t)
	sale := f.newSale(t, "10")

	require.NoError(t, f.uc.Check(context.Background(), sale.ID))

	assert.True(t, f.availableOf("b1").Equal(decimal.NewFromInt(5)))
	assert.Empty(t, f.store.consumptions)
	assert.Equal(t, entity.SaleDraft, f.store.sales[sale.ID].Status)
}

func TestCheck_ReportaFaltantes(t *testing.T) {
	f := newSalesFixture(t)
	sale := f.newSale(t, "15")

	err := f.uc.Check(context.Background(), sale.ID)

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.True(t, insuf.Items[0].Required.Equal(decimal.NewFromInt(15)))
	assert.True(t, insuf.Items[0].Available.Equal(decimal.NewFromInt(10)))
}
