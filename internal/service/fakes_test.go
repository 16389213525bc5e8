package service

import (
	"context"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. They keep just enough
// state for the service tests and let individual calls be forced to fail.

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (f *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _, _ int, _ string) ([]model.AuditLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

type fakeNotifier struct {
	events []string
	data   []interface{}
}

func (f *fakeNotifier) BroadcastEvent(event string, data interface{}) {
	f.events = append(f.events, event)
	f.data = append(f.data, data)
}

type fakeProductRepo struct {
	products map[uuid.UUID]model.Product
	failFor  map[uuid.UUID]error

	stockUpdates map[uuid.UUID]int
	priceUpdates map[uuid.UUID]*float64
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	f := &fakeProductRepo{
		products:     make(map[uuid.UUID]model.Product),
		failFor:      make(map[uuid.UUID]error),
		stockUpdates: make(map[uuid.UUID]int),
		priceUpdates: make(map[uuid.UUID]*float64),
	}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var found []model.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

func (f *fakeProductRepo) List(_ context.Context, _, _ int, _ string, _ *uuid.UUID) ([]model.Product, int64, error) {
	var all []model.Product
	for _, p := range f.products {
		all = append(all, p)
	}
	return all, int64(len(all)), nil
}

func (f *fakeProductRepo) UpdateStockPrice(_ context.Context, id uuid.UUID, stock int, price *float64) error {
	if err, ok := f.failFor[id]; ok {
		return err
	}
	p := f.products[id]
	p.Stock = stock
	if price != nil {
		p.Price = *price
	}
	f.products[id] = p
	f.stockUpdates[id] = stock
	f.priceUpdates[id] = price
	return nil
}

type fakeSupplierRepo struct {
	suppliers  map[uuid.UUID]model.Supplier
	orderCount int64
}

func newFakeSupplierRepo(suppliers ...model.Supplier) *fakeSupplierRepo {
	f := &fakeSupplierRepo{suppliers: make(map[uuid.UUID]model.Supplier)}
	for _, s := range suppliers {
		f.suppliers[s.ID] = s
	}
	return f
}

func (f *fakeSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.suppliers[s.ID] = *s
	return nil
}

func (f *fakeSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	f.suppliers[s.ID] = *s
	return nil
}

func (f *fakeSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.suppliers, id)
	return nil
}

func (f *fakeSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (f *fakeSupplierRepo) List(_ context.Context, _, _ int, _ string) ([]model.Supplier, int64, error) {
	var all []model.Supplier
	for _, s := range f.suppliers {
		all = append(all, s)
	}
	return all, int64(len(all)), nil
}

func (f *fakeSupplierRepo) CountOrders(_ context.Context, _ uuid.UUID) (int64, error) {
	return f.orderCount, nil
}

type fakeClientRepo struct {
	clients    map[uuid.UUID]model.Client
	orderCount int64
	deleted    []uuid.UUID
}

func newFakeClientRepo(clients ...model.Client) *fakeClientRepo {
	f := &fakeClientRepo{clients: make(map[uuid.UUID]model.Client)}
	for _, c := range clients {
		f.clients[c.ID] = c
	}
	return f
}

func (f *fakeClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.clients[c.ID] = *c
	return nil
}

func (f *fakeClientRepo) Update(_ context.Context, c *model.Client) error {
	f.clients[c.ID] = *c
	return nil
}

func (f *fakeClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.clients, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeClientRepo) List(_ context.Context, _, _ int, _ string) ([]model.Client, int64, error) {
	var all []model.Client
	for _, c := range f.clients {
		all = append(all, c)
	}
	return all, int64(len(all)), nil
}

func (f *fakeClientRepo) CountOrders(_ context.Context, _ uuid.UUID) (int64, error) {
	return f.orderCount, nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*model.Order

	failCreateItems error
	created         []uuid.UUID
	itemBatches     [][]model.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	stored := *o
	f.orders[o.ID] = &stored
	f.created = append(f.created, o.ID)
	return nil
}

func (f *fakeOrderRepo) CreateItems(_ context.Context, items []model.OrderItem) error {
	if f.failCreateItems != nil {
		return f.failCreateItems
	}
	if len(items) == 0 {
		return nil
	}
	f.itemBatches = append(f.itemBatches, items)
	if o, ok := f.orders[items[0].OrderID]; ok {
		o.Items = append(o.Items, items...)
	}
	return nil
}

func (f *fakeOrderRepo) FindByIDWithItems(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) List(_ context.Context, _, _ int, _ string, _ *uuid.UUID) ([]model.Order, int64, error) {
	var all []model.Order
	for _, o := range f.orders {
		all = append(all, *o)
	}
	return all, int64(len(all)), nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) DeleteItemsByOrderID(_ context.Context, orderID uuid.UUID) error {
	if o, ok := f.orders[orderID]; ok {
		o.Items = nil
	}
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.orders, id)
	return nil
}

type fakeSupplierOrderRepo struct {
	orders map[uuid.UUID]*model.SupplierOrder

	failCreateItems error
	itemBatches     [][]model.SupplierOrderItem
	deletedItemsFor []uuid.UUID
}

func newFakeSupplierOrderRepo() *fakeSupplierOrderRepo {
	return &fakeSupplierOrderRepo{orders: make(map[uuid.UUID]*model.SupplierOrder)}
}

func (f *fakeSupplierOrderRepo) Create(_ context.Context, o *model.SupplierOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	stored := *o
	f.orders[o.ID] = &stored
	return nil
}

func (f *fakeSupplierOrderRepo) CreateItems(_ context.Context, items []model.SupplierOrderItem) error {
	if f.failCreateItems != nil {
		return f.failCreateItems
	}
	if len(items) == 0 {
		return nil
	}
	f.itemBatches = append(f.itemBatches, items)
	if o, ok := f.orders[items[0].SupplierOrderID]; ok {
		o.Items = append(o.Items, items...)
	}
	return nil
}

func (f *fakeSupplierOrderRepo) Update(_ context.Context, o *model.SupplierOrder) error {
	stored := *o
	f.orders[o.ID] = &stored
	return nil
}

func (f *fakeSupplierOrderRepo) FindByIDWithItems(_ context.Context, id uuid.UUID) (*model.SupplierOrder, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeSupplierOrderRepo) List(_ context.Context, _, _ int, _ string, _ *uuid.UUID) ([]model.SupplierOrder, int64, error) {
	var all []model.SupplierOrder
	for _, o := range f.orders {
		all = append(all, *o)
	}
	return all, int64(len(all)), nil
}

func (f *fakeSupplierOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeSupplierOrderRepo) DeleteItemsByOrderID(_ context.Context, orderID uuid.UUID) error {
	f.deletedItemsFor = append(f.deletedItemsFor, orderID)
	if o, ok := f.orders[orderID]; ok {
		o.Items = nil
	}
	return nil
}

func (f *fakeSupplierOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.orders, id)
	return nil
}
