package service

import (
	"context"
	"errors"
	"testing"

	"shopstock/internal/model"
	ws "shopstock/internal/websocket"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSupplierOrderFixture(products ...model.Product) (*fakeSupplierOrderRepo, *fakeSupplierRepo, *fakeProductRepo, *fakeNotifier, SupplierOrderService, model.Supplier) {
	supplier := model.Supplier{ID: uuid.New(), Name: "Acme Wholesale"}
	orderRepo := newFakeSupplierOrderRepo()
	supplierRepo := newFakeSupplierRepo(supplier)
	productRepo := newFakeProductRepo(products...)
	notifier := &fakeNotifier{}
	svc := NewSupplierOrderService(orderRepo, supplierRepo, productRepo, &fakeAuditRepo{}, &fakeTxManager{}, notifier)
	return orderRepo, supplierRepo, productRepo, notifier, svc, supplier
}

func TestCreateSupplierOrderAddsReceivedQuantityToStock(t *testing.T) {
	product := model.Product{ID: uuid.New(), Name: "Olive Oil 1L", Price: 10, Stock: 10}
	_, _, productRepo, _, svc, supplier := newSupplierOrderFixture(product)

	result, err := svc.CreateSupplierOrder(context.Background(), uuid.NewString(), CreateSupplierOrderRequest{
		SupplierID: supplier.ID.String(),
		Items: []SupplierOrderItemRequest{
			{ProductID: product.ID.String(), Quantity: 5, UnitPrice: 10},
		},
	})
	require.NoError(t, err)
	require.True(t, result.ItemsPersisted)
	require.NotNil(t, result.Reconcile)

	assert.Equal(t, 15, productRepo.products[product.ID].Stock)
	assert.Equal(t, []string{product.ID.String()}, result.Reconcile.Succeeded)
	assert.Empty(t, result.Reconcile.Failed)
	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, "Olive Oil 1L", result.Order.Items[0].ProductName)
}

func TestCreateSupplierOrderUnchangedPriceLeavesProductAlone(t *testing.T) {
	product := model.Product{ID: uuid.New(), Name: "Olive Oil 1L", Price: 10, Stock: 3}
	_, _, productRepo, notifier, svc, supplier := newSupplierOrderFixture(product)

	result, err := svc.CreateSupplierOrder(context.Background(), uuid.NewString(), CreateSupplierOrderRequest{
		SupplierID: supplier.ID.String(),
		Items: []SupplierOrderItemRequest{
			{ProductID: product.ID.String(), Quantity: 2, UnitPrice: 10},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Reconcile.PriceChanges)
	assert.Nil(t, productRepo.priceUpdates[product.ID])
	assert.Equal(t, float64(10), productRepo.products[product.ID].Price)
	// Stock moved, so the stock event goes out, but no price event does.
	assert.Equal(t, []string{ws.EventStockUpdated}, notifier.events)
}

func TestCreateSupplierOrderOverwritesChangedPriceWithOneNotification(t *testing.T) {
	product := model.Product{ID: uuid.New(), Name: "Olive Oil 1L", Price: 10, Stock: 0}
	_, _, productRepo, notifier, svc, supplier := newSupplierOrderFixture(product)

	result, err := svc.CreateSupplierOrder(context.Background(), uuid.NewString(), CreateSupplierOrderRequest{
		SupplierID: supplier.ID.String(),
		Items: []SupplierOrderItemRequest{
			{ProductID: product.ID.String(), Quantity: 4, UnitPrice: 12},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Reconcile.PriceChanges, 1)
	change := result.Reconcile.PriceChanges[0]
	assert.Equal(t, product.ID.String(), change.ProductID)
	assert.Equal(t, "Olive Oil 1L", change.ProductName)
	assert.Equal(t, float64(10), change.OldPrice)
	assert.Equal(t, float64(12), change.NewPrice)

	assert.Equal(t, float64(12), productRepo.products[product.ID].Price)

	// One consolidated price event for the whole batch.
	priceEvents := 0
	for _, e := range notifier.events {
		if e == ws.EventPriceChanges {
			priceEvents++
		}
	}
	assert.Equal(t, 1, priceEvents)
}

func TestCreateSupplierOrderFailedLineDoesNotAbortTheBatch(t *testing.T) {
	p1 := model.Product{ID: uuid.New(), Name: "A", Price: 1, Stock: 1}
	p2 := model.Product{ID: uuid.New(), Name: "B", Price: 2, Stock: 2}
	p3 := model.Product{ID: uuid.New(), Name: "C", Price: 3, Stock: 3}
	_, _, productRepo, _, svc, supplier := newSupplierOrderFixture(p1, p2, p3)
	productRepo.failFor[p1.ID] = errors.New("constraint violation")

	result, err := svc.CreateSupplierOrder(context.Background(), uuid.NewString(), CreateSupplierOrderRequest{
		SupplierID: supplier.ID.String(),
		Items: []SupplierOrderItemRequest{
			{ProductID: p1.ID.String(), Quantity: 1, UnitPrice: 1},
			{ProductID: p2.ID.String(), Quantity: 1, UnitPrice: 2},
			{ProductID: p3.ID.String(), Quantity: 1, UnitPrice: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Reconcile.Failed, 1)
	assert.Equal(t, p1.ID.String(), result.Reconcile.Failed[0].ProductID)
	assert.ElementsMatch(t, []string{p2.ID.String(), p3.ID.String()}, result.Reconcile.Succeeded)
	assert.Equal(t, 3, productRepo.products[p2.ID].Stock)
	assert.Equal(t, 4, productRepo.products[p3.ID].Stock)
	// The failed line's product stays untouched.
	assert.Equal(t, 1, productRepo.products[p1.ID].Stock)
}

func TestCreateSupplierOrderItemBatchFailureSkipsReconciliation(t *testing.T) {
	product := model.Product{ID: uuid.New(), Name: "Olive Oil 1L", Price: 10, Stock: 10}
	orderRepo, _, productRepo, notifier, svc, supplier := newSupplierOrderFixture(product)
	orderRepo.failCreateItems = errors.New("disk full")

	result, err := svc.CreateSupplierOrder(context.Background(), uuid.NewString(), CreateSupplierOrderRequest{
		SupplierID: supplier.ID.String(),
		Items: []SupplierOrderItemRequest{
			{ProductID: product.ID.String(), Quantity: 5, UnitPrice: 10},
		},
	})
	require.NoError(t, err)

	assert.False(t, result.ItemsPersisted)
	assert.NotEmpty(t, result.Warning)
	assert.Nil(t, result.Reconcile)
	// Stock is never touched when the lines were not saved.
	assert.Equal(t, 10, productRepo.products[product.ID].Stock)
	assert.Empty(t, notifier.events)
}

func TestCreateSupplierOrderUnknownSupplier(t *testing.T) {
	product := model.Product{ID: uuid.New(), Name: "Olive Oil 1L", Price: 10, Stock: 10}
	_, _, _, _, svc, _ := newSupplierOrderFixture(product)

	_, err := svc.CreateSupplierOrder(context.Background(), uuid.NewString(), CreateSupplierOrderRequest{
		SupplierID: uuid.NewString(),
		Items: []SupplierOrderItemRequest{
			{ProductID: product.ID.String(), Quantity: 1, UnitPrice: 10},
		},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSupplierOrderUnknownProduct(t *testing.T) {
	_, _, _, _, svc, supplier := newSupplierOrderFixture()

	_, err := svc.CreateSupplierOrder(context.Background(), uuid.NewString(), CreateSupplierOrderRequest{
		SupplierID: supplier.ID.String(),
		Items: []SupplierOrderItemRequest{
			{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: 10},
		},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSupplierOrderReplacesItemsAndRecomputesTotal(t *testing.T) {
	p1 := model.Product{ID: uuid.New(), Name: "A", Price: 5, Stock: 1}
	p2 := model.Product{ID: uuid.New(), Name: "B", Price: 7, Stock: 1}
	orderRepo, _, _, _, svc, supplier := newSupplierOrderFixture(p1, p2)

	order := &model.SupplierOrder{
		ID:          uuid.New(),
		SupplierID:  supplier.ID,
		Status:      model.SupplierOrderStatusPending,
		TotalAmount: 5,
		Items: []model.SupplierOrderItem{
			{ProductID: p1.ID, Quantity: 1, UnitPrice: 5},
		},
	}
	orderRepo.orders[order.ID] = order

	res, err := svc.UpdateSupplierOrder(context.Background(), uuid.NewString(), order.ID.String(), UpdateSupplierOrderRequest{
		Items: []SupplierOrderItemRequest{
			{ProductID: p2.ID.String(), Quantity: 3, UnitPrice: 7},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(21), res.TotalAmount)
	require.Len(t, res.Items, 1)
	assert.Equal(t, p2.ID.String(), res.Items[0].ProductID)
	assert.Equal(t, "B", res.Items[0].ProductName)
	assert.Equal(t, []uuid.UUID{order.ID}, orderRepo.deletedItemsFor)
}

func TestUpdateSupplierOrderRejectsTerminalStatuses(t *testing.T) {
	product := model.Product{ID: uuid.New(), Name: "A", Price: 5, Stock: 1}

	for _, status := range []string{model.SupplierOrderStatusReceived, model.SupplierOrderStatusCancelled} {
		t.Run(status, func(t *testing.T) {
			orderRepo, _, _, _, svc, supplier := newSupplierOrderFixture(product)
			order := &model.SupplierOrder{
				ID:         uuid.New(),
				SupplierID: supplier.ID,
				Status:     status,
				Items: []model.SupplierOrderItem{
					{ProductID: product.ID, Quantity: 1, UnitPrice: 5},
				},
			}
			orderRepo.orders[order.ID] = order

			_, err := svc.UpdateSupplierOrder(context.Background(), uuid.NewString(), order.ID.String(), UpdateSupplierOrderRequest{
				Items: []SupplierOrderItemRequest{
					{ProductID: product.ID.String(), Quantity: 9, UnitPrice: 5},
				},
			})
			assert.ErrorIs(t, err, ErrNotEditable)

			// Rejected before any mutation: the stored lines are intact.
			assert.Empty(t, orderRepo.deletedItemsFor)
			assert.Len(t, orderRepo.orders[order.ID].Items, 1)
		})
	}
}

func TestUpdateStatusStaysAvailableAfterItemEditsClose(t *testing.T) {
	orderRepo, _, _, _, svc, supplier := newSupplierOrderFixture()
	order := &model.SupplierOrder{
		ID:         uuid.New(),
		SupplierID: supplier.ID,
		Status:     model.SupplierOrderStatusReceived,
	}
	orderRepo.orders[order.ID] = order

	err := svc.UpdateStatus(context.Background(), uuid.NewString(), order.ID.String(), model.SupplierOrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.SupplierOrderStatusCancelled, orderRepo.orders[order.ID].Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	orderRepo, _, _, _, svc, supplier := newSupplierOrderFixture()
	order := &model.SupplierOrder{ID: uuid.New(), SupplierID: supplier.ID, Status: model.SupplierOrderStatusPending}
	orderRepo.orders[order.ID] = order

	err := svc.UpdateStatus(context.Background(), uuid.NewString(), order.ID.String(), "shipped")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, model.SupplierOrderStatusPending, orderRepo.orders[order.ID].Status)
}

func TestGetSupplierOrderNotFound(t *testing.T) {
	_, _, _, _, svc, _ := newSupplierOrderFixture()
	_, err := svc.GetSupplierOrder(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoiceImageEncodingRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		images []string
		want   []string
	}{
		{"none", nil, nil},
		{"single reference stays bare", []string{"img-1"}, []string{"img-1"}},
		{"multiple become a JSON array", []string{"img-1", "img-2"}, []string{"img-1", "img-2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := model.SupplierOrder{InvoiceImage: encodeInvoiceImages(tc.images)}
			assert.Equal(t, tc.want, order.InvoiceImages())
		})
	}
}
