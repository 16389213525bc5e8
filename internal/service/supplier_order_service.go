package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"shopstock/internal/model"
	"shopstock/internal/repository"
	ws "shopstock/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs
type SupplierOrderItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
}

type CreateSupplierOrderRequest struct {
	SupplierID    string                     `json:"supplier_id" binding:"required"`
	InvoiceNumber string                     `json:"invoice_number"`
	Notes         string                     `json:"notes"`
	InvoiceImages []string                   `json:"invoice_images"`
	Items         []SupplierOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateSupplierOrderRequest replaces the entire item set; there is no
// incremental diffing.
type UpdateSupplierOrderRequest struct {
	InvoiceNumber *string                    `json:"invoice_number"`
	Notes         *string                    `json:"notes"`
	InvoiceImages *[]string                  `json:"invoice_images"`
	Items         []SupplierOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type SupplierOrderItemResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   string  `json:"line_total"`
}

type SupplierOrderResponse struct {
	ID            string                      `json:"id"`
	SupplierID    string                      `json:"supplier_id"`
	SupplierName  string                      `json:"supplier_name,omitempty"`
	InvoiceNumber string                      `json:"invoice_number"`
	Status        string                      `json:"status"`
	TotalAmount   float64                     `json:"total_amount"`
	InvoiceImages []string                    `json:"invoice_images"`
	Notes         string                      `json:"notes"`
	Items         []SupplierOrderItemResponse `json:"items"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// PriceChange is one entry of the consolidated notification emitted after
// reconciliation: a product whose purchase price moved.
type PriceChange struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	OldPrice    float64 `json:"old_price"`
	NewPrice    float64 `json:"new_price"`
}

// ItemFailure records a line whose product update was rejected.
type ItemFailure struct {
	ProductID string `json:"product_id"`
	Error     string `json:"error"`
}

// ReconcileResult is the structured outcome of walking a supplier order's
// lines: which product updates landed, which failed, and every price change
// that was applied. A failure never hides behind a log line alone.
type ReconcileResult struct {
	Succeeded    []string      `json:"succeeded"`
	Failed       []ItemFailure `json:"failed"`
	PriceChanges []PriceChange `json:"price_changes"`
}

// CreateSupplierOrderResult reports the saved order plus how reconciliation
// went. ItemsPersisted mirrors the client-order checkout contract.
type CreateSupplierOrderResult struct {
	Order          SupplierOrderResponse `json:"order"`
	ItemsPersisted bool                  `json:"items_persisted"`
	Warning        string                `json:"warning,omitempty"`
	Reconcile      *ReconcileResult      `json:"reconcile,omitempty"`
}

type SupplierOrderService interface {
	CreateSupplierOrder(ctx context.Context, userID string, req CreateSupplierOrderRequest) (CreateSupplierOrderResult, error)
	UpdateSupplierOrder(ctx context.Context, userID, id string, req UpdateSupplierOrderRequest) (SupplierOrderResponse, error)
	UpdateStatus(ctx context.Context, userID, id, status string) error
	GetSupplierOrder(ctx context.Context, id string) (SupplierOrderResponse, error)
	ListSupplierOrders(ctx context.Context, page, limit int, status, supplierID string) ([]SupplierOrderResponse, int64, error)
}

type supplierOrderService struct {
	orderRepo    repository.SupplierOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	notifier     Notifier
}

func NewSupplierOrderService(
	orderRepo repository.SupplierOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier Notifier,
) SupplierOrderService {
	return &supplierOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		notifier:     notifier,
	}
}

func encodeInvoiceImages(images []string) string {
	switch len(images) {
	case 0:
		return ""
	case 1:
		return images[0]
	default:
		encoded, _ := json.Marshal(images)
		return string(encoded)
	}
}

func toSupplierOrderItemResponse(it *model.SupplierOrderItem) SupplierOrderItemResponse {
	res := SupplierOrderItemResponse{
		ID:        it.ID.String(),
		ProductID: it.ProductID.String(),
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		LineTotal: it.LineTotal().StringFixed(2),
	}
	if it.Product != nil {
		res.ProductName = it.Product.Name
	}
	return res
}

func toSupplierOrderResponse(o *model.SupplierOrder) SupplierOrderResponse {
	res := SupplierOrderResponse{
		ID:            o.ID.String(),
		SupplierID:    o.SupplierID.String(),
		InvoiceNumber: o.InvoiceNumber,
		Status:        o.Status,
		TotalAmount:   o.TotalAmount,
		InvoiceImages: o.InvoiceImages(),
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
	}
	if o.Supplier != nil {
		res.SupplierName = o.Supplier.Name
	}
	res.Items = make([]SupplierOrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		res.Items = append(res.Items, toSupplierOrderItemResponse(&o.Items[i]))
	}
	return res
}

func parseSupplierOrderItems(reqs []SupplierOrderItemRequest) ([]model.SupplierOrderItem, []uuid.UUID, error) {
	items := make([]model.SupplierOrderItem, 0, len(reqs))
	ids := make([]uuid.UUID, 0, len(reqs))
	for _, r := range reqs {
		pid, err := uuid.Parse(r.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid product_id: %v: %w", err, ErrValidation)
		}
		ids = append(ids, pid)
		items = append(items, model.SupplierOrderItem{
			ProductID: pid,
			Quantity:  r.Quantity,
			UnitPrice: r.UnitPrice,
		})
	}
	return items, ids, nil
}

// loadProductSnapshots fetches every referenced product once, up front.
// Reconciliation works against these snapshots, not per-line re-reads.
func (s *supplierOrderService) loadProductSnapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	snapshots := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		snapshots[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := snapshots[id]; !ok {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
	}
	return snapshots, nil
}

// CreateSupplierOrder validates, persists header then items, and reconciles
// stock and prices. Receiving stock is additive; a price that differs from
// the stored purchase price overwrites it. Per-line update failures are
// collected and skipped over, never aborting the remaining lines, and all
// applied price changes go out as one consolidated notification.
func (s *supplierOrderService) CreateSupplierOrder(ctx context.Context, userID string, req CreateSupplierOrderRequest) (CreateSupplierOrderResult, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return CreateSupplierOrderResult{}, fmt.Errorf("invalid supplier id: %v: %w", err, ErrValidation)
	}
	if len(req.Items) == 0 {
		return CreateSupplierOrderResult{}, fmt.Errorf("at least one line item is required: %w", ErrValidation)
	}

	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CreateSupplierOrderResult{}, fmt.Errorf("supplier: %w", ErrNotFound)
		}
		return CreateSupplierOrderResult{}, fmt.Errorf("database error: %w", err)
	}

	items, productIDs, err := parseSupplierOrderItems(req.Items)
	if err != nil {
		return CreateSupplierOrderResult{}, err
	}

	snapshots, err := s.loadProductSnapshots(ctx, productIDs)
	if err != nil {
		return CreateSupplierOrderResult{}, err
	}

	total := decimalItemsTotal(items)

	// Header first, items second: two separate storage calls by contract.
	order := model.SupplierOrder{
		SupplierID:    supplierID,
		InvoiceNumber: req.InvoiceNumber,
		Status:        model.SupplierOrderStatusPending,
		TotalAmount:   total,
		InvoiceImage:  encodeInvoiceImages(req.InvoiceImages),
		Notes:         req.Notes,
	}
	if err := s.orderRepo.Create(ctx, &order); err != nil {
		return CreateSupplierOrderResult{}, fmt.Errorf("failed to create supplier order: %w", err)
	}

	for i := range items {
		items[i].SupplierOrderID = order.ID
	}

	result := CreateSupplierOrderResult{ItemsPersisted: true}
	if err := s.orderRepo.CreateItems(ctx, items); err != nil {
		log.Printf("supplier order %s: header saved but line items failed: %v", order.ID, err)
		result.ItemsPersisted = false
		result.Warning = "supplier order was created but its line items could not be saved"
		order.Supplier = supplier
		result.Order = toSupplierOrderResponse(&order)
		return result, nil
	}
	for i := range items {
		p := snapshots[items[i].ProductID]
		items[i].Product = &p
	}
	order.Items = items
	order.Supplier = supplier

	reconcile := s.reconcile(ctx, items, snapshots)
	result.Reconcile = &reconcile
	result.Order = toSupplierOrderResponse(&order)

	s.auditSupplierOrder(ctx, userID, model.ActionCreateSupplierOrder, order.ID.String(), supplier.Name, map[string]interface{}{
		"supplier_id":    req.SupplierID,
		"invoice_number": req.InvoiceNumber,
		"items":          req.Items,
		"reconcile":      reconcile,
	})

	return result, nil
}

// reconcile walks the saved lines sequentially against the preloaded product
// snapshots. Sequential on purpose: the consolidated price-change list must
// be assembled deterministically after every line has been attempted.
func (s *supplierOrderService) reconcile(ctx context.Context, items []model.SupplierOrderItem, snapshots map[uuid.UUID]model.Product) ReconcileResult {
	var result ReconcileResult

	for _, item := range items {
		snapshot := snapshots[item.ProductID]

		// Receiving a shipment always adds to on-hand stock.
		newStock := snapshot.Stock + item.Quantity

		var newPrice *float64
		var change *PriceChange
		if item.UnitPrice != snapshot.Price {
			p := item.UnitPrice
			newPrice = &p
			change = &PriceChange{
				ProductID:   snapshot.ID.String(),
				ProductName: snapshot.Name,
				OldPrice:    snapshot.Price,
				NewPrice:    item.UnitPrice,
			}
		}

		if err := s.productRepo.UpdateStockPrice(ctx, item.ProductID, newStock, newPrice); err != nil {
			// One failed line never aborts the rest of the batch.
			log.Printf("reconcile: product %s update failed: %v", item.ProductID, err)
			result.Failed = append(result.Failed, ItemFailure{
				ProductID: item.ProductID.String(),
				Error:     err.Error(),
			})
			continue
		}

		result.Succeeded = append(result.Succeeded, item.ProductID.String())
		if change != nil {
			result.PriceChanges = append(result.PriceChanges, *change)
		}
	}

	// One notification for the whole batch, never one per line.
	if len(result.PriceChanges) > 0 && s.notifier != nil {
		s.notifier.BroadcastEvent(ws.EventPriceChanges, result.PriceChanges)
	}
	if len(result.Succeeded) > 0 && s.notifier != nil {
		s.notifier.BroadcastEvent(ws.EventStockUpdated, result.Succeeded)
	}

	return result
}

// UpdateSupplierOrder replaces the order's entire item set: delete all
// existing lines, insert the new ones, update the header total. Orders that
// have been received or cancelled are rejected before any mutation.
func (s *supplierOrderService) UpdateSupplierOrder(ctx context.Context, userID, id string, req UpdateSupplierOrderRequest) (SupplierOrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return SupplierOrderResponse{}, fmt.Errorf("invalid supplier order id: %v: %w", err, ErrValidation)
	}
	if len(req.Items) == 0 {
		return SupplierOrderResponse{}, fmt.Errorf("at least one line item is required: %w", ErrValidation)
	}

	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SupplierOrderResponse{}, fmt.Errorf("supplier order: %w", ErrNotFound)
		}
		return SupplierOrderResponse{}, fmt.Errorf("database error: %w", err)
	}

	if !order.Editable() {
		return SupplierOrderResponse{}, fmt.Errorf("supplier order is %s: %w", order.Status, ErrNotEditable)
	}

	items, productIDs, err := parseSupplierOrderItems(req.Items)
	if err != nil {
		return SupplierOrderResponse{}, err
	}
	snapshots, err := s.loadProductSnapshots(ctx, productIDs)
	if err != nil {
		return SupplierOrderResponse{}, err
	}

	if req.InvoiceNumber != nil {
		order.InvoiceNumber = *req.InvoiceNumber
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	if req.InvoiceImages != nil {
		order.InvoiceImage = encodeInvoiceImages(*req.InvoiceImages)
	}
	order.TotalAmount = decimalItemsTotal(items)

	for i := range items {
		items[i].SupplierOrderID = order.ID
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.DeleteItemsByOrderID(txCtx, orderID); err != nil {
			return fmt.Errorf("failed to delete old line items: %w", err)
		}
		if err := s.orderRepo.CreateItems(txCtx, items); err != nil {
			return fmt.Errorf("failed to create line items: %w", err)
		}
		if err := s.orderRepo.Update(txCtx, order); err != nil {
			return fmt.Errorf("failed to update supplier order: %w", err)
		}
		return nil
	})
	if err != nil {
		return SupplierOrderResponse{}, err
	}

	// Attach product snapshots after the tx so the response carries names.
	for i := range items {
		p := snapshots[items[i].ProductID]
		items[i].Product = &p
	}
	order.Items = items
	s.auditSupplierOrder(ctx, userID, model.ActionUpdateSupplierOrder, id, "", map[string]interface{}{"items": req.Items})

	return toSupplierOrderResponse(order), nil
}

// UpdateStatus changes the order status on its own; it stays available even
// after the item-edit workflow is closed.
func (s *supplierOrderService) UpdateStatus(ctx context.Context, userID, id, status string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid supplier order id: %v: %w", err, ErrValidation)
	}
	if !model.ValidSupplierOrderStatus(status) {
		return fmt.Errorf("invalid status: must be one of pending, received, cancelled: %w", ErrValidation)
	}

	if _, err := s.orderRepo.FindByIDWithItems(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("supplier order: %w", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("failed to update supplier order status: %w", err)
	}

	s.auditSupplierOrder(ctx, userID, model.ActionUpdateSupplierOrderStatus, id, "", map[string]string{"status": status})
	return nil
}

func (s *supplierOrderService) GetSupplierOrder(ctx context.Context, id string) (SupplierOrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return SupplierOrderResponse{}, fmt.Errorf("invalid supplier order id: %v: %w", err, ErrValidation)
	}

	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SupplierOrderResponse{}, fmt.Errorf("supplier order: %w", ErrNotFound)
		}
		return SupplierOrderResponse{}, fmt.Errorf("database error: %w", err)
	}
	return toSupplierOrderResponse(order), nil
}

func (s *supplierOrderService) ListSupplierOrders(ctx context.Context, page, limit int, status, supplierID string) ([]SupplierOrderResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if status != "" && !model.ValidSupplierOrderStatus(status) {
		return nil, 0, fmt.Errorf("invalid status filter: %q: %w", status, ErrValidation)
	}

	sid, err := parseOptionalUUID(supplierID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid supplier id: %v: %w", err, ErrValidation)
	}

	orders, total, err := s.orderRepo.List(ctx, page, limit, status, sid)
	if err != nil {
		return nil, 0, err
	}

	res := make([]SupplierOrderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, toSupplierOrderResponse(&orders[i]))
	}
	return res, total, nil
}

func decimalItemsTotal(items []model.SupplierOrderItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total.InexactFloat64()
}

func (s *supplierOrderService) auditSupplierOrder(ctx context.Context, userID, action, entityID, entityName string, details interface{}) {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    marshalDetails(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		log.Printf("failed to write audit log for %s %s: %v", action, entityID, err)
	}
}
