package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"shopstock/internal/cart"
	"shopstock/internal/model"
	"shopstock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs
type OrderItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	ClientID string             `json:"client_id" binding:"required"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type OrderItemResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   string  `json:"line_total"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	ClientID    string              `json:"client_id"`
	ClientName  string              `json:"client_name,omitempty"`
	Status      string              `json:"status"`
	TotalAmount float64             `json:"total_amount"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
}

// CreateOrderResult reports how far checkout reached. ItemsPersisted is
// false when the header was stored but the line-item batch failed; the
// caller is told about the degraded state instead of getting a rollback.
type CreateOrderResult struct {
	Order          OrderResponse `json:"order"`
	ItemsPersisted bool          `json:"items_persisted"`
	Warning        string        `json:"warning,omitempty"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (CreateOrderResult, error)
	GetOrder(ctx context.Context, id string) (OrderResponse, error)
	ListOrders(ctx context.Context, page, limit int, status, clientID string) ([]OrderResponse, int64, error)
	UpdateStatus(ctx context.Context, userID, id, status string) error
	DeleteOrder(ctx context.Context, userID, id string) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

func toOrderItemResponse(it *model.OrderItem) OrderItemResponse {
	res := OrderItemResponse{
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

func toOrderResponse(o *model.Order) OrderResponse {
	res := OrderResponse{
		ID:          o.ID.String(),
		ClientID:    o.ClientID.String(),
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
	}
	if o.Client != nil {
		res.ClientName = o.Client.Name
	}
	res.Items = make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		res.Items = append(res.Items, toOrderItemResponse(&o.Items[i]))
	}
	return res
}

// CreateOrder persists the order header first and the line items second, as
// two separate storage calls. When the item batch fails after the header
// succeeded, the result reports the partial state; nothing is rolled back.
func (s *orderService) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (CreateOrderResult, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("invalid client id: %v: %w", err, ErrValidation)
	}
	if len(req.Items) == 0 {
		return CreateOrderResult{}, fmt.Errorf("at least one line item is required: %w", ErrValidation)
	}

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CreateOrderResult{}, fmt.Errorf("client: %w", ErrNotFound)
		}
		return CreateOrderResult{}, fmt.Errorf("database error: %w", err)
	}

	productIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, itemReq := range req.Items {
		pid, parseErr := uuid.Parse(itemReq.ProductID)
		if parseErr != nil {
			return CreateOrderResult{}, fmt.Errorf("invalid product_id: %v: %w", parseErr, ErrValidation)
		}
		productIDs = append(productIDs, pid)
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("failed to load products: %w", err)
	}
	known := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		known[p.ID] = p
	}

	// Requests may repeat a product across lines; the cart folds those into
	// one line per product before anything is persisted. The first line's
	// price wins for the merged line.
	c := cart.New()
	for i, itemReq := range req.Items {
		p, ok := known[productIDs[i]]
		if !ok {
			return CreateOrderResult{}, fmt.Errorf("product %s: %w", productIDs[i], ErrNotFound)
		}
		price := itemReq.UnitPrice
		p.SellingPrice = &price
		c.Add(p, itemReq.Quantity)
	}

	lines := c.Items()
	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.InexactFloat64(),
		})
	}

	total := c.Total()

	order := model.Order{
		ClientID:    clientID,
		Status:      model.OrderStatusPending,
		TotalAmount: total.InexactFloat64(),
	}
	if err := s.orderRepo.Create(ctx, &order); err != nil {
		return CreateOrderResult{}, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
	}

	result := CreateOrderResult{ItemsPersisted: true}
	if err := s.orderRepo.CreateItems(ctx, items); err != nil {
		// Header is already stored. Report the degraded state instead of
		// failing the whole checkout.
		log.Printf("order %s: header saved but line items failed: %v", order.ID, err)
		result.ItemsPersisted = false
		result.Warning = "order was created but its line items could not be saved"
	} else {
		for i := range items {
			p := known[items[i].ProductID]
			items[i].Product = &p
		}
		order.Items = items
	}

	order.Client = client
	result.Order = toOrderResponse(&order)

	s.auditOrder(ctx, userID, model.ActionCreateOrder, order.ID.String(), client.Name, map[string]interface{}{
		"client_id":       req.ClientID,
		"items":           req.Items,
		"total_amount":    total.StringFixed(2),
		"items_persisted": result.ItemsPersisted,
	})

	return result, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (OrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("invalid order id: %v: %w", err, ErrValidation)
	}

	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, fmt.Errorf("order: %w", ErrNotFound)
		}
		return OrderResponse{}, fmt.Errorf("database error: %w", err)
	}
	return toOrderResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, page, limit int, status, clientID string) ([]OrderResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if status != "" && !model.ValidOrderStatus(status) {
		return nil, 0, fmt.Errorf("invalid status filter: %q: %w", status, ErrValidation)
	}

	cid, err := parseOptionalUUID(clientID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid client id: %v: %w", err, ErrValidation)
	}

	orders, total, err := s.orderRepo.List(ctx, page, limit, status, cid)
	if err != nil {
		return nil, 0, err
	}

	res := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, toOrderResponse(&orders[i]))
	}
	return res, total, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, userID, id, status string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid order id: %v: %w", err, ErrValidation)
	}
	if !model.ValidOrderStatus(status) {
		return fmt.Errorf("invalid status: must be one of pending, processing, completed, cancelled: %w", ErrValidation)
	}

	if _, err := s.orderRepo.FindByIDWithItems(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order: %w", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.auditOrder(ctx, userID, model.ActionUpdateOrderStatus, id, "", map[string]string{"status": status})
	return nil
}

// DeleteOrder removes the order and its items together: the items are owned
// by the order.
func (s *orderService) DeleteOrder(ctx context.Context, userID, id string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid order id: %v: %w", err, ErrValidation)
	}

	if _, err := s.orderRepo.FindByIDWithItems(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order: %w", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.DeleteItemsByOrderID(txCtx, orderID); err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := s.orderRepo.Delete(txCtx, orderID); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.auditOrder(ctx, userID, model.ActionDeleteOrder, id, "", map[string]bool{"deleted": true})
	return nil
}

// auditOrder writes a best-effort audit entry; a failed write is logged,
// never surfaced.
func (s *orderService) auditOrder(ctx context.Context, userID, action, entityID, entityName string, details interface{}) {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}
	payload := marshalDetails(details)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    payload,
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		log.Printf("failed to write audit log for %s %s: %v", action, entityID, err)
	}
}
