package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopstock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubSupplierOrderService struct {
	createErr error
}

func (s *stubSupplierOrderService) CreateSupplierOrder(ctx context.Context, userID string, req service.CreateSupplierOrderRequest) (service.CreateSupplierOrderResult, error) {
	return service.CreateSupplierOrderResult{}, s.createErr
}

func (s *stubSupplierOrderService) UpdateSupplierOrder(ctx context.Context, userID, id string, req service.UpdateSupplierOrderRequest) (service.SupplierOrderResponse, error) {
	return service.SupplierOrderResponse{}, s.createErr
}

func (s *stubSupplierOrderService) UpdateStatus(ctx context.Context, userID, id, status string) error {
	return s.createErr
}

func (s *stubSupplierOrderService) GetSupplierOrder(ctx context.Context, id string) (service.SupplierOrderResponse, error) {
	return service.SupplierOrderResponse{}, s.createErr
}

func (s *stubSupplierOrderService) ListSupplierOrders(ctx context.Context, page, limit int, status, supplierID string) ([]service.SupplierOrderResponse, int64, error) {
	return nil, 0, s.createErr
}

const validSupplierOrderBody = `{
	"supplier_id": "11111111-1111-4111-8111-111111111111",
	"items": [{"product_id": "22222222-2222-4222-8222-222222222222", "quantity": 3, "unit_price": 10.5}]
}`

func postSupplierOrder(t *testing.T, svc service.SupplierOrderService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/supplier-orders", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	NewSupplierOrderHandler(svc).CreateSupplierOrder(c)
	return w
}

func TestCreateSupplierOrderStorageFailureIsServerError(t *testing.T) {
	svc := &stubSupplierOrderService{createErr: errors.New("database error: connection refused")}

	w := postSupplierOrder(t, svc, validSupplierOrderBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestCreateSupplierOrderRejectedInputIsBadRequest(t *testing.T) {
	svc := &stubSupplierOrderService{createErr: fmt.Errorf("invalid supplier id: %w", service.ErrValidation)}

	w := postSupplierOrder(t, svc, validSupplierOrderBody)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSupplierOrderMissingRecordIsNotFound(t *testing.T) {
	svc := &stubSupplierOrderService{createErr: fmt.Errorf("supplier: %w", service.ErrNotFound)}

	w := postSupplierOrder(t, svc, validSupplierOrderBody)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
