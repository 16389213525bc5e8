package service

import (
	"context"
	"strings"
	"testing"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInvoiceOrder(repo *fakeOrderRepo, phone *string) *model.Order {
	product := &model.Product{ID: uuid.New(), Name: "Shampoo"}
	order := &model.Order{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		Client:   &model.Client{Name: "Corner Shop", Phone: phone},
		Status:   model.OrderStatusPending,
		Items: []model.OrderItem{
			{ProductID: product.ID, Product: product, Quantity: 2, UnitPrice: 70},
		},
	}
	repo.orders[order.ID] = order
	return order
}

func TestRenderInvoiceReturnsDocumentAndFilename(t *testing.T) {
	repo := newFakeOrderRepo()
	order := seedInvoiceOrder(repo, nil)
	svc := NewInvoiceService(repo, "")

	rendered, err := svc.RenderInvoice(context.Background(), order.ID.String(), "en")
	require.NoError(t, err)

	assert.Contains(t, rendered.Document, "Shampoo")
	assert.Contains(t, rendered.Document, "140.00")
	assert.Equal(t, "invoice_"+order.ID.String()+".html", rendered.Filename)
}

func TestRenderInvoiceUnknownOrder(t *testing.T) {
	svc := NewInvoiceService(newFakeOrderRepo(), "")
	_, err := svc.RenderInvoice(context.Background(), uuid.NewString(), "en")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShareLinkUsesClientPhone(t *testing.T) {
	repo := newFakeOrderRepo()
	order := seedInvoiceOrder(repo, strPtr("0501234567"))
	svc := NewInvoiceService(repo, "")

	link, err := svc.ShareLink(context.Background(), order.ID.String(), "en", "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/972501234567?text="), link)
	assert.Contains(t, link, "140.00")
}

func TestShareLinkPhoneOverrideWins(t *testing.T) {
	repo := newFakeOrderRepo()
	order := seedInvoiceOrder(repo, strPtr("0501234567"))
	svc := NewInvoiceService(repo, "")

	link, err := svc.ShareLink(context.Background(), order.ID.String(), "en", "0509999999")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/972509999999?text="), link)
}

func TestShareLinkWithoutAnyPhoneFails(t *testing.T) {
	repo := newFakeOrderRepo()
	order := seedInvoiceOrder(repo, nil)
	svc := NewInvoiceService(repo, "")

	_, err := svc.ShareLink(context.Background(), order.ID.String(), "en", "")
	assert.Error(t, err)
}
