package service

import (
	"context"
	"errors"
	"fmt"

	"shopstock/internal/invoice"
	"shopstock/internal/model"
	"shopstock/internal/repository"
	"shopstock/internal/share"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RenderedInvoice carries the document plus the filename the download path
// should use.
type RenderedInvoice struct {
	Document string
	Filename string
}

type InvoiceService interface {
	RenderInvoice(ctx context.Context, orderID string, lang invoice.Language) (RenderedInvoice, error)
	ShareLink(ctx context.Context, orderID string, lang invoice.Language, phoneOverride string) (string, error)
}

type invoiceService struct {
	orderRepo   repository.OrderRepository
	countryCode string
}

// NewInvoiceService wires the renderer and share-link builder to stored
// orders. countryCode replaces a leading trunk "0" in local phone numbers;
// empty means the package default.
func NewInvoiceService(orderRepo repository.OrderRepository, countryCode string) InvoiceService {
	return &invoiceService{orderRepo: orderRepo, countryCode: countryCode}
}

// RenderInvoice produces the printable document for an order. Rendering is
// pure; this method only adds the fetch.
func (s *invoiceService) RenderInvoice(ctx context.Context, orderID string, lang invoice.Language) (RenderedInvoice, error) {
	order, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return RenderedInvoice{}, err
	}

	doc, err := invoice.Render(order, order.Items, lang)
	if err != nil {
		return RenderedInvoice{}, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	return RenderedInvoice{Document: doc, Filename: invoice.Filename(order)}, nil
}

// ShareLink formats the text summary and wraps it in a WhatsApp deep link.
// Independent of document rendering: it still works when rendering is
// skipped or failed.
func (s *invoiceService) ShareLink(ctx context.Context, orderID string, lang invoice.Language, phoneOverride string) (string, error) {
	order, err := s.fetchOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	phone := phoneOverride
	if phone == "" && order.Client != nil && order.Client.Phone != nil {
		phone = *order.Client.Phone
	}
	if phone == "" {
		return "", fmt.Errorf("client has no phone number on file: %w", ErrValidation)
	}

	message := invoice.ShareMessage(order, order.Items, lang)
	link, err := share.WhatsAppLink(phone, message, s.countryCode)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, ErrValidation)
	}
	return link, nil
}

func (s *invoiceService) fetchOrder(ctx context.Context, orderID string) (*model.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %v: %w", err, ErrValidation)
	}

	order, err := s.orderRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return order, nil
}
