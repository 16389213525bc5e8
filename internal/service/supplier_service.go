package service

import (
	"context"
	"errors"
	"fmt"

	"shopstock/internal/model"
	"shopstock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierService interface {
	GetSuppliers(ctx context.Context, page, limit int, search string) ([]PartyResponse, int64, error)
	GetSupplier(ctx context.Context, id string) (PartyResponse, error)
	CreateSupplier(ctx context.Context, req PartyRequest) (PartyResponse, error)
	UpdateSupplier(ctx context.Context, id string, req PartyRequest) (PartyResponse, error)
	DeleteSupplier(ctx context.Context, id string) error
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func toSupplierResponse(s *model.Supplier) PartyResponse {
	return PartyResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		ContactPerson: s.ContactPerson,
	}
}

func (s *supplierService) GetSuppliers(ctx context.Context, page, limit int, search string) ([]PartyResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	suppliers, total, err := s.supplierRepo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, err
	}

	res := make([]PartyResponse, 0, len(suppliers))
	for i := range suppliers {
		res = append(res, toSupplierResponse(&suppliers[i]))
	}
	return res, total, nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id string) (PartyResponse, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return PartyResponse{}, fmt.Errorf("invalid supplier id: %v: %w", err, ErrValidation)
	}

	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PartyResponse{}, fmt.Errorf("supplier: %w", ErrNotFound)
		}
		return PartyResponse{}, fmt.Errorf("database error: %w", err)
	}
	return toSupplierResponse(supplier), nil
}

func (s *supplierService) CreateSupplier(ctx context.Context, req PartyRequest) (PartyResponse, error) {
	if err := validatePartyRequest(req); err != nil {
		return PartyResponse{}, err
	}

	supplier := model.Supplier{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
	}
	if err := s.supplierRepo.Create(ctx, &supplier); err != nil {
		return PartyResponse{}, fmt.Errorf("failed to create supplier: %w", err)
	}
	return toSupplierResponse(&supplier), nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, id string, req PartyRequest) (PartyResponse, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return PartyResponse{}, fmt.Errorf("invalid supplier id: %v: %w", err, ErrValidation)
	}
	if err := validatePartyRequest(req); err != nil {
		return PartyResponse{}, err
	}

	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PartyResponse{}, fmt.Errorf("supplier: %w", ErrNotFound)
		}
		return PartyResponse{}, fmt.Errorf("database error: %w", err)
	}

	supplier.Name = req.Name
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address
	supplier.ContactPerson = req.ContactPerson

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return PartyResponse{}, fmt.Errorf("failed to update supplier: %w", err)
	}
	return toSupplierResponse(supplier), nil
}

// DeleteSupplier refuses to remove a supplier that still has purchase
// orders on file.
func (s *supplierService) DeleteSupplier(ctx context.Context, id string) error {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid supplier id: %v: %w", err, ErrValidation)
	}

	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("supplier: %w", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	count, err := s.supplierRepo.CountOrders(ctx, supplierID)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("cannot delete supplier: %d supplier order(s) still reference it: %w", count, ErrReferenced)
	}

	if err := s.supplierRepo.Delete(ctx, supplierID); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}
