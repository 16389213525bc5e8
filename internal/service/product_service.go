package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shopstock/internal/model"
	"shopstock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs
type CreateProductRequest struct {
	Name         string   `json:"name" binding:"required"`
	CategoryID   string   `json:"category_id"`
	Price        float64  `json:"price" binding:"required,min=0"`
	SellingPrice *float64 `json:"selling_price" binding:"omitempty,min=0"`
	Stock        int      `json:"stock" binding:"min=0"`
}

type UpdateProductRequest struct {
	Name         string   `json:"name" binding:"required"`
	CategoryID   string   `json:"category_id"`
	Price        float64  `json:"price" binding:"required,min=0"`
	SellingPrice *float64 `json:"selling_price" binding:"omitempty,min=0"`
	Stock        *int     `json:"stock" binding:"omitempty,min=0"`
}

type ProductResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CategoryID   *string  `json:"category_id"`
	CategoryName string   `json:"category_name,omitempty"`
	Price        float64  `json:"price"`
	SellingPrice *float64 `json:"selling_price"`
	Stock        int      `json:"stock"`
}

type ProductService interface {
	GetProducts(ctx context.Context, page, limit int, search, categoryID string) ([]ProductResponse, int64, error)
	GetProduct(ctx context.Context, id string) (ProductResponse, error)
	CreateProduct(ctx context.Context, userID string, req CreateProductRequest) (ProductResponse, error)
	UpdateProduct(ctx context.Context, userID string, id string, req UpdateProductRequest) (ProductResponse, error)
	DeleteProduct(ctx context.Context, userID string, id string) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

func toProductResponse(p *model.Product) ProductResponse {
	res := ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Price:        p.Price,
		SellingPrice: p.SellingPrice,
		Stock:        p.Stock,
	}
	if p.CategoryID != nil {
		s := p.CategoryID.String()
		res.CategoryID = &s
	}
	if p.Category != nil {
		res.CategoryName = p.Category.Name
	}
	return res
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *productService) GetProducts(ctx context.Context, page, limit int, search, categoryID string) ([]ProductResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	catID, err := parseOptionalUUID(categoryID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid category id: %v: %w", err, ErrValidation)
	}

	products, total, err := s.productRepo.List(ctx, page, limit, search, catID)
	if err != nil {
		return nil, 0, err
	}

	res := make([]ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, toProductResponse(&products[i]))
	}

	return res, total, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("invalid product id: %v: %w", err, ErrValidation)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductResponse{}, fmt.Errorf("product: %w", ErrNotFound)
		}
		return ProductResponse{}, fmt.Errorf("database error: %w", err)
	}

	return toProductResponse(product), nil
}

func (s *productService) CreateProduct(ctx context.Context, userID string, req CreateProductRequest) (ProductResponse, error) {
	catID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("invalid category id: %v: %w", err, ErrValidation)
	}
	if catID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *catID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ProductResponse{}, fmt.Errorf("category: %w", ErrNotFound)
			}
			return ProductResponse{}, fmt.Errorf("database error: %w", err)
		}
	}

	product := model.Product{
		Name:         req.Name,
		CategoryID:   catID,
		Price:        req.Price,
		SellingPrice: req.SellingPrice,
		Stock:        req.Stock,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Create(txCtx, &product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return s.logAudit(txCtx, userID, model.ActionCreateProduct, product.ID.String(), product.Name, req)
	})
	if err != nil {
		return ProductResponse{}, err
	}

	return toProductResponse(&product), nil
}

func (s *productService) UpdateProduct(ctx context.Context, userID string, id string, req UpdateProductRequest) (ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("invalid product id: %v: %w", err, ErrValidation)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductResponse{}, fmt.Errorf("product: %w", ErrNotFound)
		}
		return ProductResponse{}, fmt.Errorf("database error: %w", err)
	}

	catID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("invalid category id: %v: %w", err, ErrValidation)
	}

	product.Name = req.Name
	product.CategoryID = catID
	product.Category = nil
	product.Price = req.Price
	product.SellingPrice = req.SellingPrice
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Update(txCtx, product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return s.logAudit(txCtx, userID, model.ActionUpdateProduct, product.ID.String(), product.Name, req)
	})
	if err != nil {
		return ProductResponse{}, err
	}

	return toProductResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, userID string, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %v: %w", err, ErrValidation)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product: %w", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Delete(txCtx, productID); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return s.logAudit(txCtx, userID, model.ActionDeleteProduct, product.ID.String(), product.Name, map[string]bool{"deleted": true})
	})
}

// logAudit writes one audit entry; details is JSON-serialized.
func (s *productService) logAudit(ctx context.Context, userID, action, entityID, entityName string, details interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
