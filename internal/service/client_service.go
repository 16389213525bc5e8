package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"shopstock/internal/model"
	"shopstock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartyRequest covers both clients and suppliers: only the name is
// required, every contact field is optional.
type PartyRequest struct {
	Name          string  `json:"name" binding:"required"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
}

type PartyResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
}

func validatePartyRequest(req PartyRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}
	if req.Email != nil && *req.Email != "" {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			return fmt.Errorf("invalid email format: %w", ErrValidation)
		}
	}
	return nil
}

type ClientService interface {
	GetClients(ctx context.Context, page, limit int, search string) ([]PartyResponse, int64, error)
	GetClient(ctx context.Context, id string) (PartyResponse, error)
	CreateClient(ctx context.Context, req PartyRequest) (PartyResponse, error)
	UpdateClient(ctx context.Context, id string, req PartyRequest) (PartyResponse, error)
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func toClientResponse(c *model.Client) PartyResponse {
	return PartyResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		ContactPerson: c.ContactPerson,
	}
}

func (s *clientService) GetClients(ctx context.Context, page, limit int, search string) ([]PartyResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	clients, total, err := s.clientRepo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, err
	}

	res := make([]PartyResponse, 0, len(clients))
	for i := range clients {
		res = append(res, toClientResponse(&clients[i]))
	}
	return res, total, nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (PartyResponse, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return PartyResponse{}, fmt.Errorf("invalid client id: %v: %w", err, ErrValidation)
	}

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PartyResponse{}, fmt.Errorf("client: %w", ErrNotFound)
		}
		return PartyResponse{}, fmt.Errorf("database error: %w", err)
	}
	return toClientResponse(client), nil
}

func (s *clientService) CreateClient(ctx context.Context, req PartyRequest) (PartyResponse, error) {
	if err := validatePartyRequest(req); err != nil {
		return PartyResponse{}, err
	}

	client := model.Client{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
	}
	if err := s.clientRepo.Create(ctx, &client); err != nil {
		return PartyResponse{}, fmt.Errorf("failed to create client: %w", err)
	}
	return toClientResponse(&client), nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req PartyRequest) (PartyResponse, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return PartyResponse{}, fmt.Errorf("invalid client id: %v: %w", err, ErrValidation)
	}
	if err := validatePartyRequest(req); err != nil {
		return PartyResponse{}, err
	}

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PartyResponse{}, fmt.Errorf("client: %w", ErrNotFound)
		}
		return PartyResponse{}, fmt.Errorf("database error: %w", err)
	}

	client.Name = req.Name
	client.Phone = req.Phone
	client.Email = req.Email
	client.Address = req.Address
	client.ContactPerson = req.ContactPerson

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return PartyResponse{}, fmt.Errorf("failed to update client: %w", err)
	}
	return toClientResponse(client), nil
}

// DeleteClient refuses to remove a client that still has orders; the
// refusal message names the count so the UI can show it verbatim.
func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid client id: %v: %w", err, ErrValidation)
	}

	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("client: %w", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	count, err := s.clientRepo.CountOrders(ctx, clientID)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("cannot delete client: %d order(s) still reference it: %w", count, ErrReferenced)
	}

	if err := s.clientRepo.Delete(ctx, clientID); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
