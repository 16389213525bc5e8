package service

import (
	"context"
	"testing"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateClientRequiresOnlyName(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo)

	res, err := svc.CreateClient(context.Background(), PartyRequest{Name: "Corner Shop"})
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", res.Name)
	assert.Nil(t, res.Phone)
	assert.Nil(t, res.Email)
}

func TestCreateClientRejectsBadEmail(t *testing.T) {
	svc := NewClientService(newFakeClientRepo())

	_, err := svc.CreateClient(context.Background(), PartyRequest{
		Name:  "Corner Shop",
		Email: strPtr("not-an-email"),
	})
	assert.Error(t, err)
}

func TestDeleteClientRefusedWhileOrdersReferenceIt(t *testing.T) {
	client := model.Client{ID: uuid.New(), Name: "Corner Shop"}
	repo := newFakeClientRepo(client)
	repo.orderCount = 3
	svc := NewClientService(repo)

	err := svc.DeleteClient(context.Background(), client.ID.String())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReferenced)
	assert.Contains(t, err.Error(), "3 order(s)")

	// Still there.
	_, found := repo.clients[client.ID]
	assert.True(t, found)
}

func TestDeleteClientSucceedsWithNoOrders(t *testing.T) {
	client := model.Client{ID: uuid.New(), Name: "Corner Shop"}
	repo := newFakeClientRepo(client)
	svc := NewClientService(repo)

	err := svc.DeleteClient(context.Background(), client.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{client.ID}, repo.deleted)
}

func TestDeleteClientNotFound(t *testing.T) {
	svc := NewClientService(newFakeClientRepo())
	err := svc.DeleteClient(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateClientOverwritesContactFields(t *testing.T) {
	client := model.Client{ID: uuid.New(), Name: "Corner Shop", Phone: strPtr("0501234567")}
	repo := newFakeClientRepo(client)
	svc := NewClientService(repo)

	res, err := svc.UpdateClient(context.Background(), client.ID.String(), PartyRequest{
		Name:  "Corner Shop Ltd",
		Email: strPtr("owner@corner.shop"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop Ltd", res.Name)
	require.NotNil(t, res.Email)
	assert.Equal(t, "owner@corner.shop", *res.Email)
	// Fields omitted from the request are cleared, not merged.
	assert.Nil(t, res.Phone)
}
