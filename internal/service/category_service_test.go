package service

import (
	"context"
	"testing"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCategoryRepo struct {
	categories   map[uuid.UUID]model.Category
	productCount int64
	deleted      []uuid.UUID
}

func newFakeCategoryRepo(categories ...model.Category) *fakeCategoryRepo {
	f := &fakeCategoryRepo{categories: make(map[uuid.UUID]model.Category)}
	for _, c := range categories {
		f.categories[c.ID] = c
	}
	return f
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *model.Category) error {
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.categories, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeCategoryRepo) List(_ context.Context, _, _ int, _ string) ([]model.Category, int64, error) {
	var all []model.Category
	for _, c := range f.categories {
		all = append(all, c)
	}
	return all, int64(len(all)), nil
}

func (f *fakeCategoryRepo) CountProducts(_ context.Context, _ uuid.UUID) (int64, error) {
	return f.productCount, nil
}

func TestDeleteCategoryRefusedWhileProductsAssigned(t *testing.T) {
	category := model.Category{ID: uuid.New(), Name: "Hair Care"}
	repo := newFakeCategoryRepo(category)
	repo.productCount = 2
	svc := NewCategoryService(repo)

	err := svc.DeleteCategory(context.Background(), category.ID.String())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReferenced)
	assert.Contains(t, err.Error(), "2 product(s)")
	assert.Empty(t, repo.deleted)
}

func TestDeleteCategorySucceedsWhenEmpty(t *testing.T) {
	category := model.Category{ID: uuid.New(), Name: "Hair Care"}
	repo := newFakeCategoryRepo(category)
	svc := NewCategoryService(repo)

	require.NoError(t, svc.DeleteCategory(context.Background(), category.ID.String()))
	assert.Equal(t, []uuid.UUID{category.ID}, repo.deleted)
}
