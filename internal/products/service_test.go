package products_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"studio-admin/internal/listing"
	"studio-admin/internal/models"
	"studio-admin/internal/products"
)

type MockProductDB struct {
	mock.Mock
}

func (m *MockProductDB) ListPage(ctx context.Context, params listing.Params) ([]models.Product, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Product), args.Int(1), args.Error(2)
}

func (m *MockProductDB) ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductDB) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductDB) Create(ctx context.Context, product models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductDB) Update(ctx context.Context, product models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductDB) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryChecker struct {
	mock.Mock
}

func (m *MockCategoryChecker) Get(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func newProductService() (*products.Service, *MockProductDB, *MockCategoryChecker) {
	mockDB := new(MockProductDB)
	mockCats := new(MockCategoryChecker)
	return products.NewService(mockDB, mockCats), mockDB, mockCats
}

func TestCreateProduct(t *testing.T) {
	svc, mockDB, mockCats := newProductService()
	ctx := context.Background()

	mockCats.On("Get", ctx, "cat-1").Return(&models.Category{ID: "cat-1"}, nil)
	mockDB.On("Create", ctx, mock.MatchedBy(func(p models.Product) bool {
		return p.Name == "Canvas Print" && p.CategoryID == "cat-1" && p.ID != ""
	})).Return(nil)

	product, err := svc.Create(ctx, models.ProductInput{
		Name:        "  Canvas Print ",
		Description: "A3 canvas print",
		Category:    "cat-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Canvas Print", product.Name)
	mockDB.AssertExpectations(t)
}

func TestCreateProductValidation(t *testing.T) {
	svc, mockDB, mockCats := newProductService()
	ctx := context.Background()

	_, err := svc.Create(ctx, models.ProductInput{Name: "x"})
	assert.ErrorIs(t, err, products.ErrFieldsRequired)

	mockCats.On("Get", ctx, "missing").Return(nil, errors.New("not found"))
	_, err = svc.Create(ctx, models.ProductInput{
		Name:        "Canvas",
		Description: "desc",
		Category:    "missing",
	})
	assert.ErrorIs(t, err, products.ErrCategoryNotFound)

	mockDB.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateProduct(t *testing.T) {
	svc, mockDB, mockCats := newProductService()
	ctx := context.Background()

	existing := &models.Product{ID: "prod-1", Name: "Old", Description: "old", CategoryID: "cat-1"}
	mockCats.On("Get", ctx, "cat-2").Return(&models.Category{ID: "cat-2"}, nil)
	mockDB.On("GetByID", ctx, "prod-1").Return(existing, nil)
	mockDB.On("Update", ctx, mock.MatchedBy(func(p models.Product) bool {
		return p.Name == "New" && p.CategoryID == "cat-2"
	})).Return(nil)

	product, err := svc.Update(ctx, "prod-1", models.ProductInput{
		Name:        "New",
		Description: "new desc",
		Category:    "cat-2",
	})

	assert.NoError(t, err)
	assert.Equal(t, "New", product.Name)
	mockDB.AssertExpectations(t)
}

func TestListPagePagination(t *testing.T) {
	svc, mockDB, _ := newProductService()
	ctx := context.Background()

	params := listing.Params{Page: 2, Keyword: "print"}
	mockDB.On("ListPage", ctx, params).Return([]models.Product{{ID: "p1"}}, 21, nil)

	page, err := svc.ListPage(ctx, params)

	assert.NoError(t, err)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 21, page.Total)
}
