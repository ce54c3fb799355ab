package product_api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-admin/internal/listing"
	"studio-admin/internal/logger"
	"studio-admin/internal/models"
	"studio-admin/internal/products"
	"studio-admin/internal/products/product_api"
)

// fakeProductDB simulates the db layer with an in-memory map.
type fakeProductDB struct {
	products map[string]*models.Product
}

func newFakeProductDB() *fakeProductDB {
	return &fakeProductDB{products: make(map[string]*models.Product)}
}

func (f *fakeProductDB) ListPage(ctx context.Context, params listing.Params) ([]models.Product, int, error) {
	var rows []models.Product
	for _, p := range f.products {
		rows = append(rows, *p)
	}
	return rows, len(rows), nil
}

func (f *fakeProductDB) ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	var rows []models.Product
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			rows = append(rows, *p)
		}
	}
	return rows, nil
}

func (f *fakeProductDB) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s not found", id)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductDB) Create(ctx context.Context, product models.Product) error {
	f.products[product.ID] = &product
	return nil
}

func (f *fakeProductDB) Update(ctx context.Context, product models.Product) error {
	f.products[product.ID] = &product
	return nil
}

func (f *fakeProductDB) Delete(ctx context.Context, id string) error {
	delete(f.products, id)
	return nil
}

// fakeCategories accepts every category id.
type fakeCategories struct{}

func (fakeCategories) Get(ctx context.Context, id string) (*models.Category, error) {
	return &models.Category{ID: id}, nil
}

func setupRouter(db *fakeProductDB) chi.Router {
	svc := products.NewService(db, fakeCategories{})
	h := product_api.NewHandler(svc, logger.NewLogger())

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestGetProductDashboardPath(t *testing.T) {
	db := newFakeProductDB()
	db.products["p1"] = &models.Product{ID: "p1", Name: "Canvas Print", CategoryID: "c1"}
	router := setupRouter(db)

	// The detail screen fetches /products/product/{id}
	req := httptest.NewRequest(http.MethodGet, "/products/product/p1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, "Canvas Print", product.Name)
}

func TestGetProductShortPathAlias(t *testing.T) {
	db := newFakeProductDB()
	db.products["p1"] = &models.Product{ID: "p1", Name: "Canvas Print", CategoryID: "c1"}
	router := setupRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/products/p1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetProductNotFound(t *testing.T) {
	router := setupRouter(newFakeProductDB())

	req := httptest.NewRequest(http.MethodGet, "/products/product/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
