package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"studio-admin/internal/listing"
	"studio-admin/internal/models"
)

var (
	ErrFieldsRequired   = errors.New("name, description and category are required")
	ErrCategoryNotFound = errors.New("category not found")
)

type DBLayer interface {
	ListPage(ctx context.Context, params listing.Params) ([]models.Product, int, error)
	ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product models.Product) error
	Update(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id string) error
}

type CategoryChecker interface {
	Get(ctx context.Context, id string) (*models.Category, error)
}

type Service struct {
	DB         DBLayer
	Categories CategoryChecker
}

func NewService(db DBLayer, categories CategoryChecker) *Service {
	return &Service{DB: db, Categories: categories}
}

func (s *Service) ListPage(ctx context.Context, params listing.Params) (*models.ProductPage, error) {
	rows, total, err := s.DB.ListPage(ctx, params)
	if err != nil {
		return nil, err
	}
	return &models.ProductPage{
		Products: rows,
		Pages:    listing.PageCount(total),
		Total:    total,
	}, nil
}

func (s *Service) ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	return s.DB.ListByCategory(ctx, categoryID)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.DB.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	product := models.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.Category,
		Images:      in.Images,
		CreatedAt:   time.Now(),
	}
	if err := s.DB.Create(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	product, err := s.DB.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(in.Name)
	product.Description = strings.TrimSpace(in.Description)
	product.CategoryID = in.Category
	product.Images = in.Images

	if err := s.DB.Update(ctx, *product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.DB.Delete(ctx, id)
}

func (s *Service) validate(ctx context.Context, in models.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		in.Category == "" {
		return ErrFieldsRequired
	}
	if _, err := s.Categories.Get(ctx, in.Category); err != nil {
		return ErrCategoryNotFound
	}
	return nil
}
