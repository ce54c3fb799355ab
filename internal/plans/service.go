package plans

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"studio-admin/internal/listing"
	"studio-admin/internal/models"
	"studio-admin/internal/pricing"
)

var (
	ErrFieldsRequired     = errors.New("name, description, duration, price and category are required")
	ErrInvalidDiscount    = errors.New("discount fraction is not permitted")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrNegativePrice      = errors.New("price must not be negative")
	ErrAddOnNameRequired  = errors.New("add-on name is required")
	ErrAddOnNegativePrice = errors.New("add-on price must not be negative")
)

type DBLayer interface {
	ListPage(ctx context.Context, params listing.Params) ([]models.Plan, int, error)
	ListByCategory(ctx context.Context, categoryID string) ([]models.Plan, error)
	GetByID(ctx context.Context, id string) (*models.Plan, error)
	Create(ctx context.Context, plan models.Plan) error
	Update(ctx context.Context, plan models.Plan) error
	Delete(ctx context.Context, id string) error
}

// CategoryChecker verifies that a referenced category exists.
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

func (s *Service) ListPage(ctx context.Context, params listing.Params) (*models.PlanPage, error) {
	rows, total, err := s.DB.ListPage(ctx, params)
	if err != nil {
		return nil, err
	}
	return &models.PlanPage{
		Plans: rows,
		Pages: listing.PageCount(total),
		Total: total,
	}, nil
}

func (s *Service) ListByCategory(ctx context.Context, categoryID string) ([]models.Plan, error) {
	return s.DB.ListByCategory(ctx, categoryID)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Plan, error) {
	return s.DB.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in models.PlanInput) (*models.Plan, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	plan := models.Plan{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	applyInput(&plan, in)

	if err := s.DB.Create(ctx, plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.PlanInput) (*models.Plan, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	plan, err := s.DB.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyInput(plan, in)

	if err := s.DB.Update(ctx, *plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.DB.Delete(ctx, id)
}

// applyInput copies the request body onto the plan and derives the
// discounted price. The client never gets to pick the discounted price.
func applyInput(plan *models.Plan, in models.PlanInput) {
	plan.Name = strings.TrimSpace(in.Name)
	plan.Description = strings.TrimSpace(in.Description)
	plan.Duration = strings.TrimSpace(in.Duration)
	plan.Price = pricing.Round3(in.Price)
	plan.CategoryID = in.Category
	plan.Features = in.Features
	plan.AddOns = in.AddOns
	plan.Images = in.Images
	plan.IsFeatured = in.IsFeatured
	plan.Published = in.Published
	plan.HasDiscount = in.HasDiscount
	plan.DiscountBy = in.DiscountBy
	if !in.HasDiscount {
		plan.DiscountBy = 0
	}
	plan.DiscountedPrice = pricing.DiscountedPrice(plan.Price, plan.HasDiscount, plan.DiscountBy)
}

func (s *Service) validate(ctx context.Context, in models.PlanInput) error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Duration) == "" ||
		in.Category == "" {
		return ErrFieldsRequired
	}
	if in.Price < 0 {
		return ErrNegativePrice
	}
	if in.HasDiscount && !pricing.AllowedFraction(in.DiscountBy) {
		return ErrInvalidDiscount
	}
	for _, addOn := range in.AddOns {
		if strings.TrimSpace(addOn.Name) == "" {
			return ErrAddOnNameRequired
		}
		if addOn.Price < 0 {
			return ErrAddOnNegativePrice
		}
	}
	if _, err := s.Categories.Get(ctx, in.Category); err != nil {
		return ErrCategoryNotFound
	}
	return nil
}
