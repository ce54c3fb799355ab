package timeslots

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"studio-admin/internal/models"
)

var (
	ErrDateRequired   = errors.New("a valid date (YYYY-MM-DD) is required")
	ErrSlotsRequired  = errors.New("at least one time slot is required")
	ErrSlotIncomplete = errors.New("every time slot needs a start and an end time")
)

const dateLayout = "2006-01-02"

type DBLayer interface {
	ListAll(ctx context.Context) ([]models.TimeSlotGroup, error)
	GetByID(ctx context.Context, id string) (*models.TimeSlotGroup, error)
	GetByDate(ctx context.Context, date time.Time) (*models.TimeSlotGroup, error)
	Create(ctx context.Context, group models.TimeSlotGroup) error
	Update(ctx context.Context, group models.TimeSlotGroup) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

func (s *Service) ListAll(ctx context.Context) ([]models.TimeSlotGroup, error) {
	return s.DB.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.TimeSlotGroup, error) {
	return s.DB.GetByID(ctx, id)
}

// Create stores the slots of a date. When the date already has a group
// the incoming slots are merged into it instead of creating a duplicate
// day.
func (s *Service) Create(ctx context.Context, in models.TimeSlotGroupInput) (*models.TimeSlotGroup, error) {
	date, times, err := parseInput(in)
	if err != nil {
		return nil, err
	}

	if existing, err := s.DB.GetByDate(ctx, date); err == nil && existing != nil {
		existing.Times = mergeReserved(existing.Times, times)
		if err := s.DB.Update(ctx, *existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	group := models.TimeSlotGroup{
		ID:        uuid.NewString(),
		Date:      date,
		Times:     times,
		CreatedAt: time.Now(),
	}
	if err := s.DB.Create(ctx, group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Update replaces the slots of a group. Reservations made by customers
// survive the edit: a slot whose window is unchanged keeps its Reserved
// flag even though the admin resubmits it unreserved.
func (s *Service) Update(ctx context.Context, id string, in models.TimeSlotGroupInput) (*models.TimeSlotGroup, error) {
	date, times, err := parseInput(in)
	if err != nil {
		return nil, err
	}

	group, err := s.DB.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	group.Date = date
	group.Times = mergeReserved(group.Times, times)

	if err := s.DB.Update(ctx, *group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.DB.Delete(ctx, id)
}

func parseInput(in models.TimeSlotGroupInput) (time.Time, []models.TimeSlot, error) {
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return time.Time{}, nil, ErrDateRequired
	}
	if len(in.Times) == 0 {
		return time.Time{}, nil, ErrSlotsRequired
	}
	for _, slot := range in.Times {
		if slot.StartTime == "" || slot.EndTime == "" {
			return time.Time{}, nil, ErrSlotIncomplete
		}
	}
	return date, in.Times, nil
}

// mergeReserved carries Reserved flags from the stored slots onto the
// incoming ones, keyed by the slot window. Reservations belong to the
// booking flow, so the incoming flag is discarded entirely.
func mergeReserved(stored, incoming []models.TimeSlot) []models.TimeSlot {
	reserved := make(map[string]bool, len(stored))
	for _, slot := range stored {
		if slot.Reserved {
			reserved[slot.StartTime+"-"+slot.EndTime] = true
		}
	}
	merged := make([]models.TimeSlot, len(incoming))
	for i, slot := range incoming {
		slot.Reserved = reserved[slot.StartTime+"-"+slot.EndTime]
		merged[i] = slot
	}
	return merged
}
