package medicines

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("medicine not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name     string
	Dosage   string
	Time     string
	Duration string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Medicine, error) {
	if strings.TrimSpace(userID) == "" {
		return Medicine{}, ErrInvalidInput
	}

	name := strings.TrimSpace(in.Name)
	dosage := strings.TrimSpace(in.Dosage)
	clock := strings.TrimSpace(in.Time)
	duration := strings.TrimSpace(in.Duration)
	if name == "" || dosage == "" || clock == "" || duration == "" {
		return Medicine{}, ErrInvalidInput
	}
	if !ValidTime(clock) {
		return Medicine{}, ErrInvalidInput
	}

	now := s.now()
	m := Medicine{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Dosage:    dosage,
		Time:      clock,
		Duration:  duration,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medicine{}, err
	}
	return m, nil
}

// ListDaily: las tomas de hoy son todas las del usuario, ordenadas por hora.
func (s *Service) ListDaily(ctx context.Context, userID string) ([]Medicine, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) UpdateStatus(ctx context.Context, userID, id string, status Status) (Medicine, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(id) == "" {
		return Medicine{}, ErrInvalidInput
	}
	if !status.Valid() {
		return Medicine{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, userID, strings.TrimSpace(id), status, s.now())
}

// UpdateTimeByName mueve a clock todas las medicinas del usuario llamadas name.
func (s *Service) UpdateTimeByName(ctx context.Context, userID, name, clock string) (int, error) {
	if strings.TrimSpace(userID) == "" || name == "" {
		return 0, ErrInvalidInput
	}
	return s.repo.UpdateTimeByName(ctx, userID, name, clock, s.now())
}

// ResetDailyStatus vuelve todas las tomas a pending (corre una vez por día).
func (s *Service) ResetDailyStatus(ctx context.Context) (int, error) {
	return s.repo.ResetStatuses(ctx, StatusPending, s.now())
}
