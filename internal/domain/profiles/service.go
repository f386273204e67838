package profiles

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
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

type UpsertInput struct {
	Name       string
	Age        int
	Conditions []string
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, userID)
}

func (s *Service) Upsert(ctx context.Context, userID string, in UpsertInput) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Age < 0 {
		return Profile{}, ErrInvalidInput
	}

	// Condiciones vacías se descartan; se mantiene el orden que mandó el usuario.
	conds := make([]string, 0, len(in.Conditions))
	for _, c := range in.Conditions {
		if c = strings.TrimSpace(c); c != "" {
			conds = append(conds, c)
		}
	}

	p := Profile{
		UserID:     userID,
		Name:       name,
		Age:        in.Age,
		Conditions: conds,
		UpdatedAt:  s.now(),
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
