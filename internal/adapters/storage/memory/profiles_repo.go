package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"medicine-reminder/internal/domain/profiles"
)

type profileRepo struct {
	mu     sync.RWMutex
	byUser map[string]profiles.Profile
}

func NewProfileRepo() profiles.Repository {
	return &profileRepo{
		byUser: make(map[string]profiles.Profile),
	}
}

func (r *profileRepo) Get(ctx context.Context, userID string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUser[userID]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	p.Conditions = append([]string(nil), p.Conditions...)
	return p, nil
}

func (r *profileRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("profile user id required")
	}
	p.Conditions = append([]string(nil), p.Conditions...)
	r.byUser[p.UserID] = p
	return nil
}
