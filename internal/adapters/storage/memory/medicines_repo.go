package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"medicine-reminder/internal/domain/medicines"
)

type medicineRepo struct {
	mu   sync.RWMutex
	byID map[string]medicines.Medicine
}

func NewMedicineRepo() medicines.Repository {
	return &medicineRepo{
		byID: make(map[string]medicines.Medicine),
	}
}

func (r *medicineRepo) Create(ctx context.Context, m medicines.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medicine id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medicine already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medicineRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicines.Medicine, 0)
	for _, m := range r.byID {
		if m.UserID == userID {
			out = append(out, m)
		}
	}

	// Por hora; a igual hora, por alta (para que el orden sea estable)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *medicineRepo) UpdateStatus(ctx context.Context, userID, id string, status medicines.Status, at time.Time) (medicines.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok || m.UserID != userID {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = at
	r.byID[id] = m
	return m, nil
}

func (r *medicineRepo) UpdateTimeByName(ctx context.Context, userID, name, clock string, at time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, m := range r.byID {
		if m.UserID != userID || m.Name != name {
			continue
		}
		m.Time = clock
		m.UpdatedAt = at
		r.byID[id] = m
		n++
	}
	return n, nil
}

func (r *medicineRepo) ResetStatuses(ctx context.Context, status medicines.Status, at time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, m := range r.byID {
		if m.Status == status {
			continue
		}
		m.Status = status
		m.UpdatedAt = at
		r.byID[id] = m
		n++
	}
	return n, nil
}
