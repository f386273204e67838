package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byUser map[string]Profile
}

func (r *testRepo) Get(_ context.Context, userID string) (Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) Upsert(_ context.Context, p Profile) error {
	r.byUser[p.UserID] = p
	return nil
}

func TestService_Upsert_NormalizesConditions(t *testing.T) {
	repo := &testRepo{byUser: map[string]Profile{}}
	svc := NewService(repo)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Upsert(context.Background(), "u1", UpsertInput{
		Name:       " Rosa ",
		Age:        78,
		Conditions: []string{" hypertension", "", "  ", "diabetes"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Rosa", p.Name)
	assert.Equal(t, []string{"hypertension", "diabetes"}, p.Conditions)
	assert.Equal(t, now, p.UpdatedAt)

	got, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestService_Upsert_Invalid(t *testing.T) {
	svc := NewService(&testRepo{byUser: map[string]Profile{}})

	_, err := svc.Upsert(context.Background(), "u1", UpsertInput{Name: " ", Age: 70})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upsert(context.Background(), "u1", UpsertInput{Name: "A", Age: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upsert(context.Background(), "", UpsertInput{Name: "A", Age: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(&testRepo{byUser: map[string]Profile{}})

	_, err := svc.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
