package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicine-reminder/internal/domain/schedule"
)

type fakeKV struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.getErr != nil {
		return goredis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) *goredis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = ttl
	return goredis.NewStatusResult("OK", nil)
}

func TestScheduleCache_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	c := NewScheduleCache(kv, time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	want := schedule.Result{
		OptimizedSchedule: []schedule.Entry{{Time: "08:00", Medicines: []string{"A"}}},
		Precautions:       []string{"p"},
		DoctorWarning:     "w",
	}
	require.NoError(t, c.Set(ctx, "k", want))
	assert.Equal(t, time.Hour, kv.ttls["k"])

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestScheduleCache_CorruptIsMiss(t *testing.T) {
	kv := newFakeKV()
	kv.data["k"] = "{not json"

	_, ok, err := NewScheduleCache(kv, 0).Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScheduleCache_GetError(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("connection refused")

	_, ok, err := NewScheduleCache(kv, 0).Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}
