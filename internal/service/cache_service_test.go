package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/campusworks/tuition-api/pkg/errors"
)

type mockCacheRepo struct {
	values      map[string][]byte
	invalidated []string
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{values: make(map[string][]byte)}
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	m.values = make(map[string][]byte)
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, NewMetricsService(), time.Minute, zap.NewNop(), true)

	require.NoError(t, svc.Set(context.Background(), "courses:list", []string{"a", "b"}, 0))

	var cached []string
	hit, err := svc.Get(context.Background(), "courses:list", &cached)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, cached)
}

func TestCacheServiceMissIsNotAnError(t *testing.T) {
	svc := NewCacheService(newMockCacheRepo(), NewMetricsService(), time.Minute, zap.NewNop(), true)

	var cached []string
	hit, err := svc.Get(context.Background(), "courses:list", &cached)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), false)

	require.NoError(t, svc.Set(context.Background(), "courses:list", "x", 0))
	assert.Empty(t, repo.values)

	hit, err := svc.Get(context.Background(), "courses:list", new(string))
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, NewMetricsService(), time.Minute, zap.NewNop(), true)

	require.NoError(t, svc.Set(context.Background(), "courses:list", "x", 0))
	require.NoError(t, svc.Invalidate(context.Background(), "courses:*"))
	assert.Equal(t, []string{"courses:*"}, repo.invalidated)
	assert.Empty(t, repo.values)
}
