package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"evrental-backend/internal/domain"
)

func TestPenaltyCatalog_CacheMissFallsThroughToRepo(t *testing.T) {
	repo := new(MockPenaltyFeeRepo)
	cacheMock := new(MockCatalogCache)
	svc := NewPenaltyCatalogService(repo, cacheMock, time.Minute)

	fees := []domain.PenaltyFee{{ID: 1, Name: "Scratched panel", AmountCents: 150000}}
	cacheMock.On("Get", mock.Anything, catalogCacheKey, mock.Anything).Return(redis.Nil)
	repo.On("List", mock.Anything).Return(fees, nil)
	cacheMock.On("Set", mock.Anything, catalogCacheKey, fees, time.Minute).Return(nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fees, got)
	cacheMock.AssertExpectations(t)
}

func TestPenaltyCatalog_BackendFailureReturnsEmptyListAndError(t *testing.T) {
	repo := new(MockPenaltyFeeRepo)
	cacheMock := new(MockCatalogCache)
	svc := NewPenaltyCatalogService(repo, cacheMock, time.Minute)

	cacheMock.On("Get", mock.Anything, catalogCacheKey, mock.Anything).Return(redis.Nil)
	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	got, err := svc.List(context.Background())
	assert.True(t, domain.IsKind(err, domain.ErrKindExternal))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPenaltyCatalog_CacheErrorStillServesFromRepo(t *testing.T) {
	repo := new(MockPenaltyFeeRepo)
	cacheMock := new(MockCatalogCache)
	svc := NewPenaltyCatalogService(repo, cacheMock, time.Minute)

	fees := []domain.PenaltyFee{{ID: 2, Name: "Missing helmet", AmountCents: 80000}}
	cacheMock.On("Get", mock.Anything, catalogCacheKey, mock.Anything).Return(errors.New("redis down"))
	repo.On("List", mock.Anything).Return(fees, nil)
	cacheMock.On("Set", mock.Anything, catalogCacheKey, fees, time.Minute).Return(errors.New("redis down"))

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fees, got)
}
