package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/victortedesco/inventory-management/internal/domain"
)

// MockAuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) logs(args mock.Arguments) ([]domain.AuditLog, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

func (m *MockAuditLogRepository) GetAll(ctx context.Context, skip, take int) ([]domain.AuditLog, error) {
	return m.logs(m.Called(ctx, skip, take))
}

func (m *MockAuditLogRepository) GetByEntityName(ctx context.Context, skip, take int, entityName string) ([]domain.AuditLog, error) {
	return m.logs(m.Called(ctx, skip, take, entityName))
}

func (m *MockAuditLogRepository) GetByEntityID(ctx context.Context, skip, take int, entityID string) ([]domain.AuditLog, error) {
	return m.logs(m.Called(ctx, skip, take, entityID))
}

func (m *MockAuditLogRepository) GetByEntityType(ctx context.Context, skip, take int, entityType string) ([]domain.AuditLog, error) {
	return m.logs(m.Called(ctx, skip, take, entityType))
}

func (m *MockAuditLogRepository) GetByUserID(ctx context.Context, skip, take int, userID string) ([]domain.AuditLog, error) {
	return m.logs(m.Called(ctx, skip, take, userID))
}

func (m *MockAuditLogRepository) GetByActionType(ctx context.Context, skip, take int, action domain.AuditActionType) ([]domain.AuditLog, error) {
	return m.logs(m.Called(ctx, skip, take, action))
}

func (m *MockAuditLogRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		skip, take         int
		wantSkip, wantTake int
	}{
		{0, 10, 0, 10},
		{-5, 10, 0, 10},
		{20, 0, 20, 10},
		{0, -1, 0, 10},
		{0, 100, 0, 100},
		{0, 500, 0, 100},
	}
	for _, tt := range tests {
		skip, take := normalizePage(tt.skip, tt.take)
		assert.Equal(t, tt.wantSkip, skip)
		assert.Equal(t, tt.wantTake, take)
	}
}

func TestAuditLogService_GetAllMapsEntries(t *testing.T) {
	repo := new(MockAuditLogRepository)
	svc := NewAuditLogService(repo)
	ctx := context.Background()

	name, old, updated := "Hammer", "10.00", "12.50"
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.On("GetAll", ctx, 0, 100).Return([]domain.AuditLog{{
		ID: 7, ActionType: domain.AuditActionUpdate, EntityType: "Product", EntityName: &name, EntityID: "p-1",
		Property: "UnitPrice", OldValue: &old, NewValue: &updated, UserID: "u-1", Timestamp: at,
	}}, nil)

	out, err := svc.GetAll(ctx, -1, 1000)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, uint(7), out[0].ID)
	assert.Equal(t, "Update", out[0].ActionType)
	assert.Equal(t, "Hammer", *out[0].EntityName)
	assert.Equal(t, "10.00", *out[0].OldValue)
	assert.Equal(t, "12.50", *out[0].NewValue)
	assert.Equal(t, at, out[0].Timestamp)

	repo.AssertExpectations(t)
}

func TestAuditLogService_Filters(t *testing.T) {
	repo := new(MockAuditLogRepository)
	svc := NewAuditLogService(repo)
	ctx := context.Background()

	repo.On("GetByEntityName", ctx, 0, 10, "too").Return([]domain.AuditLog{}, nil)
	repo.On("GetByEntityID", ctx, 5, 10, "p-1").Return([]domain.AuditLog{}, nil)
	repo.On("GetByEntityType", ctx, 0, 20, "Product").Return([]domain.AuditLog{}, nil)
	repo.On("GetByUserID", ctx, 0, 10, "u-1").Return([]domain.AuditLog{}, nil)
	repo.On("GetByActionType", ctx, 0, 10, domain.AuditActionDelete).Return([]domain.AuditLog{}, nil)

	_, err := svc.GetByEntityName(ctx, 0, 0, "too")
	assert.NoError(t, err)
	_, err = svc.GetByEntityID(ctx, 5, 10, "p-1")
	assert.NoError(t, err)
	_, err = svc.GetByEntityType(ctx, 0, 20, "Product")
	assert.NoError(t, err)
	_, err = svc.GetByUserID(ctx, 0, 10, "u-1")
	assert.NoError(t, err)
	out, err := svc.GetByActionType(ctx, 0, 10, "delete")
	assert.NoError(t, err)
	assert.Empty(t, out)

	repo.AssertExpectations(t)
}

func TestAuditLogService_InvalidActionType(t *testing.T) {
	repo := new(MockAuditLogRepository)
	svc := NewAuditLogService(repo)

	_, err := svc.GetByActionType(context.Background(), 0, 10, "archive")

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	repo.AssertNotCalled(t, "GetByActionType", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuditLogService_RepositoryError(t *testing.T) {
	repo := new(MockAuditLogRepository)
	svc := NewAuditLogService(repo)
	ctx := context.Background()

	repo.On("GetByUserID", ctx, 0, 10, "u-1").Return(nil, errors.New("failed to list audit logs by user id"))
	repo.On("Count", ctx).Return(int64(3), nil)

	out, err := svc.GetByUserID(ctx, 0, 10, "u-1")
	assert.Error(t, err)
	assert.Nil(t, out)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
