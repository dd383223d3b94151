package queries

import (
	"context"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Append(ctx context.Context, event *domain.TaskEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventRepo) FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.TaskEvent, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskEvent), args.Error(1)
}

func (m *mockEventRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type mockReportCache struct {
	mock.Mock
}

func (m *mockReportCache) Get(ctx context.Context, userID uuid.UUID, rng domain.NamedRange) (*domain.ProductivityReport, bool) {
	args := m.Called(ctx, userID, rng)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.ProductivityReport), args.Bool(1)
}

func (m *mockReportCache) Set(ctx context.Context, userID uuid.UUID, rng domain.NamedRange, report *domain.ProductivityReport) {
	m.Called(ctx, userID, rng, report)
}
