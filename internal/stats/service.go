package stats

import (
	"context"
	"fmt"

	pkgerrors "github.com/greencycle/ewaste-backend/pkg/errors"
)

// Counter is the read surface the service needs from the stats repo.
type Counter interface {
	GlobalStatusCounts(ctx context.Context) (map[string]int64, error)
	GlobalDeviceTypeCounts(ctx context.Context) (map[string]int64, error)
	UserStatusCounts(ctx context.Context, userID int64) (map[string]int64, error)
	TotalRequests(ctx context.Context) (int64, error)
}

// EntityCounter counts accounts for the dashboard summary.
type EntityCounter interface {
	Count(ctx context.Context) (int64, error)
}

// DashboardSummary is the admin landing-page aggregate.
type DashboardSummary struct {
	TotalUsers         int64            `json:"total_users"`
	TotalPickupPersons int64            `json:"total_pickup_persons"`
	TotalRequests      int64            `json:"total_requests"`
	StatusCounts       map[string]int64 `json:"status_counts"`
	DeviceTypeCounts   map[string]int64 `json:"device_type_counts"`
}

// Service exposes the aggregation operations.
type Service interface {
	GlobalStatusCounts(ctx context.Context) (map[string]int64, error)
	DeviceTypeCounts(ctx context.Context) (map[string]int64, error)
	UserStatusCounts(ctx context.Context, userID int64) (map[string]int64, error)
	DashboardSummary(ctx context.Context) (*DashboardSummary, error)
}

type service struct {
	counts  Counter
	users   EntityCounter
	persons EntityCounter
}

// NewService wires the stats service with its read-side collaborators.
func NewService(counts Counter, users EntityCounter, persons EntityCounter) (Service, error) {
	if counts == nil {
		return nil, fmt.Errorf("stats counter required")
	}
	if users == nil {
		return nil, fmt.Errorf("users counter required")
	}
	if persons == nil {
		return nil, fmt.Errorf("pickup persons counter required")
	}
	return &service{counts: counts, users: users, persons: persons}, nil
}

func (s *service) GlobalStatusCounts(ctx context.Context) (map[string]int64, error) {
	out, err := s.counts.GlobalStatusCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "status counts")
	}
	return out, nil
}

func (s *service) DeviceTypeCounts(ctx context.Context) (map[string]int64, error) {
	out, err := s.counts.GlobalDeviceTypeCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "device type counts")
	}
	return out, nil
}

func (s *service) UserStatusCounts(ctx context.Context, userID int64) (map[string]int64, error) {
	out, err := s.counts.UserStatusCounts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "user status counts")
	}
	return out, nil
}

func (s *service) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	totalPersons, err := s.persons.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pickup persons")
	}
	totalRequests, err := s.counts.TotalRequests(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count requests")
	}
	statusCounts, err := s.counts.GlobalStatusCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "status counts")
	}
	deviceCounts, err := s.counts.GlobalDeviceTypeCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "device type counts")
	}

	return &DashboardSummary{
		TotalUsers:         totalUsers,
		TotalPickupPersons: totalPersons,
		TotalRequests:      totalRequests,
		StatusCounts:       statusCounts,
		DeviceTypeCounts:   deviceCounts,
	}, nil
}
