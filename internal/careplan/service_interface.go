package careplan

import (
	"context"

	"github.com/lamar-health/care-plan-service/internal/records"
)

// ServiceInterface defines the contract for care plan operations
type ServiceInterface interface {
	GetOrder(ctx context.Context, orderID string) (*records.Order, error)
	GetCarePlan(ctx context.Context, orderID string) (*records.CarePlan, error)
	EnsureCarePlan(ctx context.Context, order *records.Order) (*records.CarePlan, error)
	UpdateText(ctx context.Context, orderID, text string) (*records.CarePlan, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
