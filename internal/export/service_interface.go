package export

import (
	"context"
	"io"

	"github.com/lamar-health/care-plan-service/internal/pagination"
	"github.com/lamar-health/care-plan-service/internal/records"
)

// ServiceInterface defines the contract for listing and export operations
type ServiceInterface interface {
	ListOrders(ctx context.Context, params pagination.Params) ([]records.Order, pagination.Meta, error)
	WriteCSV(ctx context.Context, w io.Writer) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
