package records

import (
	"context"
	"time"
)

// RepositoryInterface defines the contract for record store data access
type RepositoryInterface interface {
	GetPatientByMRN(ctx context.Context, mrn string) (*Patient, error)
	GetOrCreatePatient(ctx context.Context, mrn, firstName, lastName string) (*Patient, error)

	GetProviderByNPI(ctx context.Context, npi string) (*Provider, error)
	GetOrCreateProvider(ctx context.Context, npi, name string) (*Provider, error)

	CreateOrder(ctx context.Context, req NewOrder) (*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]Order, int, error)
	FindOrderByMRNAndMedicationSince(ctx context.Context, mrn, medication string, since time.Time) (*Order, error)

	CreateCarePlan(ctx context.Context, orderID, text string) (*CarePlan, error)
	GetCarePlanByOrder(ctx context.Context, orderID string) (*CarePlan, error)
	UpdateCarePlanText(ctx context.Context, orderID, text string) (*CarePlan, error)

	ExportRows(ctx context.Context) ([]ExportRow, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
