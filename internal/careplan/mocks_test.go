package careplan

import (
	"context"
	"errors"
	"time"

	"github.com/lamar-health/care-plan-service/internal/records"
)

// mockRepository implements records.RepositoryInterface for testing
type mockRepository struct {
	getPatientByMRNFunc     func(ctx context.Context, mrn string) (*records.Patient, error)
	getOrCreatePatientFunc  func(ctx context.Context, mrn, firstName, lastName string) (*records.Patient, error)
	getProviderByNPIFunc    func(ctx context.Context, npi string) (*records.Provider, error)
	getOrCreateProviderFunc func(ctx context.Context, npi, name string) (*records.Provider, error)
	createOrderFunc         func(ctx context.Context, req records.NewOrder) (*records.Order, error)
	getOrderFunc            func(ctx context.Context, id string) (*records.Order, error)
	listOrdersFunc          func(ctx context.Context, limit, offset int) ([]records.Order, int, error)
	findOrderFunc           func(ctx context.Context, mrn, medication string, since time.Time) (*records.Order, error)
	createCarePlanFunc      func(ctx context.Context, orderID, text string) (*records.CarePlan, error)
	getCarePlanByOrderFunc  func(ctx context.Context, orderID string) (*records.CarePlan, error)
	updateCarePlanTextFunc  func(ctx context.Context, orderID, text string) (*records.CarePlan, error)
	exportRowsFunc          func(ctx context.Context) ([]records.ExportRow, error)
}

var _ records.RepositoryInterface = (*mockRepository)(nil)

func (m *mockRepository) GetPatientByMRN(ctx context.Context, mrn string) (*records.Patient, error) {
	if m.getPatientByMRNFunc != nil {
		return m.getPatientByMRNFunc(ctx, mrn)
	}
	return nil, records.ErrPatientNotFound
}

func (m *mockRepository) GetOrCreatePatient(ctx context.Context, mrn, firstName, lastName string) (*records.Patient, error) {
	if m.getOrCreatePatientFunc != nil {
		return m.getOrCreatePatientFunc(ctx, mrn, firstName, lastName)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetProviderByNPI(ctx context.Context, npi string) (*records.Provider, error) {
	if m.getProviderByNPIFunc != nil {
		return m.getProviderByNPIFunc(ctx, npi)
	}
	return nil, records.ErrProviderNotFound
}

func (m *mockRepository) GetOrCreateProvider(ctx context.Context, npi, name string) (*records.Provider, error) {
	if m.getOrCreateProviderFunc != nil {
		return m.getOrCreateProviderFunc(ctx, npi, name)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) CreateOrder(ctx context.Context, req records.NewOrder) (*records.Order, error) {
	if m.createOrderFunc != nil {
		return m.createOrderFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetOrder(ctx context.Context, id string) (*records.Order, error) {
	if m.getOrderFunc != nil {
		return m.getOrderFunc(ctx, id)
	}
	return nil, records.ErrOrderNotFound
}

func (m *mockRepository) ListOrders(ctx context.Context, limit, offset int) ([]records.Order, int, error) {
	if m.listOrdersFunc != nil {
		return m.listOrdersFunc(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockRepository) FindOrderByMRNAndMedicationSince(ctx context.Context, mrn, medication string, since time.Time) (*records.Order, error) {
	if m.findOrderFunc != nil {
		return m.findOrderFunc(ctx, mrn, medication, since)
	}
	return nil, records.ErrOrderNotFound
}

func (m *mockRepository) CreateCarePlan(ctx context.Context, orderID, text string) (*records.CarePlan, error) {
	if m.createCarePlanFunc != nil {
		return m.createCarePlanFunc(ctx, orderID, text)
	}
	return &records.CarePlan{ID: "plan-1", OrderID: orderID, Text: text, GeneratedAt: time.Now(), UpdatedAt: time.Now()}, nil
}

func (m *mockRepository) GetCarePlanByOrder(ctx context.Context, orderID string) (*records.CarePlan, error) {
	if m.getCarePlanByOrderFunc != nil {
		return m.getCarePlanByOrderFunc(ctx, orderID)
	}
	return nil, records.ErrCarePlanNotFound
}

func (m *mockRepository) UpdateCarePlanText(ctx context.Context, orderID, text string) (*records.CarePlan, error) {
	if m.updateCarePlanTextFunc != nil {
		return m.updateCarePlanTextFunc(ctx, orderID, text)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ExportRows(ctx context.Context) ([]records.ExportRow, error) {
	if m.exportRowsFunc != nil {
		return m.exportRowsFunc(ctx)
	}
	return nil, nil
}

// mockGenerator implements Generator with a func field
type mockGenerator struct {
	generateFunc func(ctx context.Context, system, prompt string) (string, error)
	calls        int
}

var _ Generator = (*mockGenerator)(nil)

func (m *mockGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, system, prompt)
	}
	return "Generated care plan text", nil
}

// testOrder returns a fully populated order for prompt and service tests
func testOrder() *records.Order {
	return &records.Order{
		ID: "order-1",
		Patient: records.Patient{
			ID:        "p1",
			FirstName: "John",
			LastName:  "Doe",
			MRN:       "123456",
		},
		Provider: records.Provider{
			ID:   "pr1",
			Name: "Dr. Jane Smith",
			NPI:  "1234567890",
		},
		PrimaryDiagnosis: "E11.9",
		MedicationName:   "Metformin",
		PatientRecords:   "Patient history and clinical notes.",
		CreatedAt:        time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}
