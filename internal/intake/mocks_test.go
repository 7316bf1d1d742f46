package intake

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
	return &records.Patient{ID: "patient-1", FirstName: firstName, LastName: lastName, MRN: mrn, CreatedAt: time.Now()}, nil
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
	return &records.Provider{ID: "provider-1", Name: name, NPI: npi, CreatedAt: time.Now()}, nil
}

func (m *mockRepository) CreateOrder(ctx context.Context, req records.NewOrder) (*records.Order, error) {
	if m.createOrderFunc != nil {
		return m.createOrderFunc(ctx, req)
	}
	return &records.Order{
		ID:                  "order-1",
		Patient:             records.Patient{ID: req.PatientID},
		Provider:            records.Provider{ID: req.ProviderID},
		PrimaryDiagnosis:    req.PrimaryDiagnosis,
		MedicationName:      req.MedicationName,
		AdditionalDiagnoses: req.AdditionalDiagnoses,
		MedicationHistory:   req.MedicationHistory,
		PatientRecords:      req.PatientRecords,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}, nil
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
	return nil, errors.New("not implemented")
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

// validSubmission returns a submission that passes format validation
func validSubmission() Submission {
	return Submission{
		PatientFirstName: "John",
		PatientLastName:  "Doe",
		MRN:              "123456",
		ProviderName:     "Dr. Jane Smith",
		ProviderNPI:      "1234567890",
		PrimaryDiagnosis: "E11.9",
		MedicationName:   "Metformin",
		PatientRecords:   "Patient history and clinical notes.",
	}
}
