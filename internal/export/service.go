package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/lamar-health/care-plan-service/internal/pagination"
	"github.com/lamar-health/care-plan-service/internal/records"
)

// csvHeader is the fixed column set of the bulk export
var csvHeader = []string{
	"Order ID",
	"Order Date",
	"Patient MRN",
	"Patient First Name",
	"Patient Last Name",
	"Provider Name",
	"Provider NPI",
	"Primary Diagnosis",
	"Medication Name",
	"Additional Diagnoses",
	"Medication History",
	"Care Plan Text",
}

type Service struct {
	repo records.RepositoryInterface
}

func NewService(repo records.RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// ListOrders returns one page of orders, newest first, with pagination metadata
func (s *Service) ListOrders(ctx context.Context, params pagination.Params) ([]records.Order, pagination.Meta, error) {
	orders, total, err := s.repo.ListOrders(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, params.Meta(total), nil
}

// WriteCSV streams the bulk export to w: a header row followed by one row
// per order, newest first. Orders without a care plan get an empty string
// in the care plan column rather than being skipped.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.repo.ExportRows(ctx)
	if err != nil {
		return fmt.Errorf("failed to load export rows: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.OrderID,
			row.OrderDate.Format("2006-01-02 15:04:05"),
			row.PatientMRN,
			row.PatientFirstName,
			row.PatientLastName,
			row.ProviderName,
			row.ProviderNPI,
			row.PrimaryDiagnosis,
			row.MedicationName,
			row.AdditionalDiagnoses,
			row.MedicationHistory,
			row.CarePlanText,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
