package intake

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lamar-health/care-plan-service/internal/messaging"
	"github.com/lamar-health/care-plan-service/internal/records"
	"github.com/lamar-health/care-plan-service/internal/telemetry"
)

type Service struct {
	repo      records.RepositoryInterface
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	loc       *time.Location
}

func NewService(repo records.RepositoryInterface, publisher messaging.PublisherInterface, metrics *telemetry.Metrics, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, publisher: publisher, metrics: metrics, loc: loc}
}

// Submit runs one intake submission through the workflow:
// validate, detect duplicates, then commit unless warnings are present
// and unacknowledged. Only the commit step writes to the store.
// Acknowledgment is consumed by the submission carrying it; a later
// submission is re-evaluated from scratch.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if fieldErrs := Validate(sub); len(fieldErrs) > 0 {
		return &Result{FieldErrors: fieldErrs}, nil
	}

	warnings, err := Detect(ctx, s.repo, sub, time.Now().In(s.loc))
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		s.metrics.RecordWarning(ctx, w.Kind)
	}

	if len(warnings) > 0 && !sub.AcknowledgeWarnings {
		return &Result{Warnings: warnings}, nil
	}

	order, err := s.commit(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOrderCreated(ctx, sub.AcknowledgeWarnings)
	s.publishOrderCreated(ctx, order, sub.AcknowledgeWarnings)

	return &Result{Order: order, Warnings: warnings}, nil
}

// commit performs the only writes in the workflow: get-or-create the
// patient and provider, then create the order. The submitted names are
// used only when the identity rows are newly created.
func (s *Service) commit(ctx context.Context, sub Submission) (*records.Order, error) {
	patient, err := s.repo.GetOrCreatePatient(ctx, sub.MRN, sub.PatientFirstName, sub.PatientLastName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}

	provider, err := s.repo.GetOrCreateProvider(ctx, sub.ProviderNPI, sub.ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider: %w", err)
	}

	order, err := s.repo.CreateOrder(ctx, records.NewOrder{
		PatientID:           patient.ID,
		ProviderID:          provider.ID,
		PrimaryDiagnosis:    sub.PrimaryDiagnosis,
		MedicationName:      sub.MedicationName,
		AdditionalDiagnoses: sub.AdditionalDiagnoses,
		MedicationHistory:   sub.MedicationHistory,
		PatientRecords:      sub.PatientRecords,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

func (s *Service) publishOrderCreated(ctx context.Context, order *records.Order, acknowledged bool) {
	if s.publisher == nil {
		return
	}

	event := messaging.OrderCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventOrderCreated),
		Data: messaging.OrderCreatedData{
			OrderID:        order.ID,
			PatientMRN:     order.Patient.MRN,
			ProviderNPI:    order.Provider.NPI,
			MedicationName: order.MedicationName,
			Acknowledged:   acknowledged,
			CreatedAt:      order.CreatedAt,
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventOrderCreated, event); err != nil {
		log.Printf("Warning: failed to publish order.created event: %v", err)
	}
}
