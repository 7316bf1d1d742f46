package careplan

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lamar-health/care-plan-service/internal/messaging"
	"github.com/lamar-health/care-plan-service/internal/records"
	"github.com/lamar-health/care-plan-service/internal/telemetry"
)

// Generator produces care plan text from a system instruction and a user
// prompt. The llm package provides the real implementation.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

type Service struct {
	repo      records.RepositoryInterface
	generator Generator
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
}

func NewService(repo records.RepositoryInterface, generator Generator, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *Service {
	return &Service{repo: repo, generator: generator, publisher: publisher, metrics: metrics}
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*records.Order, error) {
	return s.repo.GetOrder(ctx, orderID)
}

func (s *Service) GetCarePlan(ctx context.Context, orderID string) (*records.CarePlan, error) {
	return s.repo.GetCarePlanByOrder(ctx, orderID)
}

// EnsureCarePlan returns the order's care plan, generating and persisting
// it first if none exists. An existing plan is returned untouched with no
// generator call, so generation happens at most once per order. When a
// concurrent request wins the one-plan-per-order constraint race, this
// call discards its own generated text and returns the winner's row.
// On generation failure nothing is written; the order stays valid.
func (s *Service) EnsureCarePlan(ctx context.Context, order *records.Order) (*records.CarePlan, error) {
	existing, err := s.repo.GetCarePlanByOrder(ctx, order.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, records.ErrCarePlanNotFound) {
		return nil, err
	}

	text, err := s.generator.Generate(ctx, SystemPrompt, BuildPrompt(order))
	if err != nil {
		s.metrics.RecordGeneration(ctx, "failed")
		return nil, fmt.Errorf("care plan generation failed: %w", err)
	}

	plan, err := s.repo.CreateCarePlan(ctx, order.ID, text)
	if errors.Is(err, records.ErrCarePlanExists) {
		s.metrics.RecordGeneration(ctx, "lost_race")
		return s.repo.GetCarePlanByOrder(ctx, order.ID)
	}
	if err != nil {
		s.metrics.RecordGeneration(ctx, "failed")
		return nil, err
	}

	s.metrics.RecordGeneration(ctx, "generated")
	s.publishEvent(ctx, messaging.EventCarePlanGenerated, messaging.CarePlanGeneratedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventCarePlanGenerated),
		Data: messaging.CarePlanGeneratedData{
			CarePlanID:  plan.ID,
			OrderID:     order.ID,
			PatientMRN:  order.Patient.MRN,
			GeneratedAt: plan.GeneratedAt,
		},
	})

	return plan, nil
}

// UpdateText overwrites the care plan body for the given order and bumps
// its update timestamp. The generation timestamp is left alone.
func (s *Service) UpdateText(ctx context.Context, orderID, text string) (*records.CarePlan, error) {
	plan, err := s.repo.UpdateCarePlanText(ctx, orderID, text)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.EventCarePlanUpdated, messaging.CarePlanUpdatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventCarePlanUpdated),
		Data: messaging.CarePlanUpdatedData{
			CarePlanID: plan.ID,
			OrderID:    orderID,
			UpdatedAt:  plan.UpdatedAt,
		},
	})

	return plan, nil
}

func (s *Service) publishEvent(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
