package careplan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lamar-health/care-plan-service/internal/messaging"
	"github.com/lamar-health/care-plan-service/internal/records"
	"github.com/lamar-health/care-plan-service/internal/testutil"
)

func TestEnsureCarePlan_ExistingPlanSkipsGeneration(t *testing.T) {
	existing := &records.CarePlan{ID: "plan-1", OrderID: "order-1", Text: "Existing plan"}
	repo := &mockRepository{
		getCarePlanByOrderFunc: func(ctx context.Context, orderID string) (*records.CarePlan, error) {
			return existing, nil
		},
	}
	generator := &mockGenerator{}
	service := NewService(repo, generator, testutil.NewMockPublisher(), nil)

	plan, err := service.EnsureCarePlan(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if plan != existing {
		t.Error("Expected the existing plan to be returned untouched")
	}
	if generator.calls != 0 {
		t.Errorf("Expected no generator calls for existing plan, got %d", generator.calls)
	}
}

func TestEnsureCarePlan_GeneratesAndPersistsOnce(t *testing.T) {
	var persisted string
	repo := &mockRepository{
		createCarePlanFunc: func(ctx context.Context, orderID, text string) (*records.CarePlan, error) {
			persisted = text
			return &records.CarePlan{ID: "plan-1", OrderID: orderID, Text: text, GeneratedAt: time.Now()}, nil
		},
	}
	generator := &mockGenerator{
		generateFunc: func(ctx context.Context, system, prompt string) (string, error) {
			return "Fresh care plan text", nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(repo, generator, publisher, nil)

	plan, err := service.EnsureCarePlan(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if plan.Text != "Fresh care plan text" {
		t.Errorf("Expected generated text, got %q", plan.Text)
	}
	if persisted != "Fresh care plan text" {
		t.Errorf("Expected generated text persisted, got %q", persisted)
	}
	if generator.calls != 1 {
		t.Errorf("Expected exactly one generator call, got %d", generator.calls)
	}
	if events := publisher.EventsByKey(messaging.EventCarePlanGenerated); len(events) != 1 {
		t.Errorf("Expected one careplan.generated event, got %d", len(events))
	}
}

func TestEnsureCarePlan_GenerationFailureWritesNothing(t *testing.T) {
	creates := 0
	repo := &mockRepository{
		createCarePlanFunc: func(ctx context.Context, orderID, text string) (*records.CarePlan, error) {
			creates++
			return nil, nil
		},
	}
	generator := &mockGenerator{
		generateFunc: func(ctx context.Context, system, prompt string) (string, error) {
			return "", errors.New("api unavailable")
		},
	}
	service := NewService(repo, generator, testutil.NewMockPublisher(), nil)

	_, err := service.EnsureCarePlan(context.Background(), testOrder())
	if err == nil {
		t.Fatal("Expected an error when generation fails")
	}
	if creates != 0 {
		t.Errorf("Expected no care plan writes on generation failure, got %d", creates)
	}
}

func TestEnsureCarePlan_LostRaceReturnsWinnersPlan(t *testing.T) {
	winner := &records.CarePlan{ID: "plan-winner", OrderID: "order-1", Text: "Winner's plan"}
	lookups := 0
	repo := &mockRepository{
		getCarePlanByOrderFunc: func(ctx context.Context, orderID string) (*records.CarePlan, error) {
			lookups++
			if lookups == 1 {
				// First check: no plan yet
				return nil, records.ErrCarePlanNotFound
			}
			// Re-fetch after the constraint violation
			return winner, nil
		},
		createCarePlanFunc: func(ctx context.Context, orderID, text string) (*records.CarePlan, error) {
			return nil, records.ErrCarePlanExists
		},
	}
	generator := &mockGenerator{}
	publisher := testutil.NewMockPublisher()
	service := NewService(repo, generator, publisher, nil)

	plan, err := service.EnsureCarePlan(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if plan != winner {
		t.Error("Expected the winner's plan after losing the create race")
	}
	if events := publisher.EventsByKey(messaging.EventCarePlanGenerated); len(events) != 0 {
		t.Errorf("Expected no generated event from the race loser, got %d", len(events))
	}
}

func TestUpdateText(t *testing.T) {
	var gotText string
	repo := &mockRepository{
		updateCarePlanTextFunc: func(ctx context.Context, orderID, text string) (*records.CarePlan, error) {
			gotText = text
			return &records.CarePlan{ID: "plan-1", OrderID: orderID, Text: text, UpdatedAt: time.Now()}, nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(repo, &mockGenerator{}, publisher, nil)

	plan, err := service.UpdateText(context.Background(), "order-1", "Edited plan")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if plan.Text != "Edited plan" || gotText != "Edited plan" {
		t.Errorf("Expected updated text persisted, got %q", gotText)
	}
	if events := publisher.EventsByKey(messaging.EventCarePlanUpdated); len(events) != 1 {
		t.Errorf("Expected one careplan.updated event, got %d", len(events))
	}
}

func TestUpdateText_MissingPlan(t *testing.T) {
	repo := &mockRepository{
		updateCarePlanTextFunc: func(ctx context.Context, orderID, text string) (*records.CarePlan, error) {
			return nil, records.ErrCarePlanNotFound
		},
	}
	service := NewService(repo, &mockGenerator{}, testutil.NewMockPublisher(), nil)

	_, err := service.UpdateText(context.Background(), "order-1", "Edited plan")
	if !errors.Is(err, records.ErrCarePlanNotFound) {
		t.Errorf("Expected ErrCarePlanNotFound, got: %v", err)
	}
}
