package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	EventOrderCreated      = "order.created"
	EventCarePlanGenerated = "careplan.generated"
	EventCarePlanUpdated   = "careplan.updated"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// OrderCreatedEvent is published after an intake submission commits
type OrderCreatedEvent struct {
	BaseEvent
	Data OrderCreatedData `json:"data"`
}

type OrderCreatedData struct {
	OrderID        string    `json:"order_id"`
	PatientMRN     string    `json:"patient_mrn"`
	ProviderNPI    string    `json:"provider_npi"`
	MedicationName string    `json:"medication_name"`
	Acknowledged   bool      `json:"warnings_acknowledged"`
	CreatedAt      time.Time `json:"created_at"`
}

// CarePlanGeneratedEvent is published after a care plan is first persisted
type CarePlanGeneratedEvent struct {
	BaseEvent
	Data CarePlanGeneratedData `json:"data"`
}

type CarePlanGeneratedData struct {
	CarePlanID  string    `json:"care_plan_id"`
	OrderID     string    `json:"order_id"`
	PatientMRN  string    `json:"patient_mrn"`
	GeneratedAt time.Time `json:"generated_at"`
}

// CarePlanUpdatedEvent is published after a care plan's text is edited
type CarePlanUpdatedEvent struct {
	BaseEvent
	Data CarePlanUpdatedData `json:"data"`
}

type CarePlanUpdatedData struct {
	CarePlanID string    `json:"care_plan_id"`
	OrderID    string    `json:"order_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(),
		ServiceName: "care-plan-service",
	}
}
