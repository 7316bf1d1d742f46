package records

import "time"

// Patient is an identity record keyed by medical record number.
// Patients are created via get-or-create during order intake and are
// never modified or deleted by the application afterwards.
type Patient struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	MRN       string    `json:"mrn"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider is an identity record keyed by national provider identifier.
type Provider struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NPI       string    `json:"npi"`
	CreatedAt time.Time `json:"created_at"`
}

// Order is a clinical request linking a patient and a provider.
type Order struct {
	ID                  string    `json:"id"`
	Patient             Patient   `json:"patient"`
	Provider            Provider  `json:"provider"`
	PrimaryDiagnosis    string    `json:"primary_diagnosis"`
	MedicationName      string    `json:"medication_name"`
	AdditionalDiagnoses string    `json:"additional_diagnoses"`
	MedicationHistory   string    `json:"medication_history"`
	PatientRecords      string    `json:"patient_records"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CarePlan is the generated artifact tied one-to-one to an Order.
// GeneratedAt is set once at creation and never changes; UpdatedAt is
// bumped whenever the text is edited.
type CarePlan struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	Text        string    `json:"care_plan_text"`
	GeneratedAt time.Time `json:"generated_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExportRow is one line of the bulk CSV export. CarePlanText is the
// empty string when the order has no care plan yet; an absent plan never
// drops the row.
type ExportRow struct {
	OrderID             string
	OrderDate           time.Time
	PatientMRN          string
	PatientFirstName    string
	PatientLastName     string
	ProviderName        string
	ProviderNPI         string
	PrimaryDiagnosis    string
	MedicationName      string
	AdditionalDiagnoses string
	MedicationHistory   string
	CarePlanText        string
}

// NewOrder carries the fields needed to create an Order during intake.
type NewOrder struct {
	PatientID           string
	ProviderID          string
	PrimaryDiagnosis    string
	MedicationName      string
	AdditionalDiagnoses string
	MedicationHistory   string
	PatientRecords      string
}
