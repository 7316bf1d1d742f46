package intake

import "github.com/lamar-health/care-plan-service/internal/records"

// Warning kinds surfaced by the duplicate detector
const (
	WarningPatientDuplicate     = "patient_duplicate"
	WarningPatientNameMismatch  = "patient_name_mismatch"
	WarningProviderNameMismatch = "provider_name_mismatch"
	WarningOrderDuplicate       = "order_duplicate"
)

// Warning is a non-blocking advisory produced during intake. Warnings do
// not stop a submission by themselves; the caller must acknowledge them
// on the same submission to proceed.
type Warning struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Submission is one intake form submission. AcknowledgeWarnings applies
// only to the submission that carries it; it is never persisted.
type Submission struct {
	PatientFirstName    string
	PatientLastName     string
	MRN                 string
	ProviderName        string
	ProviderNPI         string
	PrimaryDiagnosis    string
	MedicationName      string
	AdditionalDiagnoses string
	MedicationHistory   string
	PatientRecords      string
	AcknowledgeWarnings bool
}

// FieldErrors maps form field names to validation messages
type FieldErrors map[string]string

// Result is the outcome of one pass through the intake workflow.
// Exactly one of the three shapes applies: FieldErrors set (rejected),
// Warnings set with Order nil (warned, nothing written), or Order set
// (committed, possibly with acknowledged warnings alongside).
type Result struct {
	Order       *records.Order
	Warnings    []Warning
	FieldErrors FieldErrors
}

// Committed reports whether the submission resulted in a stored order
func (r *Result) Committed() bool {
	return r.Order != nil
}
