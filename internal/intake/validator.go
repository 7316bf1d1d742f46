package intake

import "regexp"

var (
	mrnPattern = regexp.MustCompile(`^\d{6}$`)
	npiPattern = regexp.MustCompile(`^\d{10}$`)
)

const requiredMessage = "This field is required."

// Validate checks submitted field formats. It runs before any store
// access; a non-empty result stops the workflow with no side effects.
func Validate(sub Submission) FieldErrors {
	errs := FieldErrors{}

	required := map[string]string{
		"patient_first_name": sub.PatientFirstName,
		"patient_last_name":  sub.PatientLastName,
		"provider_name":      sub.ProviderName,
		"primary_diagnosis":  sub.PrimaryDiagnosis,
		"medication_name":    sub.MedicationName,
		"patient_records":    sub.PatientRecords,
	}
	for field, value := range required {
		if value == "" {
			errs[field] = requiredMessage
		}
	}

	if sub.MRN == "" {
		errs["mrn"] = requiredMessage
	} else if !mrnPattern.MatchString(sub.MRN) {
		errs["mrn"] = "MRN must be exactly 6 digits"
	}

	if sub.ProviderNPI == "" {
		errs["provider_npi"] = requiredMessage
	} else if !npiPattern.MatchString(sub.ProviderNPI) {
		errs["provider_npi"] = "NPI must be exactly 10 digits"
	}

	// additional_diagnoses and medication_history are optional

	return errs
}
