package records

import "errors"

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrProviderNotFound = errors.New("provider not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCarePlanNotFound = errors.New("care plan not found")

	// ErrCarePlanExists is returned when a care plan insert loses the
	// one-plan-per-order uniqueness race. The caller is expected to
	// re-fetch the winning row and discard its own attempt.
	ErrCarePlanExists = errors.New("care plan already exists for this order")
)
