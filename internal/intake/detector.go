package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lamar-health/care-plan-service/internal/records"
)

// DetectorStore is the narrow view of the record store the duplicate
// detector needs. Lookups that find nothing return the records not-found
// sentinels; that is the normal no-warning case, not a failure.
type DetectorStore interface {
	GetPatientByMRN(ctx context.Context, mrn string) (*records.Patient, error)
	GetProviderByNPI(ctx context.Context, npi string) (*records.Provider, error)
	FindOrderByMRNAndMedicationSince(ctx context.Context, mrn, medication string, since time.Time) (*records.Order, error)
}

// Detect runs the three duplicate checks against the store and returns
// the warnings they produce, in patient, provider, order sequence. It is a
// pure function of the submission, the store contents and now: it holds no
// state between calls and never writes. now must carry the location used
// for the "created today" cutoff and for time-of-day display.
func Detect(ctx context.Context, store DetectorStore, sub Submission, now time.Time) ([]Warning, error) {
	var warnings []Warning

	patientWarning, err := checkPatient(ctx, store, sub)
	if err != nil {
		return nil, err
	}
	if patientWarning != nil {
		warnings = append(warnings, *patientWarning)
	}

	providerWarning, err := checkProvider(ctx, store, sub)
	if err != nil {
		return nil, err
	}
	if providerWarning != nil {
		warnings = append(warnings, *providerWarning)
	}

	orderWarning, err := checkOrder(ctx, store, sub, now)
	if err != nil {
		return nil, err
	}
	if orderWarning != nil {
		warnings = append(warnings, *orderWarning)
	}

	return warnings, nil
}

// checkPatient warns when the submitted MRN already belongs to a patient,
// distinguishing a likely duplicate (names match) from a name mismatch.
// On mismatch the stored identity wins: the MRN is the match key, so the
// order would be attributed to the existing patient, not the typed name.
func checkPatient(ctx context.Context, store DetectorStore, sub Submission) (*Warning, error) {
	existing, err := store.GetPatientByMRN(ctx, sub.MRN)
	if errors.Is(err, records.ErrPatientNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("patient duplicate check failed: %w", err)
	}

	if strings.EqualFold(existing.FirstName, sub.PatientFirstName) &&
		strings.EqualFold(existing.LastName, sub.PatientLastName) {
		return &Warning{
			Kind: WarningPatientDuplicate,
			Message: fmt.Sprintf(
				"A patient with MRN %s and name \"%s %s\" already exists. This may be a duplicate order.",
				sub.MRN, sub.PatientFirstName, sub.PatientLastName,
			),
		}, nil
	}

	return &Warning{
		Kind: WarningPatientNameMismatch,
		Message: fmt.Sprintf(
			"MRN %s belongs to \"%s %s\". You entered \"%s %s\". If you proceed, this order will be created for %s %s, NOT %s %s.",
			sub.MRN,
			existing.FirstName, existing.LastName,
			sub.PatientFirstName, sub.PatientLastName,
			existing.FirstName, existing.LastName,
			sub.PatientFirstName, sub.PatientLastName,
		),
	}, nil
}

// checkProvider warns when the submitted NPI exists under a different
// name. A matching name is not worth a warning.
func checkProvider(ctx context.Context, store DetectorStore, sub Submission) (*Warning, error) {
	existing, err := store.GetProviderByNPI(ctx, sub.ProviderNPI)
	if errors.Is(err, records.ErrProviderNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("provider duplicate check failed: %w", err)
	}

	if strings.EqualFold(existing.Name, sub.ProviderName) {
		return nil, nil
	}

	return &Warning{
		Kind: WarningProviderNameMismatch,
		Message: fmt.Sprintf(
			"NPI %s belongs to \"%s\". You entered \"%s\". If you proceed, this order will use %s, NOT %s. Using inconsistent names can cause reporting issues.",
			sub.ProviderNPI, existing.Name, sub.ProviderName, existing.Name, sub.ProviderName,
		),
	}, nil
}

// checkOrder warns when an order for the same MRN and medication was
// already created today, from midnight in now's location forward.
func checkOrder(ctx context.Context, store DetectorStore, sub Submission, now time.Time) (*Warning, error) {
	year, month, day := now.Date()
	todayStart := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	prior, err := store.FindOrderByMRNAndMedicationSince(ctx, sub.MRN, sub.MedicationName, todayStart)
	if errors.Is(err, records.ErrOrderNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("order duplicate check failed: %w", err)
	}

	return &Warning{
		Kind: WarningOrderDuplicate,
		Message: fmt.Sprintf(
			"A similar order for this patient and medication was created today at %s. This might be a duplicate or an edit.",
			prior.CreatedAt.In(now.Location()).Format("03:04 PM MST"),
		),
	}, nil
}
