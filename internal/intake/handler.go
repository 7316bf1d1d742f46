package intake

import (
	"log"
	"net/http"
	"strings"

	"github.com/lamar-health/care-plan-service/internal/web"
)

type Handler struct {
	service  ServiceInterface
	renderer *web.Renderer
}

func NewHandler(service ServiceInterface, renderer *web.Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// formPage is the view model for the intake form template
type formPage struct {
	Values   Submission
	Errors   FieldErrors
	Warnings []Warning
}

// ShowForm renders the empty intake form
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "create_order.html", formPage{})
}

// SubmitForm handles the intake POST. Format errors and unacknowledged
// warnings re-render the form with HTTP 200; a commit redirects to the
// order's success page.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	sub := parseSubmission(r)

	result, err := h.service.Submit(r.Context(), sub)
	if err != nil {
		log.Printf("Error processing intake submission: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if result.Committed() {
		http.Redirect(w, r, "/success/"+result.Order.ID, http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, http.StatusOK, "create_order.html", formPage{
		Values:   sub,
		Errors:   result.FieldErrors,
		Warnings: result.Warnings,
	})
}

// parseSubmission reads the form fields, trimming surrounding whitespace
// from every text field.
func parseSubmission(r *http.Request) Submission {
	field := func(name string) string {
		return strings.TrimSpace(r.FormValue(name))
	}

	return Submission{
		PatientFirstName:    field("patient_first_name"),
		PatientLastName:     field("patient_last_name"),
		MRN:                 field("mrn"),
		ProviderName:        field("provider_name"),
		ProviderNPI:         field("provider_npi"),
		PrimaryDiagnosis:    field("primary_diagnosis"),
		MedicationName:      field("medication_name"),
		AdditionalDiagnoses: field("additional_diagnoses"),
		MedicationHistory:   field("medication_history"),
		PatientRecords:      field("patient_records"),
		AcknowledgeWarnings: r.FormValue("acknowledge_warnings") != "",
	}
}
