package careplan

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lamar-health/care-plan-service/internal/records"
	"github.com/lamar-health/care-plan-service/internal/web"
)

// generationUnavailableMessage is shown when generation fails; the order
// itself is saved and a later visit retries.
const generationUnavailableMessage = "Unable to generate the care plan right now. Your order has been saved - please revisit this page to try again later."

type Handler struct {
	service  ServiceInterface
	renderer *web.Renderer
	loc      *time.Location
}

func NewHandler(service ServiceInterface, renderer *web.Renderer, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{service: service, renderer: renderer, loc: loc}
}

// successPage is the view model for the order success template
type successPage struct {
	Order            *records.Order
	CarePlan         *records.CarePlan
	CreatedAtDisplay string
	ErrorMessage     string
}

// SuccessPage shows an order after intake and triggers care plan
// generation on first view. A generation failure degrades to an advisory
// message; the page still renders the order.
func (h *Handler) SuccessPage(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]

	order, err := h.service.GetOrder(r.Context(), orderID)
	if errors.Is(err, records.ErrOrderNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error fetching order %s: %v", orderID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	page := successPage{
		Order:            order,
		CreatedAtDisplay: order.CreatedAt.In(h.loc).Format("Jan 2, 2006 03:04 PM MST"),
	}

	plan, err := h.service.EnsureCarePlan(r.Context(), order)
	if err != nil {
		log.Printf("Error generating care plan for order %s: %v", orderID, err)
		page.ErrorMessage = generationUnavailableMessage
	} else {
		page.CarePlan = plan
	}

	h.renderer.Render(w, http.StatusOK, "order_success.html", page)
}

// UpdateCarePlan overwrites the plan text and redirects back to the
// success page. 404 when the order or its plan does not exist.
func (h *Handler) UpdateCarePlan(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	if _, err := h.service.GetOrder(r.Context(), orderID); err != nil {
		if errors.Is(err, records.ErrOrderNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("Error fetching order %s: %v", orderID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	_, err := h.service.UpdateText(r.Context(), orderID, r.FormValue("care_plan_text"))
	if errors.Is(err, records.ErrCarePlanNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error updating care plan for order %s: %v", orderID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/success/"+orderID, http.StatusSeeOther)
}

// DownloadCarePlan serves the plan body as a plain-text attachment named
// from the patient MRN and the plan's generation timestamp.
func (h *Handler) DownloadCarePlan(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]

	order, err := h.service.GetOrder(r.Context(), orderID)
	if errors.Is(err, records.ErrOrderNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error fetching order %s: %v", orderID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	plan, err := h.service.GetCarePlan(r.Context(), orderID)
	if errors.Is(err, records.ErrCarePlanNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error fetching care plan for order %s: %v", orderID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("care_plan_MRN%s_%s.txt",
		order.Patient.MRN,
		plan.GeneratedAt.In(h.loc).Format("20060102_150405"),
	)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte(plan.Text))
}
