package export

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/lamar-health/care-plan-service/internal/pagination"
	"github.com/lamar-health/care-plan-service/internal/records"
	"github.com/lamar-health/care-plan-service/internal/web"
)

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

type orderRow struct {
	Order            records.Order
	CreatedAtDisplay string
}

type listPage struct {
	Orders []orderRow
	Meta   pagination.Meta
}

// ListOrders renders the paginated orders listing, newest first
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)

	orders, meta, err := h.service.ListOrders(r.Context(), params)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	page := listPage{Meta: meta}
	for _, order := range orders {
		page.Orders = append(page.Orders, orderRow{
			Order:            order,
			CreatedAtDisplay: order.CreatedAt.In(h.loc).Format("Jan 2, 2006 03:04 PM"),
		})
	}

	h.renderer.Render(w, http.StatusOK, "orders_list.html", page)
}

// ExportCSV serves the bulk export as a CSV attachment. The export is
// buffered so a mid-query failure produces a clean 500 instead of a
// truncated download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.WriteCSV(r.Context(), &buf); err != nil {
		log.Printf("Error exporting orders CSV: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("orders_export_%s.csv", time.Now().In(h.loc).Format("20060102_150405"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(buf.Bytes())
}
