package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/lamar-health/care-plan-service/internal/auth"
	"github.com/lamar-health/care-plan-service/internal/careplan"
	"github.com/lamar-health/care-plan-service/internal/config"
	"github.com/lamar-health/care-plan-service/internal/export"
	"github.com/lamar-health/care-plan-service/internal/intake"
	"github.com/lamar-health/care-plan-service/internal/messaging"
	"github.com/lamar-health/care-plan-service/internal/records"
	"github.com/lamar-health/care-plan-service/internal/telemetry"
	"github.com/lamar-health/care-plan-service/internal/web"
)

// SetupRouter initializes all routes for the application
func SetupRouter(
	db *sql.DB,
	cfg config.Config,
	generator careplan.Generator,
	publisher messaging.PublisherInterface,
	metrics *telemetry.Metrics,
	renderer *web.Renderer,
) *mux.Router {
	loc := cfg.Location()

	repo := records.NewRepository(db)

	intakeService := intake.NewService(repo, publisher, metrics, loc)
	intakeHandler := intake.NewHandler(intakeService, renderer)

	carePlanService := careplan.NewService(repo, generator, publisher, metrics)
	carePlanHandler := careplan.NewHandler(carePlanService, renderer, loc)

	exportService := export.NewService(repo)
	exportHandler := export.NewHandler(exportService, renderer, loc)

	gate := auth.BasicAuth(cfg.BasicAuth)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("care-plan-service"))
	r.Use(metricsMiddleware(metrics))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"care-plan-service"}`))
	}).Methods("GET")

	// Intake
	r.Handle("/", gate(http.HandlerFunc(intakeHandler.ShowForm))).Methods("GET")
	r.Handle("/", gate(http.HandlerFunc(intakeHandler.SubmitForm))).Methods("POST")

	// Care plan
	r.Handle("/success/{order_id}", gate(http.HandlerFunc(carePlanHandler.SuccessPage))).Methods("GET")
	r.Handle("/update/{order_id}", gate(http.HandlerFunc(carePlanHandler.UpdateCarePlan))).Methods("POST")
	r.Handle("/download/{order_id}", gate(http.HandlerFunc(carePlanHandler.DownloadCarePlan))).Methods("GET")

	// Listing and export
	r.Handle("/orders", gate(http.HandlerFunc(exportHandler.ListOrders))).Methods("GET")
	r.Handle("/export.csv", gate(http.HandlerFunc(exportHandler.ExportCSV))).Methods("GET")

	return r
}

// statusRecorder captures the response status for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// metricsMiddleware records request count and duration per route
func metricsMiddleware(metrics *telemetry.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			metrics.RecordHTTPRequest(r.Context(), r.Method, route, rec.status, float64(time.Since(start).Milliseconds()))
		})
	}
}
