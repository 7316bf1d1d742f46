package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// isUniqueViolation reports whether err is a Postgres unique constraint error
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *Repository) GetPatientByMRN(ctx context.Context, mrn string) (*Patient, error) {
	query := `
		SELECT id, first_name, last_name, mrn, created_at
		FROM patients
		WHERE mrn = $1
	`

	var p Patient
	err := r.db.QueryRowContext(ctx, query, mrn).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.MRN, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}

	return &p, nil
}

// GetOrCreatePatient inserts a patient for the given MRN, or returns the
// existing one. The submitted names are used only when the row is newly
// created; an existing patient's stored name is never overwritten. A
// concurrent insert for the same MRN is resolved by re-fetching the row
// that won the uniqueness race.
func (r *Repository) GetOrCreatePatient(ctx context.Context, mrn, firstName, lastName string) (*Patient, error) {
	if existing, err := r.GetPatientByMRN(ctx, mrn); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrPatientNotFound) {
		return nil, err
	}

	query := `
		INSERT INTO patients (id, first_name, last_name, mrn, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, first_name, last_name, mrn, created_at
	`

	var p Patient
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(), firstName, lastName, mrn, time.Now(),
	).Scan(&p.ID, &p.FirstName, &p.LastName, &p.MRN, &p.CreatedAt)

	if isUniqueViolation(err) {
		// Another request created this MRN first; use its row.
		return r.GetPatientByMRN(ctx, mrn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}

	return &p, nil
}

func (r *Repository) GetProviderByNPI(ctx context.Context, npi string) (*Provider, error) {
	query := `
		SELECT id, name, npi, created_at
		FROM providers
		WHERE npi = $1
	`

	var p Provider
	err := r.db.QueryRowContext(ctx, query, npi).Scan(
		&p.ID, &p.Name, &p.NPI, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query provider: %w", err)
	}

	return &p, nil
}

// GetOrCreateProvider follows the same create-or-refetch rule as
// GetOrCreatePatient, keyed on the NPI.
func (r *Repository) GetOrCreateProvider(ctx context.Context, npi, name string) (*Provider, error) {
	if existing, err := r.GetProviderByNPI(ctx, npi); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrProviderNotFound) {
		return nil, err
	}

	query := `
		INSERT INTO providers (id, name, npi, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, npi, created_at
	`

	var p Provider
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(), name, npi, time.Now(),
	).Scan(&p.ID, &p.Name, &p.NPI, &p.CreatedAt)

	if isUniqueViolation(err) {
		return r.GetProviderByNPI(ctx, npi)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert provider: %w", err)
	}

	return &p, nil
}

const orderColumns = `
	o.id, o.primary_diagnosis, o.medication_name, o.additional_diagnoses,
	o.medication_history, o.patient_records, o.created_at, o.updated_at,
	p.id, p.first_name, p.last_name, p.mrn, p.created_at,
	pr.id, pr.name, pr.npi, pr.created_at
`

func scanOrder(row interface{ Scan(...interface{}) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.PrimaryDiagnosis, &o.MedicationName, &o.AdditionalDiagnoses,
		&o.MedicationHistory, &o.PatientRecords, &o.CreatedAt, &o.UpdatedAt,
		&o.Patient.ID, &o.Patient.FirstName, &o.Patient.LastName, &o.Patient.MRN, &o.Patient.CreatedAt,
		&o.Provider.ID, &o.Provider.Name, &o.Provider.NPI, &o.Provider.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) CreateOrder(ctx context.Context, req NewOrder) (*Order, error) {
	now := time.Now()

	query := `
		INSERT INTO orders
		(id, patient_id, provider_id, primary_diagnosis, medication_name,
		 additional_diagnoses, medication_history, patient_records, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	var orderID string
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		req.PatientID,
		req.ProviderID,
		req.PrimaryDiagnosis,
		req.MedicationName,
		req.AdditionalDiagnoses,
		req.MedicationHistory,
		req.PatientRecords,
		now,
	).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return r.GetOrder(ctx, orderID)
}

func (r *Repository) GetOrder(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN patients p ON p.id = o.patient_id
		JOIN providers pr ON pr.id = o.provider_id
		WHERE o.id = $1
	`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// ListOrders returns a page of orders, newest first, plus the total count.
func (r *Repository) ListOrders(ctx context.Context, limit, offset int) ([]Order, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN patients p ON p.id = o.patient_id
		JOIN providers pr ON pr.id = o.provider_id
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2
	`, orderColumns)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, total, nil
}

// FindOrderByMRNAndMedicationSince finds the earliest order for the given
// patient MRN and case-insensitively equal medication name created at or
// after the given time. Used by the same-day duplicate order check.
func (r *Repository) FindOrderByMRNAndMedicationSince(ctx context.Context, mrn, medication string, since time.Time) (*Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN patients p ON p.id = o.patient_id
		JOIN providers pr ON pr.id = o.provider_id
		WHERE p.mrn = $1
		  AND LOWER(o.medication_name) = LOWER($2)
		  AND o.created_at >= $3
		ORDER BY o.created_at ASC
		LIMIT 1
	`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, mrn, medication, since))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query duplicate order: %w", err)
	}

	return order, nil
}

// CreateCarePlan inserts the single care plan for an order. If a plan
// already exists (including a concurrent generation that won the unique
// constraint race) it returns ErrCarePlanExists and writes nothing.
func (r *Repository) CreateCarePlan(ctx context.Context, orderID, text string) (*CarePlan, error) {
	now := time.Now()

	query := `
		INSERT INTO care_plans (id, order_id, care_plan_text, generated_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, order_id, care_plan_text, generated_at, updated_at
	`

	var cp CarePlan
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(), orderID, text, now,
	).Scan(&cp.ID, &cp.OrderID, &cp.Text, &cp.GeneratedAt, &cp.UpdatedAt)

	if isUniqueViolation(err) {
		return nil, ErrCarePlanExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert care plan: %w", err)
	}

	return &cp, nil
}

// GetCarePlanByOrder returns the order's care plan, or ErrCarePlanNotFound
// when none exists yet. The caller decides what absence means (generate,
// report missing, export an empty column).
func (r *Repository) GetCarePlanByOrder(ctx context.Context, orderID string) (*CarePlan, error) {
	query := `
		SELECT id, order_id, care_plan_text, generated_at, updated_at
		FROM care_plans
		WHERE order_id = $1
	`

	var cp CarePlan
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&cp.ID, &cp.OrderID, &cp.Text, &cp.GeneratedAt, &cp.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCarePlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query care plan: %w", err)
	}

	return &cp, nil
}

// UpdateCarePlanText overwrites the care plan body and bumps updated_at.
// generated_at never changes after the first write.
func (r *Repository) UpdateCarePlanText(ctx context.Context, orderID, text string) (*CarePlan, error) {
	query := `
		UPDATE care_plans
		SET care_plan_text = $1, updated_at = $2
		WHERE order_id = $3
		RETURNING id, order_id, care_plan_text, generated_at, updated_at
	`

	var cp CarePlan
	err := r.db.QueryRowContext(ctx, query, text, time.Now(), orderID).Scan(
		&cp.ID, &cp.OrderID, &cp.Text, &cp.GeneratedAt, &cp.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCarePlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update care plan: %w", err)
	}

	return &cp, nil
}

// ExportRows returns one row per order, newest first, with the care plan
// text replaced by an empty string when no plan exists.
func (r *Repository) ExportRows(ctx context.Context) ([]ExportRow, error) {
	query := `
		SELECT o.id, o.created_at, p.mrn, p.first_name, p.last_name,
		       pr.name, pr.npi, o.primary_diagnosis, o.medication_name,
		       o.additional_diagnoses, o.medication_history,
		       COALESCE(cp.care_plan_text, '')
		FROM orders o
		JOIN patients p ON p.id = o.patient_id
		JOIN providers pr ON pr.id = o.provider_id
		LEFT JOIN care_plans cp ON cp.order_id = o.id
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query export rows: %w", err)
	}
	defer rows.Close()

	var result []ExportRow
	for rows.Next() {
		var row ExportRow
		err := rows.Scan(
			&row.OrderID, &row.OrderDate, &row.PatientMRN, &row.PatientFirstName,
			&row.PatientLastName, &row.ProviderName, &row.ProviderNPI,
			&row.PrimaryDiagnosis, &row.MedicationName, &row.AdditionalDiagnoses,
			&row.MedicationHistory, &row.CarePlanText,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating export rows: %w", err)
	}

	return result, nil
}
