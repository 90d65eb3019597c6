package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gagankishoreint-glitch/credai/internal/domain/model"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
	pgpkg "github.com/gagankishoreint-glitch/credai/pkg/postgres"
)

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	pgpkg.Querier
	pgpkg.Pinger
}

// ApplicationRepo implements port.ApplicationRepository.
type ApplicationRepo struct {
	db DB
}

// NewApplicationRepo creates a new repository backed by PostgreSQL.
func NewApplicationRepo(db DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const selectColumns = `
	id, user_id, business_name, requested_amount, data,
	ai_score, insights, status, decision,
	model_score, probability, confidence, risk_grade, recommendation,
	decided_by, decided_at, version, created_at, updated_at`

// Save persists a credit application (upsert by ID with optimistic locking).
func (r *ApplicationRepo) Save(ctx context.Context, app model.CreditApplication) error {
	data, err := json.Marshal(app.Data())
	if err != nil {
		return fmt.Errorf("encode application data: %w", err)
	}
	insights, err := json.Marshal(app.Insights())
	if err != nil {
		return fmt.Errorf("encode insights: %w", err)
	}

	var decidedBy *uuid.UUID
	if id := app.DecidedBy(); id != uuid.Nil {
		decidedBy = &id
	}
	var decidedAt *time.Time
	if at := app.DecidedAt(); !at.IsZero() {
		decidedAt = &at
	}

	query := `
		INSERT INTO credit_applications (` + selectColumns + `
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (id) DO UPDATE SET
			ai_score       = EXCLUDED.ai_score,
			insights       = EXCLUDED.insights,
			status         = EXCLUDED.status,
			decision       = EXCLUDED.decision,
			model_score    = EXCLUDED.model_score,
			probability    = EXCLUDED.probability,
			confidence     = EXCLUDED.confidence,
			risk_grade     = EXCLUDED.risk_grade,
			recommendation = EXCLUDED.recommendation,
			decided_by     = EXCLUDED.decided_by,
			decided_at     = EXCLUDED.decided_at,
			version        = credit_applications.version + 1,
			updated_at     = EXCLUDED.updated_at
		WHERE credit_applications.version = $17
	`
	tag, err := r.db.Exec(ctx, query,
		app.ID(), app.UserID(), app.BusinessName(), app.RequestedAmount(), data,
		app.AIScore(), insights, app.Status().String(), app.Decision().String(),
		app.ModelScore(), app.Probability(), app.Confidence(),
		app.RiskGrade().String(), app.Recommendation().String(),
		decidedBy, decidedAt, app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save credit application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: application %s", valueobject.ErrVersionConflict, app.ID())
	}
	return nil
}

// FindByID retrieves a single credit application.
func (r *ApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (model.CreditApplication, error) {
	query := `SELECT ` + selectColumns + ` FROM credit_applications WHERE id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CreditApplication{}, fmt.Errorf("%w: %s", valueobject.ErrApplicationNotFound, id)
	}
	return app, err
}

// List returns matching applications newest first with the unpaginated total.
func (r *ApplicationRepo) List(ctx context.Context, filter port.ApplicationFilter) ([]model.CreditApplication, int, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM credit_applications` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count credit applications: %w", err)
	}

	n := len(args)
	listQuery := fmt.Sprintf(`SELECT %s FROM credit_applications%s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		selectColumns, where, n+1, n+2)
	apps, err := r.scanMany(ctx, listQuery, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// Ping checks database connectivity.
func (r *ApplicationRepo) Ping(ctx context.Context) error {
	return pgpkg.HealthCheck(ctx, r.db)
}

func buildWhere(filter port.ApplicationFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.UserID != uuid.Nil {
		args = append(args, filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if !filter.Status.IsZero() {
		args = append(args, filter.Status.String())
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func (r *ApplicationRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.CreditApplication, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query credit applications: %w", err)
	}
	defer rows.Close()

	result := []model.CreditApplication{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func scanApplication(s scannable) (model.CreditApplication, error) {
	var (
		snap                                 model.Snapshot
		data, insights                       []byte
		status, decision, grade, recommended string
		decidedBy                            *uuid.UUID
		decidedAt                            *time.Time
	)

	err := s.Scan(
		&snap.ID, &snap.UserID, &snap.BusinessName, &snap.RequestedAmount, &data,
		&snap.AIScore, &insights, &status, &decision,
		&snap.ModelScore, &snap.Probability, &snap.Confidence, &grade, &recommended,
		&decidedBy, &decidedAt, &snap.Version, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CreditApplication{}, err
		}
		return model.CreditApplication{}, fmt.Errorf("scan credit application: %w", err)
	}
	if err := json.Unmarshal(data, &snap.Data); err != nil {
		return model.CreditApplication{}, fmt.Errorf("decode application data: %w", err)
	}
	if err := json.Unmarshal(insights, &snap.Insights); err != nil {
		return model.CreditApplication{}, fmt.Errorf("decode insights: %w", err)
	}
	if snap.Status, err = valueobject.NewApplicationStatus(status); err != nil {
		return model.CreditApplication{}, fmt.Errorf("parse status: %w", err)
	}
	if snap.Decision, err = valueobject.NewDecision(decision); err != nil {
		return model.CreditApplication{}, fmt.Errorf("parse decision: %w", err)
	}
	if grade != "" {
		if snap.RiskGrade, err = valueobject.NewRiskGrade(grade); err != nil {
			return model.CreditApplication{}, fmt.Errorf("parse risk grade: %w", err)
		}
	}
	if recommended != "" {
		if snap.Recommendation, err = valueobject.NewRecommendation(recommended); err != nil {
			return model.CreditApplication{}, fmt.Errorf("parse recommendation: %w", err)
		}
	}
	if decidedBy != nil {
		snap.DecidedBy = *decidedBy
	}
	if decidedAt != nil {
		snap.DecidedAt = *decidedAt
	}

	return model.Reconstruct(snap), nil
}
