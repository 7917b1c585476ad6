package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ats/internal/database"
	dbpostgres "ats/internal/database/postgres"
	"ats/internal/domain/application"

	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrApplicationDuplicate = errors.New("application already exists for job role")
	ErrApplicationJobRole   = errors.New("referenced job role does not exist")
)

// ApplicationDetail is an application joined with the display fields every
// listing shows next to it.
type ApplicationDetail struct {
	application.Application
	ApplicantName   string
	ApplicantEmail  string
	JobRoleTitle    string
	JobRoleLocation string
	JobRoleDept     string
}

type ApplicationFilter struct {
	ApplicantID     *uuid.UUID
	IsTechnical     *bool
	ExcludeStatuses []application.Status
	Limit           int
}

// MutateFunc receives the locked current row and returns its replacement.
type MutateFunc func(current application.Application) (application.Application, error)

type ApplicationRepository interface {
	Create(ctx context.Context, app application.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (ApplicationDetail, error)
	ExistsForApplicantAndJobRole(ctx context.Context, applicantID, jobRoleID uuid.UUID) (bool, error)
	List(ctx context.Context, filter ApplicationFilter) ([]ApplicationDetail, error)
	Mutate(ctx context.Context, id uuid.UUID, fn MutateFunc) (application.Application, error)
	CountMissingExperience(ctx context.Context) (int, error)
	FillMissingExperience(ctx context.Context, value int) (int64, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `ap.id, ap.applicant_id, ap.job_role_id, ap.is_technical, ap.experience, ap.skills,
	ap.additional_notes, ap.status, ap.comments, ap.logs, ap.created_at, ap.updated_at`

const detailSelect = `SELECT ` + applicationColumns + `,
	COALESCE(a.name, ''), COALESCE(a.email, ''),
	COALESCE(jr.title, ''), COALESCE(jr.location, ''), COALESCE(jr.department, '')
 FROM applications ap
 LEFT JOIN applicants a ON a.id = ap.applicant_id
 LEFT JOIN job_roles jr ON jr.id = ap.job_role_id`

func (r *PostgresApplicationRepository) Create(ctx context.Context, app application.Application) error {
	comments, logs, err := encodeHistory(app)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO applications (id, applicant_id, job_role_id, is_technical, experience, skills,
			additional_notes, status, comments, logs, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10::jsonb, $11, $12)`,
		app.ID, app.ApplicantID, app.JobRoleID, app.IsTechnical, app.Experience, app.Skills,
		app.AdditionalNotes, string(app.Status), comments, logs, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		switch {
		case dbpostgres.IsUniqueViolation(err):
			return ErrApplicationDuplicate
		case dbpostgres.IsForeignKeyViolation(err):
			return ErrApplicationJobRole
		default:
			return err
		}
	}
	return nil
}

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (ApplicationDetail, error) {
	row := r.db.QueryRow(ctx, detailSelect+` WHERE ap.id = $1`, id)
	d, err := scanApplicationDetail(row)
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return ApplicationDetail{}, ErrApplicationNotFound
		}
		return ApplicationDetail{}, err
	}
	return d, nil
}

func (r *PostgresApplicationRepository) ExistsForApplicantAndJobRole(ctx context.Context, applicantID, jobRoleID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE applicant_id = $1 AND job_role_id = $2)`,
		applicantID, jobRoleID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) List(ctx context.Context, filter ApplicationFilter) ([]ApplicationDetail, error) {
	var (
		where []string
		args  []any
	)
	if filter.ApplicantID != nil {
		args = append(args, *filter.ApplicantID)
		where = append(where, fmt.Sprintf("ap.applicant_id = $%d", len(args)))
	}
	if filter.IsTechnical != nil {
		args = append(args, *filter.IsTechnical)
		where = append(where, fmt.Sprintf("ap.is_technical = $%d", len(args)))
	}
	if len(filter.ExcludeStatuses) > 0 {
		statuses := make([]string, 0, len(filter.ExcludeStatuses))
		for _, s := range filter.ExcludeStatuses {
			statuses = append(statuses, string(s))
		}
		args = append(args, statuses)
		where = append(where, fmt.Sprintf("NOT (ap.status = ANY($%d))", len(args)))
	}

	q := detailSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY ap.created_at DESC, ap.id ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ApplicationDetail, 0)
	for rows.Next() {
		d, err := scanApplicationDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Mutate is the single write path for status changes. It locks the row,
// hands the current value to fn and persists fn's result in the same
// transaction, so two concurrent mutations of one application are applied one
// after the other and neither log append is lost.
func (r *PostgresApplicationRepository) Mutate(ctx context.Context, id uuid.UUID, fn MutateFunc) (application.Application, error) {
	var updated application.Application

	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications ap WHERE ap.id = $1 FOR UPDATE`, id)
		current, err := scanApplication(row)
		if err != nil {
			if dbpostgres.IsNoRows(err) {
				return ErrApplicationNotFound
			}
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next.ID != current.ID || next.JobRoleID != current.JobRoleID || next.ApplicantID != current.ApplicantID {
			return fmt.Errorf("application %s: identity fields are immutable", id)
		}
		if !application.ExtendsHistory(current, next) {
			return fmt.Errorf("application %s: history is append-only", id)
		}
		if err := next.CheckHistory(); err != nil {
			return err
		}

		comments, logs, err := encodeHistory(next)
		if err != nil {
			return err
		}
		affected, err := tx.Exec(ctx,
			`UPDATE applications
			 SET status = $1, comments = $2::jsonb, logs = $3::jsonb, experience = $4, updated_at = $5
			 WHERE id = $6`,
			string(next.Status), comments, logs, next.Experience, next.UpdatedAt, id,
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrApplicationNotFound
		}
		updated = next
		return nil
	})
	if err != nil {
		return application.Application{}, err
	}
	return updated, nil
}

func (r *PostgresApplicationRepository) CountMissingExperience(ctx context.Context) (int, error) {
	var c int
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM applications WHERE experience IS NULL`)
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresApplicationRepository) FillMissingExperience(ctx context.Context, value int) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE applications SET experience = $1, updated_at = now() WHERE experience IS NULL`,
		value,
	)
}

func encodeHistory(app application.Application) ([]byte, []byte, error) {
	comments := app.Comments
	if comments == nil {
		comments = []application.Comment{}
	}
	logs := app.Logs
	if logs == nil {
		logs = []application.LogEntry{}
	}

	cb, err := json.Marshal(comments)
	if err != nil {
		return nil, nil, fmt.Errorf("encode comments: %w", err)
	}
	lb, err := json.Marshal(logs)
	if err != nil {
		return nil, nil, fmt.Errorf("encode logs: %w", err)
	}
	return cb, lb, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func applicationDest(app *application.Application, status *string, comments, logs *[]byte) []any {
	return []any{
		&app.ID, &app.ApplicantID, &app.JobRoleID, &app.IsTechnical, &app.Experience, &app.Skills,
		&app.AdditionalNotes, status, comments, logs, &app.CreatedAt, &app.UpdatedAt,
	}
}

func decodeApplication(app *application.Application, status string, comments, logs []byte) error {
	app.Status = application.Status(status)
	app.Comments = []application.Comment{}
	app.Logs = []application.LogEntry{}
	if len(comments) > 0 {
		if err := json.Unmarshal(comments, &app.Comments); err != nil {
			return fmt.Errorf("decode comments for %s: %w", app.ID, err)
		}
	}
	if len(logs) > 0 {
		if err := json.Unmarshal(logs, &app.Logs); err != nil {
			return fmt.Errorf("decode logs for %s: %w", app.ID, err)
		}
	}
	if app.Skills == nil {
		app.Skills = []string{}
	}
	return nil
}

func scanApplication(row scanner) (application.Application, error) {
	var (
		app      application.Application
		status   string
		comments []byte
		logs     []byte
	)
	if err := row.Scan(applicationDest(&app, &status, &comments, &logs)...); err != nil {
		return application.Application{}, err
	}
	if err := decodeApplication(&app, status, comments, logs); err != nil {
		return application.Application{}, err
	}
	return app, nil
}

func scanApplicationDetail(row scanner) (ApplicationDetail, error) {
	var (
		d        ApplicationDetail
		status   string
		comments []byte
		logs     []byte
	)
	dest := applicationDest(&d.Application, &status, &comments, &logs)
	dest = append(dest, &d.ApplicantName, &d.ApplicantEmail, &d.JobRoleTitle, &d.JobRoleLocation, &d.JobRoleDept)
	if err := row.Scan(dest...); err != nil {
		return ApplicationDetail{}, err
	}
	if err := decodeApplication(&d.Application, status, comments, logs); err != nil {
		return ApplicationDetail{}, err
	}
	return d, nil
}
