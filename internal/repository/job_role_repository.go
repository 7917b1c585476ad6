package repository

import (
	"context"
	"errors"

	"ats/internal/database"
	dbpostgres "ats/internal/database/postgres"
	"ats/internal/domain/jobrole"

	"github.com/google/uuid"
)

var ErrJobRoleInUse = errors.New("job role is referenced by applications")

type JobRoleRepository interface {
	List(ctx context.Context) ([]jobrole.JobRole, error)
	FindByID(ctx context.Context, id uuid.UUID) (jobrole.JobRole, error)
	Create(ctx context.Context, j jobrole.JobRole) error
	Update(ctx context.Context, j jobrole.JobRole) (jobrole.JobRole, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresJobRoleRepository struct {
	db database.DB
}

func NewPostgresJobRoleRepository(db database.DB) *PostgresJobRoleRepository {
	return &PostgresJobRoleRepository{db: db}
}

const jobRoleColumns = `id, title, description, location, experience_required, is_technical, department, created_at, updated_at`

func scanJobRole(row scanner) (jobrole.JobRole, error) {
	var j jobrole.JobRole
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Location, &j.ExperienceRequired,
		&j.IsTechnical, &j.Department, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

func (r *PostgresJobRoleRepository) List(ctx context.Context) ([]jobrole.JobRole, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobRoleColumns+` FROM job_roles ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]jobrole.JobRole, 0)
	for rows.Next() {
		j, err := scanJobRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (jobrole.JobRole, error) {
	j, err := scanJobRole(r.db.QueryRow(ctx, `SELECT `+jobRoleColumns+` FROM job_roles WHERE id = $1`, id))
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return jobrole.JobRole{}, jobrole.ErrNotFound
		}
		return jobrole.JobRole{}, err
	}
	return j, nil
}

func (r *PostgresJobRoleRepository) Create(ctx context.Context, j jobrole.JobRole) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_roles (id, title, description, location, experience_required, is_technical, department, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		j.ID, j.Title, j.Description, j.Location, j.ExperienceRequired, j.IsTechnical, j.Department, j.CreatedAt, j.UpdatedAt,
	)
	return err
}

func (r *PostgresJobRoleRepository) Update(ctx context.Context, j jobrole.JobRole) (jobrole.JobRole, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE job_roles
		 SET title = $2, description = $3, location = $4, experience_required = $5,
		     is_technical = $6, department = $7, updated_at = $8
		 WHERE id = $1
		 RETURNING `+jobRoleColumns,
		j.ID, j.Title, j.Description, j.Location, j.ExperienceRequired, j.IsTechnical, j.Department, j.UpdatedAt,
	)
	out, err := scanJobRole(row)
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return jobrole.JobRole{}, jobrole.ErrNotFound
		}
		return jobrole.JobRole{}, err
	}
	return out, nil
}

func (r *PostgresJobRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM job_roles WHERE id = $1`, id)
	if err != nil {
		if dbpostgres.IsForeignKeyViolation(err) {
			return ErrJobRoleInUse
		}
		return err
	}
	if affected == 0 {
		return jobrole.ErrNotFound
	}
	return nil
}
