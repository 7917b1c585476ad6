package repository

import (
	"context"

	"ats/internal/database"
	"ats/internal/domain/application"
)

type ApplicationTotals struct {
	Total        int
	Technical    int
	NonTechnical int
}

type StatusCount struct {
	Status application.Status
	Count  int
}

type DashboardRepository interface {
	GetTotals(ctx context.Context) (ApplicationTotals, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type PostgresDashboardRepository struct {
	db database.DB
}

func NewPostgresDashboardRepository(db database.DB) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{db: db}
}

func (r *PostgresDashboardRepository) GetTotals(ctx context.Context) (ApplicationTotals, error) {
	var out ApplicationTotals
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(1),
		        COUNT(1) FILTER (WHERE is_technical),
		        COUNT(1) FILTER (WHERE NOT is_technical)
		 FROM applications`,
	)
	if err := row.Scan(&out.Total, &out.Technical, &out.NonTechnical); err != nil {
		return ApplicationTotals{}, err
	}
	return out, nil
}

// CountByStatus returns one entry per status present, in pipeline order.
func (r *PostgresDashboardRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(1)
		 FROM applications
		 GROUP BY status
		 ORDER BY array_position(ARRAY['Applied','Reviewed','Interview','Offer','Rejected'], status)`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StatusCount, 0, 5)
	for rows.Next() {
		var (
			status string
			c      StatusCount
		)
		if err := rows.Scan(&status, &c.Count); err != nil {
			return nil, err
		}
		c.Status = application.Status(status)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
