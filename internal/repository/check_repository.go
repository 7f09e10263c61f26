package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/callback-service/internal/domain"
)

// CheckFilter captures check listing parameters.
type CheckFilter struct {
	AgentName *string
	Plan      *domain.CheckPlan
}

// CheckRepository encapsulates plan check persistence.
type CheckRepository interface {
	Create(ctx context.Context, check *domain.Check) error
	ListWithFilter(ctx context.Context, filter CheckFilter) ([]domain.Check, error)
}

type checkRepository struct {
	pool *pgxpool.Pool
}

// NewCheckRepository instantiates the repository.
func NewCheckRepository(pool *pgxpool.Pool) CheckRepository {
	return &checkRepository{pool: pool}
}

func (r *checkRepository) Create(ctx context.Context, check *domain.Check) error {
	const query = `
        INSERT INTO checks (agent_name, plan, check_date)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		check.AgentName,
		check.Plan,
		check.Date,
	).Scan(&check.ID, &check.CreatedAt)
}

func (r *checkRepository) ListWithFilter(ctx context.Context, filter CheckFilter) ([]domain.Check, error) {
	base := `SELECT id, agent_name, plan, check_date, created_at FROM checks`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AgentName != nil {
		args = append(args, *filter.AgentName)
		clauses = append(clauses, fmt.Sprintf("agent_name=$%d", len(args)))
	}
	if filter.Plan != nil {
		args = append(args, *filter.Plan)
		clauses = append(clauses, fmt.Sprintf("plan=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY created_at ASC, id ASC", base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Check
	for rows.Next() {
		var check domain.Check
		if err := rows.Scan(
			&check.ID,
			&check.AgentName,
			&check.Plan,
			&check.Date,
			&check.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, check)
	}
	return result, rows.Err()
}
