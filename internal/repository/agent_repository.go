package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/callback-service/internal/domain"
)

// AgentRepository defines persistence access for the agent roster.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByName(ctx context.Context, name string) (*domain.Agent, error)
	List(ctx context.Context) ([]domain.Agent, error)
	Count(ctx context.Context) (int, error)
}

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository returns a Postgres-backed implementation.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	const query = `
        INSERT INTO agents (name, code_hash)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		agent.Name,
		agent.CodeHash,
	).Scan(&agent.ID, &agent.CreatedAt)
}

func (r *agentRepository) GetByName(ctx context.Context, name string) (*domain.Agent, error) {
	const query = `
        SELECT id, name, code_hash, created_at
        FROM agents WHERE name=$1`

	var agent domain.Agent
	if err := r.pool.QueryRow(ctx, query, name).Scan(
		&agent.ID,
		&agent.Name,
		&agent.CodeHash,
		&agent.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	const query = `
        SELECT id, name, code_hash, created_at
        FROM agents ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Agent
	for rows.Next() {
		var agent domain.Agent
		if err := rows.Scan(
			&agent.ID,
			&agent.Name,
			&agent.CodeHash,
			&agent.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, agent)
	}
	return result, rows.Err()
}

func (r *agentRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM agents`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
