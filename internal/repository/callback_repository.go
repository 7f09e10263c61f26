package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/callback-service/internal/domain"
)

// CallbackFilter captures listing parameters. Rows always come back in
// original submission order.
type CallbackFilter struct {
	AgentName    *string
	CallbackDate *string
	CallbackType *domain.CallbackType
	Limit        int
	Offset       int
}

// CallbackRepository encapsulates callback record persistence.
type CallbackRepository interface {
	Create(ctx context.Context, callback *domain.Callback) error
	Update(ctx context.Context, callback *domain.Callback) error
	GetByID(ctx context.Context, id string) (*domain.Callback, error)
	ListWithFilter(ctx context.Context, filter CallbackFilter) ([]domain.Callback, error)
}

type callbackRepository struct {
	pool *pgxpool.Pool
}

// NewCallbackRepository instantiates the repository.
func NewCallbackRepository(pool *pgxpool.Pool) CallbackRepository {
	return &callbackRepository{pool: pool}
}

func (r *callbackRepository) Create(ctx context.Context, callback *domain.Callback) error {
	const query = `
        INSERT INTO callbacks (agent_name, full_name, address, mcn, dob, phone_number, notes, medical_conditions, cb_date, cb_timing, cb_type)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		callback.AgentName,
		callback.FullName,
		callback.Address,
		callback.MCN,
		callback.DOB,
		callback.PhoneNumber,
		callback.Notes,
		callback.MedicalConditions,
		callback.CallbackDate,
		callback.CallbackTiming,
		callback.CallbackType,
	).Scan(&callback.ID, &callback.CreatedAt, &callback.UpdatedAt)
}

func (r *callbackRepository) Update(ctx context.Context, callback *domain.Callback) error {
	const query = `
        UPDATE callbacks
        SET full_name=$1, address=$2, mcn=$3, dob=$4, phone_number=$5, notes=$6,
            medical_conditions=$7, cb_date=$8, cb_timing=$9, cb_type=$10, updated_at=NOW()
        WHERE id=$11`

	cmd, err := r.pool.Exec(ctx, query,
		callback.FullName,
		callback.Address,
		callback.MCN,
		callback.DOB,
		callback.PhoneNumber,
		callback.Notes,
		callback.MedicalConditions,
		callback.CallbackDate,
		callback.CallbackTiming,
		callback.CallbackType,
		callback.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *callbackRepository) GetByID(ctx context.Context, id string) (*domain.Callback, error) {
	const query = `
        SELECT id, agent_name, full_name, address, mcn, dob, phone_number, notes,
               medical_conditions, cb_date, cb_timing, cb_type, created_at, updated_at
        FROM callbacks WHERE id=$1`

	var callback domain.Callback
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&callback.ID,
		&callback.AgentName,
		&callback.FullName,
		&callback.Address,
		&callback.MCN,
		&callback.DOB,
		&callback.PhoneNumber,
		&callback.Notes,
		&callback.MedicalConditions,
		&callback.CallbackDate,
		&callback.CallbackTiming,
		&callback.CallbackType,
		&callback.CreatedAt,
		&callback.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &callback, nil
}

func (r *callbackRepository) ListWithFilter(ctx context.Context, filter CallbackFilter) ([]domain.Callback, error) {
	base := `SELECT id, agent_name, full_name, address, mcn, dob, phone_number, notes,
                    medical_conditions, cb_date, cb_timing, cb_type, created_at, updated_at
             FROM callbacks`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AgentName != nil {
		args = append(args, *filter.AgentName)
		clauses = append(clauses, fmt.Sprintf("agent_name=$%d", len(args)))
	}
	if filter.CallbackDate != nil {
		args = append(args, *filter.CallbackDate)
		clauses = append(clauses, fmt.Sprintf("cb_date=$%d", len(args)))
	}
	if filter.CallbackType != nil {
		args = append(args, *filter.CallbackType)
		clauses = append(clauses, fmt.Sprintf("cb_type=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY created_at ASC, id ASC", base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCallbacks(rows)
}

func scanCallbacks(rows pgx.Rows) ([]domain.Callback, error) {
	var result []domain.Callback
	for rows.Next() {
		var callback domain.Callback
		if err := rows.Scan(
			&callback.ID,
			&callback.AgentName,
			&callback.FullName,
			&callback.Address,
			&callback.MCN,
			&callback.DOB,
			&callback.PhoneNumber,
			&callback.Notes,
			&callback.MedicalConditions,
			&callback.CallbackDate,
			&callback.CallbackTiming,
			&callback.CallbackType,
			&callback.CreatedAt,
			&callback.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, callback)
	}
	return result, rows.Err()
}
