package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/engine"
	"fulfillment/internal/entities"
	"fulfillment/internal/repository"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var executionColumns = []string{
	"run_id",
	"workflow_id",
	"order_id",
	"status",
	"start_time",
	"close_time",
	"result",
}

type Repository struct {
	querier   Querier
	txManager TxManager
}

func New(querier Querier, txManager TxManager) *Repository {
	return &Repository{
		querier:   querier,
		txManager: txManager,
	}
}

func (r *Repository) Create(ctx context.Context, execution entities.Execution, order entities.Order) error {
	executionDB, err := FromDomain(execution, order)
	if err != nil {
		return fmt.Errorf("unexpected execution repository create error: %w", err)
	}

	return r.txManager.DoReadCommitted(ctx, func(ctx context.Context) error {
		var running int64
		err := r.querier.QueryRow(ctx, `
			SELECT COUNT(*)
			FROM executions
			WHERE workflow_id = $1 AND status = 'RUNNING'
		`, executionDB.WorkflowID).Scan(&running)
		if err != nil {
			return fmt.Errorf("unexpected execution repository count running error: %w", err)
		}
		if running > 0 {
			return fmt.Errorf("%w: %s", engine.ErrAlreadyStarted, executionDB.WorkflowID)
		}

		query := `
			INSERT INTO executions (run_id, workflow_id, order_id, status, start_time, order_payload)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err = r.querier.Exec(
			ctx,
			query,
			executionDB.RunID,
			executionDB.WorkflowID,
			executionDB.OrderID,
			executionDB.Status,
			executionDB.StartTime,
			executionDB.Order,
		)
		if err != nil {
			if repository.IsUniqueViolationOn(err, repository.RunningWorkflowIndex) {
				return fmt.Errorf("%w: %s", engine.ErrAlreadyStarted, executionDB.WorkflowID)
			}
			if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
				return fmt.Errorf("%w: run %s", engine.ErrAlreadyStarted, executionDB.RunID)
			}
			return fmt.Errorf("unexpected execution repository create error: %w", err)
		}
		return nil
	})
}

func (r *Repository) Complete(ctx context.Context, runID string, result entities.OrderResult, closeTime time.Time) error {
	resultJSON, err := resultToJSON(result)
	if err != nil {
		return fmt.Errorf("unexpected execution repository complete error: %w", err)
	}

	query, args, err := qb.
		Update("executions").
		Set("status", entities.ExecutionStatusOf(result).String()).
		Set("close_time", closeTime).
		Set("result", resultJSON).
		Where(sq.Eq{"run_id": runID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected execution repository complete error: %w", err)
	}

	tag, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected execution repository complete error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: run %s", engine.ErrNotFound, runID)
	}
	return nil
}

// Get возвращает последний запуск workflow.
func (r *Repository) Get(ctx context.Context, workflowID string) (*entities.Execution, error) {
	query, args, err := qb.
		Select(executionColumns...).
		From("executions").
		Where(sq.Eq{"workflow_id": workflowID}).
		OrderBy("start_time DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected execution repository get error: %w", err)
	}

	executionDB, err := scanExecution(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, engine.ErrNotFound
		}
		return nil, fmt.Errorf("unexpected execution repository get error: %w", err)
	}

	return ToDomain(executionDB)
}

// List возвращает последние запуски каждого workflow, новые первыми.
func (r *Repository) List(ctx context.Context, limit uint64) ([]entities.Execution, error) {
	query, args, err := qb.
		Select(executionColumns...).
		From("executions").
		Prefix("SELECT * FROM (").
		Options("DISTINCT ON (workflow_id)").
		OrderBy("workflow_id", "start_time DESC").
		Suffix(") latest ORDER BY start_time DESC LIMIT ?", limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected execution repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected execution repository list error: %w", err)
	}
	defer rows.Close()

	executions := make([]entities.Execution, 0)
	for rows.Next() {
		executionDB, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected execution repository scan error: %w", err)
		}

		execution, err := ToDomain(executionDB)
		if err != nil {
			return nil, err
		}
		executions = append(executions, *execution)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected execution repository rows error: %w", err)
	}

	return executions, nil
}

func (r *Repository) DeleteClosedBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM executions
		WHERE close_time IS NOT NULL AND close_time < $1
	`

	result, err := r.querier.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("unexpected execution repository delete closed error: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanExecution(row pgx.Row) (*ExecutionDB, error) {
	var executionDB ExecutionDB
	err := row.Scan(
		&executionDB.RunID,
		&executionDB.WorkflowID,
		&executionDB.OrderID,
		&executionDB.Status,
		&executionDB.StartTime,
		&executionDB.CloseTime,
		&executionDB.Result,
	)
	if err != nil {
		return nil, err
	}
	return &executionDB, nil
}
