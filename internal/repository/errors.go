package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const PgErrUniqueViolation = "23505"

// RunningWorkflowIndex не даёт завести второй RUNNING запуск того же workflow.
const RunningWorkflowIndex = "executions_running_workflow_id_uidx"

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func IsPgErrorWithCode(err error, code string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == code
}

// IsUniqueViolationOn проверяет нарушение конкретного уникального индекса,
// чтобы не путать его с конфликтами по первичному ключу run_id.
func IsUniqueViolationOn(err error, constraint string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == PgErrUniqueViolation && pgErr.ConstraintName == constraint
}
