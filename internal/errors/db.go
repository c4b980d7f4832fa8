package errors

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps database errors to AppError instances.
// It handles the failure modes an export can hit:
// - Context timeouts/cancellations → Timeout/Canceled
// - Connection, authentication and admission failures → Unavailable
// - Missing relations/columns and malformed SQL → Query
// - Other server errors → Internal
//
// Errors that already carry an AppError are returned unchanged. Anything else
// that is not a recognized database error is returned as-is.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	// Check for context errors first
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "database operation timed out",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "database operation was canceled",
			Cause:   err,
		}
	}

	// Check for PostgreSQL errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	// Dial, TLS and startup failures never reach the server's error path.
	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) || errors.As(err, &netErr) {
		return &AppError{
			Code:    ErrCodeUnavailable,
			Message: "database is unreachable",
			Cause:   err,
		}
	}

	return err
}

// mapPgError maps PostgreSQL-specific errors to AppError instances.
func mapPgError(pgErr *pgconn.PgError) error {
	switch {
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsInvalidAuthorizationSpecification(pgErr.Code),
		pgErr.Code == pgerrcode.InvalidCatalogName,
		pgErr.Code == pgerrcode.TooManyConnections,
		pgErr.Code == pgerrcode.CannotConnectNow,
		pgErr.Code == pgerrcode.AdminShutdown:
		return &AppError{
			Code:    ErrCodeUnavailable,
			Message: "database refused the session",
			Cause:   pgErr,
		}
	case pgErr.Code == pgerrcode.UndefinedTable,
		pgErr.Code == pgerrcode.UndefinedColumn,
		pgErr.Code == pgerrcode.UndefinedObject,
		pgErr.Code == pgerrcode.InsufficientPrivilege,
		pgerrcode.IsSyntaxErrororAccessRuleViolation(pgErr.Code):
		return &AppError{
			Code:    ErrCodeQuery,
			Message: queryMessage(pgErr),
			Cause:   pgErr,
		}
	case pgErr.Code == pgerrcode.QueryCanceled:
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "query was canceled by the server",
			Cause:   pgErr,
		}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "a database error occurred",
			Cause:   pgErr,
		}
	}
}

func queryMessage(pgErr *pgconn.PgError) string {
	switch pgErr.Code {
	case pgerrcode.UndefinedTable:
		if pgErr.TableName != "" {
			return "table " + pgErr.TableName + " does not exist"
		}
		return "export table does not exist"
	case pgerrcode.UndefinedColumn:
		if pgErr.ColumnName != "" {
			return "column " + pgErr.ColumnName + " does not exist"
		}
		return "export column does not exist"
	case pgerrcode.InsufficientPrivilege:
		return "permission denied for export query"
	default:
		return "export query was rejected"
	}
}
