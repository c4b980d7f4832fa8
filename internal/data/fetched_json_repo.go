package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/isre1late/json-samples/config"
	"github.com/isre1late/json-samples/internal/core"
	"github.com/isre1late/json-samples/internal/data/pgxutil"
	"github.com/isre1late/json-samples/internal/domain/model"
	apperrors "github.com/isre1late/json-samples/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// fetchedJSONExportQuery is the cursor body. LIMIT is formatted in because
// DECLARE does not accept bind parameters.
const fetchedJSONExportQuery = `SELECT url, fetched_at, body FROM fetched_json LIMIT %d`

var _ core.FetchedJSONRepository = (*FetchedJSONRepo)(nil)

// FetchedJSONRepo reads stored responses from PostgreSQL through a server-side cursor.
type FetchedJSONRepo struct {
	DB *sql.DB
}

// NewFetchedJSONRepo creates a new FetchedJSONRepo with the given database connection.
func NewFetchedJSONRepo(db *sql.DB) *FetchedJSONRepo {
	return &FetchedJSONRepo{DB: db}
}

// Stream declares a NO SCROLL cursor inside a read-only transaction and hands
// rows to fn in cursor order, FetchSize rows per round trip. An error from fn
// stops the stream and is returned unchanged; database errors are mapped with
// MapDBError. The cursor, transaction and connection are released on return.
func (r *FetchedJSONRepo) Stream(ctx context.Context, opts core.StreamOptions, fn core.RowFunc) error {
	if fn == nil {
		return apperrors.Validation("row callback is required")
	}
	opts, err := normalizeStreamOptions(opts)
	if err != nil {
		return err
	}

	var fnErr error
	err = pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Opts: &sql.TxOptions{ReadOnly: true},
		Fn: func(tx pgx.Tx) error {
			return streamCursor(ctx, tx, opts, func(row *model.FetchedJSON) error {
				if cbErr := fn(row); cbErr != nil {
					fnErr = cbErr
					return cbErr
				}
				return nil
			})
		},
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("stream fetched_json: %w", apperrors.MapDBError(err))
	}
	return nil
}

func normalizeStreamOptions(opts core.StreamOptions) (core.StreamOptions, error) {
	opts.CursorName = strings.TrimSpace(opts.CursorName)
	if !config.IsValidCursorName(opts.CursorName) {
		return opts, apperrors.Validation("cursor name must be a plain SQL identifier")
	}
	if opts.Limit <= 0 {
		opts.Limit = config.DefaultExportLimit
	}
	if opts.Limit > config.MaxExportLimit {
		opts.Limit = config.MaxExportLimit
	}
	if opts.FetchSize <= 0 {
		opts.FetchSize = config.DefaultFetchSize
	}
	return opts, nil
}

func declareCursorSQL(opts core.StreamOptions) string {
	return "DECLARE " + pgx.Identifier{opts.CursorName}.Sanitize() + " NO SCROLL CURSOR FOR " +
		fmt.Sprintf(fetchedJSONExportQuery, opts.Limit)
}

func fetchCursorSQL(opts core.StreamOptions) string {
	return fmt.Sprintf("FETCH FORWARD %d FROM %s", opts.FetchSize, pgx.Identifier{opts.CursorName}.Sanitize())
}

// setDateStyleSQL pins the text rendering parseServerTimestamptz expects.
// SET LOCAL is permitted in a read-only transaction and ends with it.
const setDateStyleSQL = "SET LOCAL DateStyle TO ISO"

func streamCursor(ctx context.Context, tx pgx.Tx, opts core.StreamOptions, fn core.RowFunc) error {
	if _, err := tx.Exec(ctx, setDateStyleSQL); err != nil {
		return fmt.Errorf("set datestyle: %w", err)
	}
	if _, err := tx.Exec(ctx, declareCursorSQL(opts)); err != nil {
		return fmt.Errorf("declare cursor: %w", err)
	}

	fetch := fetchCursorSQL(opts)
	for {
		n, batchErr := fetchBatch(ctx, tx, fetch, fn)
		if batchErr != nil {
			return batchErr
		}
		if n < opts.FetchSize {
			return nil
		}
	}
}

func fetchBatch(ctx context.Context, tx pgx.Tx, fetch string, fn core.RowFunc) (int, error) {
	rows, err := tx.Query(ctx, fetch, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return 0, fmt.Errorf("fetch cursor: %w", err)
	}
	defer rows.Close()

	kind, err := fetchedAtKind(rows.FieldDescriptions())
	if err != nil {
		return 0, err
	}

	n := 0
	for rows.Next() {
		row, scanErr := scanFetchedJSON(rows, kind)
		if scanErr != nil {
			return n, fmt.Errorf("scan fetched_json row: %w", scanErr)
		}
		n++
		if err = fn(row); err != nil {
			return n, err
		}
	}
	if err = rows.Err(); err != nil {
		return n, fmt.Errorf("fetch cursor: %w", err)
	}
	return n, nil
}

// serverTimestampLayout matches timestamptz output under DateStyle ISO, minus the offset.
const serverTimestampLayout = "2006-01-02 15:04:05.999999999"

// parseServerTimestamptz parses the server's text rendering of a timestamptz,
// e.g. "2020-01-01 00:00:00.5+05:30". The offset is kept as printed, so the
// session TimeZone decides it and no zone database lookup is needed. BC and
// infinite values are rejected.
func parseServerTimestamptz(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	i := strings.LastIndexAny(s, "+-")
	if i < len("2006-01-02 15:04:05") {
		return time.Time{}, fmt.Errorf("timestamptz %q: missing utc offset", s)
	}

	local, err := time.Parse(serverTimestampLayout, s[:i])
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamptz %q: %w", s, err)
	}
	offset, err := parseUTCOffset(s[i:])
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamptz %q: %w", s, err)
	}

	return time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(),
		time.FixedZone("", offset)), nil
}

// parseUTCOffset parses "+HH", "+HH:MM" or "+HH:MM:SS" into seconds east of UTC.
func parseUTCOffset(s string) (int, error) {
	sign := 1
	switch {
	case strings.HasPrefix(s, "-"):
		sign = -1
	case !strings.HasPrefix(s, "+"):
		return 0, fmt.Errorf("invalid utc offset %q", s)
	}

	parts := strings.Split(s[1:], ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid utc offset %q", s)
	}
	limits := []int{24, 60, 60}
	weights := []int{3600, 60, 1}
	secs := 0
	for i, part := range parts {
		if len(part) != 2 {
			return 0, fmt.Errorf("invalid utc offset %q", s)
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n >= limits[i] {
			return 0, fmt.Errorf("invalid utc offset %q", s)
		}
		secs += n * weights[i]
	}
	return sign * secs, nil
}

func fetchedAtKind(fields []pgconn.FieldDescription) (model.TimestampKind, error) {
	if len(fields) != 3 {
		return 0, apperrors.Newf(apperrors.ErrCodeQuery, "expected 3 columns, got %d", len(fields))
	}
	switch fields[1].DataTypeOID {
	case pgtype.TimestampOID:
		return model.TimestampNaive, nil
	case pgtype.TimestamptzOID:
		return model.TimestampZoned, nil
	case pgtype.TextOID, pgtype.VarcharOID, pgtype.BPCharOID:
		return model.TimestampText, nil
	default:
		return 0, apperrors.Newf(apperrors.ErrCodeQuery,
			"unsupported fetched_at column type (oid %d)", fields[1].DataTypeOID)
	}
}

func scanFetchedJSON(rows pgx.Rows, kind model.TimestampKind) (*model.FetchedJSON, error) {
	out := &model.FetchedJSON{FetchedAtKind: kind}
	var err error
	switch kind {
	case model.TimestampText:
		err = rows.Scan(&out.URL, &out.FetchedAtText, &out.Body)
	case model.TimestampZoned:
		var rendered string
		if err = rows.Scan(&out.URL, &rendered, &out.Body); err == nil {
			out.FetchedAt, err = parseServerTimestamptz(rendered)
		}
	case model.TimestampNaive:
		err = rows.Scan(&out.URL, &out.FetchedAt, &out.Body)
	default:
		err = errors.New("unknown fetched_at kind")
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
