package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/magnet-links-go/magnetlink"
	"github.com/AntonStoeckl/magnet-links-go/magnetlink/postgresengine/internal/adapters"
)

const (
	defaultLinksTableName        = "magnet_links"
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgBuildDeleteQueryFailed = "failed to build delete query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgBuildLinkFailed        = "failed to build storable link from database row"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgLinkSaved              = "magnet link saved"
	logMsgQueryCompleted         = "query completed"
	logMsgLinksRemoved           = "magnet links removed"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "linkstore operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrInfoHash              = "info_hash"
	logAttrLinkCount             = "link_count"
	logAttrDurationMS            = "duration_ms"
	logAttrRowsAffected          = "rows_affected"
	logActionSave                = "save"
	logActionQuery               = "query"
	logActionRemove              = "remove"
	colID                        = "id"
	colLink                      = "link"
	colInfoHash                  = "info_hash"
	colProtocol                  = "protocol"
	colDisplayName               = "display_name"
	colTrackers                  = "trackers"
	colAddedAt                   = "added_at"
	dialectPostgres              = "postgres"
	metricOperationDuration      = "linkstore_operation_duration_seconds"
	metricOperationErrors        = "linkstore_operation_errors_total"
	metricLabelOperation         = "operation"
	spanNamePrefix               = "linkstore."
	spanAttrTable                = "db.table"
	spanStatusOK                 = "ok"
	spanStatusError              = "error"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
	queryDuration     = time.Duration
)

// LinkStore represents a storage mechanism for parsed magnet links.
// It leverages a database adapter and supports customizable logging, metrics,
// tracing, and table configuration.
type LinkStore struct {
	db               adapters.DBAdapter
	linksTableName   string
	logger           magnetlink.Logger
	contextualLogger magnetlink.ContextualLogger
	metricsCollector magnetlink.MetricsCollector
	tracingCollector magnetlink.TracingCollector
}

// NewLinkStoreFromPGXPool creates a new LinkStore using a pgx pool with optional configuration.
func NewLinkStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (LinkStore, error) {
	if db == nil {
		return LinkStore{}, magnetlink.ErrNilDatabaseConnection
	}

	return newLinkStore(adapters.NewPGXAdapter(db), options...)
}

// NewLinkStoreFromSQLDB creates a new LinkStore using a sql.DB with optional configuration.
func NewLinkStoreFromSQLDB(db *sql.DB, options ...Option) (LinkStore, error) {
	if db == nil {
		return LinkStore{}, magnetlink.ErrNilDatabaseConnection
	}

	return newLinkStore(adapters.NewSQLAdapter(db), options...)
}

// NewLinkStoreFromSQLX creates a new LinkStore using a sqlx.DB with optional configuration.
func NewLinkStoreFromSQLX(db *sqlx.DB, options ...Option) (LinkStore, error) {
	if db == nil {
		return LinkStore{}, magnetlink.ErrNilDatabaseConnection
	}

	return newLinkStore(adapters.NewSQLXAdapter(db), options...)
}

func newLinkStore(db adapters.DBAdapter, options ...Option) (LinkStore, error) {
	ls := LinkStore{
		db:             db,
		linksTableName: defaultLinksTableName,
	}

	for _, option := range options {
		if err := option(&ls); err != nil {
			return LinkStore{}, err
		}
	}

	return ls, nil
}

// Save persists a magnetlink.StorableLink into the Postgres link store.
func (ls LinkStore) Save(ctx context.Context, link magnetlink.StorableLink) error {
	ctx, span := ls.startSpan(ctx, logActionSave)

	sqlQuery, buildQueryErr := ls.buildInsertQuery(link)
	if buildQueryErr != nil {
		ls.logError(ctx, logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error())
		ls.finishSpan(span, buildQueryErr)

		return buildQueryErr
	}

	_, duration, execErr := ls.executeExec(ctx, sqlQuery, logActionSave)
	if execErr != nil {
		ls.finishSpan(span, execErr)

		return errors.Join(magnetlink.ErrSavingLinkFailed, execErr)
	}

	ls.logOperation(ctx,
		logMsgLinkSaved,
		logAttrInfoHash, link.InfoHash,
		logAttrDurationMS, durationToMilliseconds(duration))
	ls.recordOperation(logActionSave, duration, nil)
	ls.finishSpan(span, nil)

	return nil
}

// FindByInfoHash retrieves all stored links with the given info hash,
// oldest first. An empty result is not an error.
func (ls LinkStore) FindByInfoHash(ctx context.Context, infoHash magnetlink.InfoHashString) (
	magnetlink.StorableLinks,
	error,
) {

	selectStmt := ls.selectLinks().
		Where(goqu.C(colInfoHash).Eq(infoHash)).
		Order(goqu.I(colAddedAt).Asc())

	return ls.queryLinks(ctx, selectStmt)
}

// All retrieves stored links, newest first. A limit of 0 means no limit.
func (ls LinkStore) All(ctx context.Context, limit uint) (magnetlink.StorableLinks, error) {
	selectStmt := ls.selectLinks().
		Order(goqu.I(colAddedAt).Desc())

	if limit > 0 {
		selectStmt = selectStmt.Limit(limit)
	}

	return ls.queryLinks(ctx, selectStmt)
}

// Remove deletes all stored links with the given info hash and returns the
// number of removed rows.
func (ls LinkStore) Remove(ctx context.Context, infoHash magnetlink.InfoHashString) (int64, error) {
	ctx, span := ls.startSpan(ctx, logActionRemove)

	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(ls.linksTableName).
		Where(goqu.C(colInfoHash).Eq(infoHash))

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		ls.logError(ctx, logMsgBuildDeleteQueryFailed, logAttrError, toSQLErr.Error())
		ls.finishSpan(span, toSQLErr)

		return 0, errors.Join(magnetlink.ErrBuildingQueryFailed, toSQLErr)
	}

	rowsAffected, duration, execErr := ls.executeExec(ctx, sqlQuery, logActionRemove)
	if execErr != nil {
		ls.finishSpan(span, execErr)

		return 0, errors.Join(magnetlink.ErrRemovingLinksFailed, execErr)
	}

	ls.logOperation(ctx,
		logMsgLinksRemoved,
		logAttrInfoHash, infoHash,
		logAttrRowsAffected, rowsAffected,
		logAttrDurationMS, durationToMilliseconds(duration))
	ls.recordOperation(logActionRemove, duration, nil)
	ls.finishSpan(span, nil)

	return rowsAffected, nil
}

func (ls LinkStore) selectLinks() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(ls.linksTableName).
		Select(colID, colLink, colInfoHash, colProtocol, colDisplayName, colTrackers, colAddedAt)
}

func (ls LinkStore) queryLinks(ctx context.Context, selectStmt *goqu.SelectDataset) (
	magnetlink.StorableLinks,
	error,
) {

	ctx, span := ls.startSpan(ctx, logActionQuery)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		ls.logError(ctx, logMsgBuildSelectQueryFailed, logAttrError, toSQLErr.Error())
		ls.finishSpan(span, toSQLErr)

		return nil, errors.Join(magnetlink.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, duration, queryErr := ls.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		ls.finishSpan(span, queryErr)

		return nil, queryErr
	}
	defer ls.closeRows(ctx, rows)

	links, scanErr := ls.scanLinks(ctx, rows)
	if scanErr != nil {
		ls.finishSpan(span, scanErr)

		return nil, scanErr
	}

	ls.logOperation(ctx,
		logMsgQueryCompleted,
		logAttrLinkCount, len(links),
		logAttrDurationMS, durationToMilliseconds(duration))
	ls.recordOperation(logActionQuery, duration, nil)
	ls.finishSpan(span, nil)

	return links, nil
}

func (ls LinkStore) buildInsertQuery(link magnetlink.StorableLink) (sqlQueryString, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(ls.linksTableName).
		Rows(goqu.Record{
			colID:          link.ID.String(),
			colLink:        link.Link,
			colInfoHash:    link.InfoHash,
			colProtocol:    link.Protocol,
			colDisplayName: link.DisplayName,
			colTrackers:    string(link.TrackersJSON),
			colAddedAt:     link.AddedAt,
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(magnetlink.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (ls LinkStore) executeQuery(ctx context.Context, sqlQuery string) (
	adapters.DBRows,
	queryDuration,
	error,
) {

	start := time.Now()
	rows, queryErr := ls.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	ls.logQueryWithDuration(ctx, sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		ls.logError(ctx, logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		ls.recordOperation(logActionQuery, duration, queryErr)

		return nil, duration, errors.Join(magnetlink.ErrQueryingLinksFailed, queryErr)
	}

	return rows, duration, nil
}

// executeExec executes a SQL statement and returns rows affected and duration.
func (ls LinkStore) executeExec(ctx context.Context, sqlQuery string, action string) (
	rowsAffectedInt64,
	queryDuration,
	error,
) {

	start := time.Now()
	result, execErr := ls.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	ls.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if execErr != nil {
		ls.logError(ctx, logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		ls.recordOperation(action, duration, execErr)

		return 0, duration, execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		ls.logError(ctx, logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())

		return 0, duration, errors.Join(magnetlink.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

// scanLinks processes database rows and converts them to storable links.
func (ls LinkStore) scanLinks(ctx context.Context, rows adapters.DBRows) (magnetlink.StorableLinks, error) {
	var id, link, infoHash, protocol, displayName string
	var trackersJSON []byte
	var addedAt time.Time

	links := make(magnetlink.StorableLinks, 0)

	for rows.Next() {
		rowScanErr := rows.Scan(&id, &link, &infoHash, &protocol, &displayName, &trackersJSON, &addedAt)
		if rowScanErr != nil {
			ls.logError(ctx, logMsgScanRowFailed, logAttrError, rowScanErr.Error())

			return nil, errors.Join(magnetlink.ErrScanningDBRowFailed, rowScanErr)
		}

		storableLink, buildErr := magnetlink.BuildStorableLinkFromRow(
			id, link, infoHash, protocol, displayName, trackersJSON, addedAt)
		if buildErr != nil {
			ls.logError(ctx, logMsgBuildLinkFailed, logAttrError, buildErr.Error(), logAttrInfoHash, infoHash)

			return nil, errors.Join(magnetlink.ErrBuildingStorableLinkFailed, buildErr)
		}

		links = append(links, storableLink)
	}

	return links, nil
}

// closeRows safely closes database rows and logs any errors.
func (ls LinkStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if ls.contextualLogger != nil {
			ls.contextualLogger.WarnContext(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
			return
		}

		if ls.logger != nil {
			ls.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (ls LinkStore) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	if ls.contextualLogger != nil {
		ls.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action,
			logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
		return
	}

	if ls.logger != nil {
		ls.logger.Debug(logMsgSQLExecuted+action,
			logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (ls LinkStore) logOperation(ctx context.Context, action string, args ...any) {
	if ls.contextualLogger != nil {
		ls.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if ls.logger != nil {
		ls.logger.Info(logMsgOperation+action, args...)
	}
}

// logError logs critical failures at error level if a logger is configured.
func (ls LinkStore) logError(ctx context.Context, msg string, args ...any) {
	if ls.contextualLogger != nil {
		ls.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if ls.logger != nil {
		ls.logger.Error(msg, args...)
	}
}

// recordOperation records duration and error metrics if a collector is configured.
func (ls LinkStore) recordOperation(action string, duration time.Duration, err error) {
	if ls.metricsCollector == nil {
		return
	}

	labels := map[string]string{metricLabelOperation: action}
	ls.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)

	if err != nil {
		ls.metricsCollector.IncrementCounter(metricOperationErrors, labels)
	}
}

// startSpan starts a tracing span for an operation if a collector is configured.
func (ls LinkStore) startSpan(ctx context.Context, operation string) (context.Context, magnetlink.SpanContext) {
	if ls.tracingCollector == nil {
		return ctx, nil
	}

	return ls.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{
		spanAttrTable: ls.linksTableName,
	})
}

// finishSpan finishes a tracing span with a status derived from err.
func (ls LinkStore) finishSpan(span magnetlink.SpanContext, err error) {
	if ls.tracingCollector == nil || span == nil {
		return
	}

	if err != nil {
		ls.tracingCollector.FinishSpan(span, spanStatusError, map[string]string{logAttrError: err.Error()})
		return
	}

	ls.tracingCollector.FinishSpan(span, spanStatusOK, nil)
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
