package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"vanet-hq/saturn/pkg/ledger"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/runs.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// sortColumns maps query sort names to schema columns. Sort names arrive
// from CLI flags, so anything outside this map is rejected rather than
// interpolated into SQL.
var sortColumns = map[string]string{
	"created_at":  "created_at",
	"scenario_id": "scenario_id",
	"run_index":   "run_index",
	"seed":        "seed",
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "ledger.storage.sqlite")

	// Make sure the parent directory exists; sqlite cannot create it.
	if dir := filepath.Dir(config.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, ledger.NewStorageError("sqlite", "mkdir", err)
		}
	}

	// Open database connection
	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, ledger.NewStorageError("sqlite", "open", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	// Initialize database
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite ledger initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	// Enable WAL mode if configured
	if s.config.WALMode {
		_, err := s.db.Exec("PRAGMA journal_mode=WAL;")
		if err != nil {
			return ledger.NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	// Set busy timeout
	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs))
	if err != nil {
		return ledger.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	// Create schema
	_, err = s.db.Exec(Schema)
	if err != nil {
		return ledger.NewStorageError("sqlite", "create_schema", err)
	}
	s.logger.Debug("database schema created")

	// Insert schema version
	_, err = s.db.Exec(InsertSchemaVersion, SchemaVersion)
	if err != nil {
		return ledger.NewStorageError("sqlite", "insert_schema_version", err)
	}

	// Verify schema version
	var version int
	err = s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return ledger.NewStorageError("sqlite", "get_schema_version", err)
	}

	if version != SchemaVersion {
		return ledger.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)

	return nil
}

// Store persists a run record to the database.
func (s *SQLiteStorage) Store(ctx context.Context, record *ledger.RunRecord) error {
	query := `
		INSERT INTO runs (
			id, scenario_id, run_index, seed, config_hash, config_path, created_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?
		)
	`

	// Convert empty strings to NULL for optional fields
	var configPathVal interface{}
	if record.ConfigPath == "" {
		configPathVal = nil
	} else {
		configPathVal = record.ConfigPath
	}

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.ScenarioID, record.RunIndex,
		record.Seed, record.ConfigHash, configPathVal,
		record.CreatedAt,
	)

	if err != nil {
		return ledger.NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Query retrieves run records matching the query filters.
func (s *SQLiteStorage) Query(ctx context.Context, query *ledger.Query) ([]*ledger.RunRecord, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT id, scenario_id, run_index, seed, config_hash, config_path, created_at FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	orderClause, err := buildOrderClause(query)
	if err != nil {
		return nil, ledger.NewQueryError(query, err)
	}
	sqlQuery += orderClause

	// Pagination
	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)

	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, ledger.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*ledger.RunRecord{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, ledger.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, ledger.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of run records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *ledger.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count)
	if err != nil {
		return 0, ledger.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// Delete removes run records matching the query filters.
// Returns the number of records deleted.
func (s *SQLiteStorage) Delete(ctx context.Context, query *ledger.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, ledger.NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, ledger.NewStorageError("sqlite", "delete", err)
	}

	return count, nil
}

// Close releases resources held by the storage backend.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return ledger.NewStorageError("sqlite", "close", err)
	}

	s.logger.Info("SQLite ledger closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the WHERE clause (without "WHERE" keyword) and the query arguments.
func buildWhereClause(query *ledger.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	// Time range filter
	if query.StartTime != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *query.StartTime)
	}
	if query.EndTime != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *query.EndTime)
	}

	// Scenario filter
	if query.ScenarioID != "" {
		conditions = append(conditions, "scenario_id = ?")
		args = append(args, query.ScenarioID)
	}

	// Seed filter
	if query.Seed != nil {
		conditions = append(conditions, "seed = ?")
		args = append(args, *query.Seed)
	}

	// Join conditions with AND
	whereClause := ""
	for i, condition := range conditions {
		if i > 0 {
			whereClause += " AND "
		}
		whereClause += condition
	}

	return whereClause, args
}

// buildOrderClause builds the ORDER BY clause, rejecting sort names that
// are not whitelisted columns.
func buildOrderClause(query *ledger.Query) (string, error) {
	column := "created_at"
	if query.SortBy != "" {
		mapped, ok := sortColumns[query.SortBy]
		if !ok {
			return "", fmt.Errorf("unknown sort column %q", query.SortBy)
		}
		column = mapped
	}

	order := "DESC"
	switch query.SortOrder {
	case "", "desc", "DESC":
		order = "DESC"
	case "asc", "ASC":
		order = "ASC"
	default:
		return "", fmt.Errorf("unknown sort order %q", query.SortOrder)
	}

	return fmt.Sprintf(" ORDER BY %s %s", column, order), nil
}

// scanRow scans a database row into a RunRecord.
func scanRow(row *sql.Rows) (*ledger.RunRecord, error) {
	var record ledger.RunRecord
	var configPathVal sql.NullString

	err := row.Scan(
		&record.ID, &record.ScenarioID, &record.RunIndex,
		&record.Seed, &record.ConfigHash, &configPathVal,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if configPathVal.Valid {
		record.ConfigPath = configPathVal.String
	}

	return &record, nil
}
