package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"time"

	"storepulse/config"
	"storepulse/models"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresService executes validated statements against the production store.
// It takes a bare SQL string because safe statements are fully self-contained
// by validation time; the statement timeout is enforced server-side via the
// connection options.
type PostgresService struct {
	db             *sql.DB
	resultsStorage *ResultsStorage
}

func NewPostgresService(cfg config.PostgresConfig, resultsDir string) (*PostgresService, error) {
	if cfg.Host == "" || cfg.Database == "" {
		return nil, fmt.Errorf("PostgreSQL configuration is incomplete")
	}

	db, err := sql.Open("pgx", buildConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		// Log a warning but do not fail service initialization, so the
		// application can still start while the store is unreachable.
		log.Printf("Warning: failed to ping PostgreSQL during initialization: %v", err)
	}

	resultsStorage, err := NewResultsStorage(resultsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize results storage: %w", err)
	}

	return &PostgresService{
		db:             db,
		resultsStorage: resultsStorage,
	}, nil
}

func buildConnectionString(cfg config.PostgresConfig) string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password),
		cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode)

	if cfg.StatementTimeoutMS > 0 {
		dsn += fmt.Sprintf("&options=%s",
			url.QueryEscape(fmt.Sprintf("-c statement_timeout=%d", cfg.StatementTimeoutMS)))
	}

	return dsn
}

func (s *PostgresService) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ExecuteQuery runs one validated statement and returns the rows with column
// order preserved. All failure modes (timeout included) surface as a plain
// error to the caller.
func (s *PostgresService) ExecuteQuery(ctx context.Context, stmt models.SafeStatement) (*models.ResultSet, error) {
	if s.db == nil {
		return nil, fmt.Errorf("PostgreSQL connection is not initialized")
	}

	rows, err := s.db.QueryContext(ctx, stmt.Text)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var resultRows [][]interface{}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make([]interface{}, len(columns))
		for i, val := range values {
			switch v := val.(type) {
			case nil:
				row[i] = nil
			case []byte:
				row[i] = string(v)
			case time.Time:
				row[i] = v.Format("2006-01-02 15:04:05")
			default:
				row[i] = v
			}
		}

		resultRows = append(resultRows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.ResultSet{
		Columns: columns,
		Rows:    resultRows,
	}, nil
}

func (s *PostgresService) GetResultsStorage() *ResultsStorage {
	return s.resultsStorage
}

func (s *PostgresService) IsConnected() bool {
	if s.db == nil {
		return false
	}
	return s.db.Ping() == nil
}
