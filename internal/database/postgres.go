package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// PostgreSQL is an implementation of the Database interface using PostgreSQL.
// Each integration is one JSONB document; seq preserves insertion order.
type PostgreSQL struct {
	conn *pgx.Conn
}

// NewPostgreSQL creates a new instance of the PostgreSQL database
func NewPostgreSQL(ctx context.Context, connectionURI string, logger *zap.Logger) (*PostgreSQL, error) {
	conn, err := pgx.Connect(ctx, connectionURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// Test the connection
	if err = conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	// Run migrations
	migrator := NewMigrator(conn, logger)
	if err := migrator.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return &PostgreSQL{
		conn: conn,
	}, nil
}

func (db *PostgreSQL) List(
	ctx context.Context,
	filter *IntegrationFilter,
	cursor string,
	limit int,
) ([]*model.Integration, string, error) {
	if ctx.Err() != nil {
		return nil, "", ctx.Err()
	}

	var whereConditions []string
	args := []any{}
	argIndex := 1

	if filter != nil {
		if filter.Published != nil {
			whereConditions = append(whereConditions, fmt.Sprintf("(value->>'published')::boolean = $%d", argIndex))
			args = append(args, *filter.Published)
			argIndex++
		}
		if filter.Search != "" {
			whereConditions = append(whereConditions, fmt.Sprintf("(value->>'name' ILIKE $%d OR value->>'description' ILIKE $%d)", argIndex, argIndex))
			args = append(args, "%"+filter.Search+"%")
			argIndex++
		}
	}

	if cursor != "" {
		var exists bool
		if err := db.conn.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM integrations WHERE id = $1)", cursor).Scan(&exists); err != nil {
			return nil, "", fmt.Errorf("failed to resolve cursor: %w", err)
		}
		if !exists {
			return nil, "", ErrInvalidInput
		}
		whereConditions = append(whereConditions, fmt.Sprintf("seq > (SELECT seq FROM integrations WHERE id = $%d)", argIndex))
		args = append(args, cursor)
		argIndex++
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + strings.Join(whereConditions, " AND ")
	}

	limitClause := ""
	if limit > 0 {
		// one extra row tells us whether there is a next page
		limitClause = fmt.Sprintf("LIMIT $%d", argIndex)
		args = append(args, limit+1)
	}

	query := fmt.Sprintf(`
		SELECT value
		FROM integrations
		%s
		ORDER BY seq
		%s
	`, whereClause, limitClause)

	rows, err := db.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query integrations: %w", err)
	}
	defer rows.Close()

	results := []*model.Integration{}
	for rows.Next() {
		var valueJSON []byte
		if err := rows.Scan(&valueJSON); err != nil {
			return nil, "", fmt.Errorf("failed to scan integration row: %w", err)
		}

		var integration model.Integration
		if err := json.Unmarshal(valueJSON, &integration); err != nil {
			return nil, "", fmt.Errorf("failed to unmarshal integration JSON: %w", err)
		}
		results = append(results, &integration)
	}

	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating rows: %w", err)
	}

	nextCursor := ""
	if limit > 0 && len(results) > limit {
		results = results[:limit]
		nextCursor = results[limit-1].ID
	}

	return results, nextCursor, nil
}

func (db *PostgreSQL) GetByID(ctx context.Context, id string) (*model.Integration, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var valueJSON []byte
	err := db.conn.QueryRow(ctx, "SELECT value FROM integrations WHERE id = $1", id).Scan(&valueJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get integration by ID: %w", err)
	}

	var integration model.Integration
	if err := json.Unmarshal(valueJSON, &integration); err != nil {
		return nil, fmt.Errorf("failed to unmarshal integration JSON: %w", err)
	}

	return &integration, nil
}

// Create adds a new integration to the database
func (db *PostgreSQL) Create(ctx context.Context, integration *model.Integration) (*model.Integration, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if integration == nil || integration.ID == "" {
		return nil, ErrInvalidInput
	}

	valueJSON, err := json.Marshal(integration)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal integration JSON: %w", err)
	}

	_, err = db.conn.Exec(ctx, "INSERT INTO integrations (id, value) VALUES ($1, $2)", integration.ID, valueJSON)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert integration: %w", err)
	}

	return integration, nil
}

// Update replaces the stored document, keeping its position in the listing
func (db *PostgreSQL) Update(ctx context.Context, id string, integration *model.Integration) (*model.Integration, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if integration == nil {
		return nil, ErrInvalidInput
	}

	valueJSON, err := json.Marshal(integration)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal updated integration: %w", err)
	}

	result, err := db.conn.Exec(ctx, `
		UPDATE integrations
		SET id = $1, value = $2, updated_at = NOW()
		WHERE id = $3
	`, integration.ID, valueJSON, id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to update integration: %w", err)
	}

	if result.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return integration, nil
}

// Delete removes an integration
func (db *PostgreSQL) Delete(ctx context.Context, id string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	result, err := db.conn.Exec(ctx, "DELETE FROM integrations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete integration: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database connection
func (db *PostgreSQL) Close() error {
	return db.conn.Close(context.Background())
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
