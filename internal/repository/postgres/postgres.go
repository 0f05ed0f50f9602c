package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartcity/gateway/internal/domain"
)

const uniqueViolation = "23505"

// TransportRepository implements domain.TransportRepository on PostgreSQL
type TransportRepository struct {
	pool *pgxpool.Pool
}

// NewTransportRepository creates a new PostgreSQL repository
func NewTransportRepository(pool *pgxpool.Pool) *TransportRepository {
	return &TransportRepository{pool: pool}
}

// EnsureSchema creates the transports table when missing
func (r *TransportRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS transports (
			id          INTEGER PRIMARY KEY,
			type        TEXT NOT NULL,
			line        TEXT NOT NULL,
			destination TEXT NOT NULL,
			status      TEXT NOT NULL
		)
	`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("postgres: failed to create transports table: %w", err)
	}
	return nil
}

// Seed inserts records whose id is not present yet
func (r *TransportRepository) Seed(ctx context.Context, seed []domain.Transport) error {
	query := `
		INSERT INTO transports (id, type, line, destination, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, t := range seed {
		batch.Queue(query, t.ID, t.Type, t.Line, t.Destination, t.Status)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("postgres: failed to seed transports: %w", err)
	}
	return nil
}

// List returns every transport ordered by id
func (r *TransportRepository) List(ctx context.Context) ([]domain.Transport, error) {
	query := `
		SELECT id, type, line, destination, status
		FROM transports
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query transports: %w", err)
	}
	defer rows.Close()

	results := []domain.Transport{}
	for rows.Next() {
		var t domain.Transport
		if err := rows.Scan(&t.ID, &t.Type, &t.Line, &t.Destination, &t.Status); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan transport: %w", err)
		}
		results = append(results, t)
	}

	return results, rows.Err()
}

// Get returns the transport with id
func (r *TransportRepository) Get(ctx context.Context, id int) (domain.Transport, bool, error) {
	query := `
		SELECT id, type, line, destination, status
		FROM transports
		WHERE id = $1
	`

	var t domain.Transport
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Type, &t.Line, &t.Destination, &t.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Transport{}, false, nil
	}
	if err != nil {
		return domain.Transport{}, false, fmt.Errorf("postgres: failed to get transport %d: %w", id, err)
	}
	return t, true, nil
}

// Add inserts a transport; ids must be unique
func (r *TransportRepository) Add(ctx context.Context, t domain.Transport) (domain.Transport, error) {
	query := `
		INSERT INTO transports (id, type, line, destination, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, t.ID, t.Type, t.Line, t.Destination, t.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Transport{}, fmt.Errorf("postgres: transport %d already exists", t.ID)
		}
		return domain.Transport{}, fmt.Errorf("postgres: failed to insert transport: %w", err)
	}
	return t, nil
}

// Delete removes the transport with id; deleting a missing id is not an error
func (r *TransportRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM transports WHERE id = $1`, id); err != nil {
		return fmt.Errorf("postgres: failed to delete transport %d: %w", id, err)
	}
	return nil
}
