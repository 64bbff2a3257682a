package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/tariffbot/internal/domain/errors"
	"github.com/polkiloo/tariffbot/internal/domain/model"
	"github.com/polkiloo/tariffbot/internal/domain/repository"
)

// pool abstracts pgxpool.Pool so the storage can run against a mock in tests.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: p, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		p.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Orders returns the order repository bound to this storage.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            tg_user_id TEXT NOT NULL,
            chat_id TEXT NOT NULL DEFAULT '',
            tariff_code TEXT NOT NULL,
            amount_kopecks BIGINT NOT NULL CHECK (amount_kopecks > 0),
            provider TEXT NOT NULL,
            provider_order_id TEXT UNIQUE NOT NULL,
            status TEXT NOT NULL DEFAULT 'PENDING',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status_updated ON orders(status, updated_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, tg_user_id, chat_id, tariff_code, amount_kopecks, provider, provider_order_id, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.TgUserID, &o.ChatID, &o.TariffCode, &o.AmountKopecks,
		&o.Provider, &o.ProviderOrderID, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (id, tg_user_id, chat_id, tariff_code, amount_kopecks, provider, provider_order_id, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING created_at, updated_at`

	created := *order
	created.ID = uuid.NewString()
	created.Status = model.OrderStatusPending

	err := r.storage.pool.QueryRow(ctx, query,
		created.ID, created.TgUserID, created.ChatID, created.TariffCode,
		created.AmountKopecks, created.Provider, created.ProviderOrderID, created.Status,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrDuplicateProviderOrderID
		}
		return nil, err
	}

	return &created, nil
}

func (r *orderRepository) GetByProviderOrderID(ctx context.Context, providerOrderID string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE provider_order_id=$1`

	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, providerOrderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// TransitionStatus applies the terminal status with a single conditional
// update guarded by the PENDING state. Concurrent deliveries for the same
// provider order serialize on this statement: only one of them can win.
func (r *orderRepository) TransitionStatus(ctx context.Context, providerOrderID string, target model.OrderStatus) (*model.Order, bool, error) {
	const query = `UPDATE orders SET status=$1, updated_at=NOW()
                   WHERE provider_order_id=$2 AND status='PENDING'
                   RETURNING ` + orderColumns

	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, target, providerOrderID))
	if err == nil {
		return order, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	// No pending row matched: the order is unknown or already terminal.
	existing, err := r.GetByProviderOrderID(ctx, providerOrderID)
	if err != nil {
		return nil, false, err
	}
	if existing.Status == target {
		// Duplicate delivery of the same outcome is a no-op.
		return existing, false, nil
	}
	return nil, false, fmt.Errorf("%w: order %s is %s, refusing %s",
		domainErrors.ErrInvalidTransition, providerOrderID, existing.Status, target)
}

func (r *orderRepository) ListStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE status='PENDING' AND updated_at < $1
                   ORDER BY updated_at
                   LIMIT $2`

	cutoff := time.Now().Add(-olderThan)
	rows, err := r.storage.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// BackfillChatID copies tg_user_id into chat_id for legacy rows missing it.
// Used only by the one-shot migration command; safe to run repeatedly.
func (s *Storage) BackfillChatID(ctx context.Context) (int64, error) {
	const query = `UPDATE orders SET chat_id = tg_user_id WHERE chat_id = '' OR chat_id IS NULL`

	tag, err := s.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("backfill chat_id: %w", err)
	}
	return tag.RowsAffected(), nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
