package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edc/edc/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type LogRepoPG struct {
	pool *pgxpool.Pool
}

func NewLogRepoPG(pool *pgxpool.Pool) *LogRepoPG {
	return &LogRepoPG{pool: pool}
}

// Pool exposes the underlying pool for health checks.
func (r *LogRepoPG) Pool() *pgxpool.Pool {
	return r.pool
}

func (r *LogRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const logCols = `id, action, created_at, metadata`

func scanLog(row pgx.Row) (*Log, error) {
	var l Log
	err := row.Scan(&l.ID, &l.Action, &l.CreatedAt, &l.Metadata)
	return &l, err
}

func (r *LogRepoPG) Insert(ctx context.Context, log *Log) error {
	q := `INSERT INTO audit_logs (id, action, created_at, metadata) VALUES ($1, $2, $3, $4)`
	_, err := r.conn(ctx).Exec(ctx, q, log.ID, log.Action, log.CreatedAt, log.Metadata)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *LogRepoPG) ListRecent(ctx context.Context, limit int) ([]*Log, error) {
	q := fmt.Sprintf("SELECT %s FROM audit_logs ORDER BY created_at DESC LIMIT $1", logCols)
	rows, err := r.conn(ctx).Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent audit logs: %w", err)
	}
	defer rows.Close()

	logs, err := collectLogs(rows)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoLogs
	}
	return logs, nil
}

func (r *LogRepoPG) List(ctx context.Context, limit, offset int) ([]*Log, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM audit_logs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	q := fmt.Sprintf("SELECT %s FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2", logCols)
	rows, err := r.conn(ctx).Query(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	logs, err := collectLogs(rows)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func collectLogs(rows pgx.Rows) ([]*Log, error) {
	var logs []*Log
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
