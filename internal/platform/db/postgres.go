package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPoolExhausted is returned when no connection became available within the
// acquire timeout while the caller was still waiting.
var ErrPoolExhausted = errors.New("platform/db: connection pool exhausted")

// Querier is the statement surface shared by Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Options configures the process-wide pool.
type Options struct {
	DSN            string
	MaxConns       int32
	AcquireTimeout time.Duration
}

// Pool wraps pgxpool.Pool with a bounded acquire wait.
type Pool struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

var _ Querier = (*Pool)(nil)

// New creates a new PostgreSQL connection pool and verifies it with a ping.
func New(ctx context.Context, opts Options) (*Pool, error) {
	config, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("platform/db: parse config: %w", err)
	}
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("platform/db: new pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("platform/db: ping: %w", err)
	}

	return &Pool{pool: pool, acquireTimeout: opts.AcquireTimeout}, nil
}

// Close waits for acquired connections to be released and closes the pool.
func (p *Pool) Close() {
	p.pool.Close()
}

// Stats is a point-in-time view of pool usage.
type Stats struct {
	AcquiredConns int32
	IdleConns     int32
	MaxConns      int32
	EmptyAcquires int64
}

// Stats reports current pool usage.
func (p *Pool) Stats() Stats {
	st := p.pool.Stat()
	return Stats{
		AcquiredConns: st.AcquiredConns(),
		IdleConns:     st.IdleConns(),
		MaxConns:      st.MaxConns(),
		EmptyAcquires: st.EmptyAcquireCount(),
	}
}

// Ping checks connectivity through a pooled connection.
func (p *Pool) Ping(ctx context.Context) error {
	conn, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return conn.Ping(ctx)
}

func (p *Pool) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx := ctx
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}
	conn, err := p.pool.Acquire(acquireCtx)
	if err != nil {
		return nil, classifyAcquireError(ctx, err)
	}
	return conn, nil
}

func classifyAcquireError(ctx context.Context, err error) error {
	if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return ErrPoolExhausted
	}
	return fmt.Errorf("platform/db: acquire: %w", err)
}

// Exec runs a statement on a pooled connection.
func (p *Pool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	conn, err := p.acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer conn.Release()
	return conn.Exec(ctx, sql, args...)
}

// Query runs a query; the connection is released when the rows are closed.
func (p *Pool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	conn, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		conn.Release()
		return nil, err
	}
	return &releasingRows{Rows: rows, conn: conn}, nil
}

// QueryRow runs a single-row query; the connection is released by Scan.
func (p *Pool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	conn, err := p.acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return &releasingRow{row: conn.QueryRow(ctx, sql, args...), conn: conn}
}

type releasingRows struct {
	pgx.Rows
	conn *pgxpool.Conn
	once sync.Once
}

func (r *releasingRows) Close() {
	r.Rows.Close()
	r.once.Do(r.conn.Release)
}

func (r *releasingRows) Next() bool {
	if r.Rows.Next() {
		return true
	}
	r.Close()
	return false
}

type releasingRow struct {
	row  pgx.Row
	conn *pgxpool.Conn
}

func (r *releasingRow) Scan(dest ...any) error {
	defer r.conn.Release()
	return r.row.Scan(dest...)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
