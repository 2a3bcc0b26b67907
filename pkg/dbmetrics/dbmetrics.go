// Package dbmetrics обертка над *sql.DB с публикацией статистики пула соединений
// и протаскиванием активной транзакции через context.
//
// Репозитории не знают, выполняются они в транзакции или нет: GetExecutor
// возвращает транзакцию из контекста, если она там есть, иначе - базовый пул.
package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/avkorn/ABS-AppointmentService/pkg/metrics"
)

// DBExecutor минимальный интерфейс выполнения запросов
// Реализуется *sql.DB, *sql.Tx и *dbmetrics.DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor исполнитель запросов внутри транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// DB обертка над *sql.DB с экспортом метрик пула
type DB struct {
	*sql.DB
}

// WrapWithDefault оборачивает db и запускает фоновый сбор статистики пула
// с дефолтным интервалом. Сбор останавливается при закрытии stopCh.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	return Wrap(db, m, dbName, 15*time.Second, stopCh)
}

// Wrap оборачивает db и запускает фоновый сбор статистики пула с заданным интервалом
func Wrap(db *sql.DB, m *metrics.Metrics, dbName string, interval time.Duration, stopCh <-chan struct{}) *DB {
	wrapped := &DB{DB: db}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var lastWaitCount int64
		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.SetDBPoolStats(dbName,
					stats.OpenConnections,
					stats.InUse,
					stats.Idle,
					stats.WaitCount-lastWaitCount,
				)
				lastWaitCount = stats.WaitCount
			case <-stopCh:
				return
			}
		}
	}()

	return wrapped
}

// BeginTx начинает транзакцию, возвращая TxExecutor
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	return db.DB.BeginTx(ctx, opts)
}

type txContextKey struct{}

// WithTransaction кладет активную транзакцию в контекст
func WithTransaction(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе fallback
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txContextKey{}).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction проверяет, есть ли в контексте активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(TxExecutor)
	return ok
}
