package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/otabek-m/masterbook/internal/model"
	"go.uber.org/zap"
)

// PostgresStore тот же документ, но в одной jsonb-строке. Update берёт
// строку через SELECT ... FOR UPDATE, так что конкурирующие бронирования
// одного слота выстраиваются в очередь на уровне БД.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore создаёт хранилище поверх готового пула.
// Таблицу app_document создаёт миграция (см. internal/app/migrator.go).
func NewPostgresStore(pool *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		logger: logger,
	}
}

func (s *PostgresStore) View(ctx context.Context, fn func(doc *model.Document) error) error {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM app_document WHERE id = 1`).Scan(&raw)
	if err != nil {
		return fmt.Errorf("select document: %w", err)
	}

	doc, err := unmarshalDocument(raw)
	if err != nil {
		return err
	}

	return fn(doc)
}

func (s *PostgresStore) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var raw []byte
	err = tx.QueryRow(ctx, `SELECT doc FROM app_document WHERE id = 1 FOR UPDATE`).Scan(&raw)
	if err != nil {
		return fmt.Errorf("select document for update: %w", err)
	}

	doc, err := unmarshalDocument(raw)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		// Rollback через defer, в БД ничего не меняется
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE app_document SET doc = $1 WHERE id = 1`, data); err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	s.logger.Debug("Closing postgres document store")
	s.pool.Close()
	return nil
}

func unmarshalDocument(raw []byte) (*model.Document, error) {
	doc := model.NewDocument()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, doc); err != nil {
			return nil, fmt.Errorf("unmarshal document: %w", err)
		}
	}
	return doc, nil
}
