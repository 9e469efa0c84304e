package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/otabek-m/masterbook/internal/model"
	"go.uber.org/zap"
)

// FileStore документ в одном JSON-файле. Глобальный RWMutex сериализует
// мутации: Update держит эксклюзивную блокировку на весь цикл
// "прочитать-изменить-записать".
type FileStore struct {
	path   string
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewFileStore открывает (или создаёт при первом Update) файл документа
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		logger: logger,
	}

	// Проверяем что файл, если он есть, вообще парсится
	if _, err := os.Stat(path); err == nil {
		if _, err := s.load(); err != nil {
			return nil, fmt.Errorf("open document %s: %w", path, err)
		}
	} else {
		logger.Info("Document file not found, starting empty", zap.String("path", path))
	}

	return s, nil
}

func (s *FileStore) View(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	return fn(doc)
}

func (s *FileStore) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	if err := fn(doc); err != nil {
		// Снапшот отбрасывается, на диск ничего не уходит
		return err
	}

	if err := s.write(doc); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// load читает документ с диска; отсутствующий файл означает пустой документ
func (s *FileStore) load() (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewDocument(), nil
		}
		return nil, err
	}

	doc := model.NewDocument()
	if len(data) > 0 {
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}
	}

	return doc, nil
}

// write пишет во временный файл и переименовывает, чтобы упавший процесс
// не оставил полузаписанный документ
func (s *FileStore) write(doc *model.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}
