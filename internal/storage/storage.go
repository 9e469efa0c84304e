package storage

import (
	"context"

	"github.com/otabek-m/masterbook/internal/model"
)

// Store порт документного хранилища. Весь стейт читается и пишется как один
// документ (см. db.json), поэтому вместо репозиториев по сущностям здесь две
// операции над снапшотом.
type Store interface {
	// View выполняет fn над read-only снапшотом документа
	View(ctx context.Context, fn func(doc *model.Document) error) error

	// Update выполняет fn над мутабельным снапшотом и атомарно сохраняет
	// документ, если fn вернула nil. При ошибке fn ничего не пишется —
	// это единственная точка, закрывающая гонку "прочитал-проверил-записал"
	// при одновременных бронированиях одного слота.
	Update(ctx context.Context, fn func(doc *model.Document) error) error

	// Close освобождает ресурсы хранилища
	Close() error
}
