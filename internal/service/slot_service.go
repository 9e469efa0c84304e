package service

import (
	"context"
	"sort"
	"time"

	"github.com/otabek-m/masterbook/internal/model"
	"github.com/otabek-m/masterbook/internal/storage"
	"go.uber.org/zap"
)

// SlotService слот-леджер: доступность и резервирование слотов
type SlotService struct {
	store  storage.Store
	logger *zap.Logger
}

func NewSlotService(store storage.Store, logger *zap.Logger) *SlotService {
	return &SlotService{
		store:  store,
		logger: logger,
	}
}

// DaySlots свободные слоты мастера на одну дату
type DaySlots struct {
	Date  string       `json:"date"`
	Slots []model.Slot `json:"slots"`
}

// GetSlots возвращает свободные слоты мастера на дату (по умолчанию сегодня)
func (s *SlotService) GetSlots(ctx context.Context, masterID, date string) (*DaySlots, error) {
	if date == "" {
		date = today()
	}

	result := &DaySlots{Date: date, Slots: []model.Slot{}}
	err := s.store.View(ctx, func(doc *model.Document) error {
		result.Slots = listAvailableSlots(doc, masterID, date)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// today текущая локальная дата в формате YYYY-MM-DD
func today() string {
	return time.Now().Format("2006-01-02")
}

// listAvailableSlots свободные слоты мастера на дату, по возрастанию времени.
// Времена нулями выровнены (HH:MM), так что строковое сравнение корректно.
func listAvailableSlots(doc *model.Document, masterID, date string) []model.Slot {
	slots := []model.Slot{}
	for _, s := range doc.Slots {
		if s.MasterID == masterID && s.Date == date && !s.IsBooked {
			slots = append(slots, s)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Time < slots[j].Time
	})

	return slots
}

// nextAvailableSlot ближайший свободный слот мастера с датой >= fromDate:
// минимальная пара (date, time) по всему леджеру, без индекса.
// Возвращает nil, если подходящих слотов нет.
func nextAvailableSlot(doc *model.Document, masterID, fromDate string) *model.Slot {
	if fromDate == "" {
		fromDate = today()
	}

	var best *model.Slot
	for i := range doc.Slots {
		s := &doc.Slots[i]
		if s.MasterID != masterID || s.IsBooked || s.Date < fromDate {
			continue
		}
		if best == nil || s.Date+" "+s.Time < best.Date+" "+best.Time {
			best = s
		}
	}

	return best
}

// reserveSlot находит слот по id и masterId (защита от чужих id) и помечает
// занятым. Единственный путь перевода слота в состояние booked.
func reserveSlot(doc *model.Document, slotID, masterID string) (*model.Slot, error) {
	for i := range doc.Slots {
		s := &doc.Slots[i]
		if s.ID != slotID || s.MasterID != masterID {
			continue
		}
		if s.IsBooked {
			return nil, ErrSlotTaken
		}
		s.IsBooked = true
		return s, nil
	}

	return nil, ErrSlotNotFound
}

// releaseSlot снимает бронь со слота. Отсутствующий слот не ошибка:
// отмена бронирования должна проходить, даже если слот был вычищен.
func releaseSlot(doc *model.Document, slotID string) *model.Slot {
	for i := range doc.Slots {
		s := &doc.Slots[i]
		if s.ID == slotID {
			s.IsBooked = false
			return s
		}
	}

	return nil
}
