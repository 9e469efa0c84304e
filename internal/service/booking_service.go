package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/otabek-m/masterbook/internal/model"
	"github.com/otabek-m/masterbook/internal/storage"
	"go.uber.org/zap"
)

// Notifier уведомления о событиях бронирования (best-effort)
type Notifier interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingCanceled(ctx context.Context, booking *model.Booking)
}

// BookingService букинг-леджер: создание, отмена и история бронирований
type BookingService struct {
	store    storage.Store
	notifier Notifier
	logger   *zap.Logger
}

func NewBookingService(store storage.Store, notifier Notifier, logger *zap.Logger) *BookingService {
	return &BookingService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

type CreateBookingInput struct {
	MasterID    string `json:"masterId"`
	ServiceID   string `json:"serviceId"`
	SlotID      string `json:"slotId"`
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
}

// Create бронирует слот и записывает бронирование. Резервирование слота и
// добавление записи происходят в одном Update, так что на диск они попадают
// как единое целое либо не попадают вовсе.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	if in.MasterID == "" || in.ServiceID == "" || in.SlotID == "" ||
		in.ClientName == "" || in.ClientPhone == "" {
		return nil, ErrInvalidInput
	}

	var booking *model.Booking
	err := s.store.Update(ctx, func(doc *model.Document) error {
		price, ok := priceFor(doc, in.MasterID, in.ServiceID)
		if !ok {
			return ErrServiceNotOffered
		}

		slot, err := reserveSlot(doc, in.SlotID, in.MasterID)
		if err != nil {
			return err
		}

		booking = &model.Booking{
			ID:          uuid.NewString(),
			MasterID:    in.MasterID,
			ServiceID:   in.ServiceID,
			SlotID:      in.SlotID,
			ClientName:  in.ClientName,
			ClientPhone: in.ClientPhone,
			Date:        slot.Date,
			Time:        slot.Time,
			PriceFrom:   price,
			Status:      model.BookingStatusConfirmed,
			CreatedAt:   time.Now().Format(time.RFC3339),
		}
		doc.Bookings = append(doc.Bookings, *booking)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("master_id", booking.MasterID),
		zap.String("slot_id", booking.SlotID),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
	)

	if s.notifier != nil {
		s.notifier.BookingCreated(ctx, booking)
	}

	return booking, nil
}

// Cancel отменяет бронирование и освобождает слот. Повторная отмена
// идемпотентна: возвращает бронирование как есть, без записи на диск.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) (*model.Booking, error) {
	var booking *model.Booking
	alreadyCanceled := false

	err := s.store.Update(ctx, func(doc *model.Document) error {
		var found *model.Booking
		for i := range doc.Bookings {
			if doc.Bookings[i].ID == bookingID {
				found = &doc.Bookings[i]
				break
			}
		}
		if found == nil {
			return ErrBookingNotFound
		}

		if found.Status == model.BookingStatusCanceled {
			alreadyCanceled = true
			b := *found
			booking = &b
			return errNoop
		}

		found.Status = model.BookingStatusCanceled
		if releaseSlot(doc, found.SlotID) == nil {
			// Слот мог быть вычищен, отмену это не ломает
			s.logger.Warn("Slot missing on cancellation",
				zap.String("booking_id", bookingID),
				zap.String("slot_id", found.SlotID),
			)
		}

		b := *found
		booking = &b
		return nil
	})
	if err != nil && err != errNoop {
		return nil, err
	}

	if alreadyCanceled {
		return booking, nil
	}

	s.logger.Info("Booking canceled",
		zap.String("booking_id", booking.ID),
		zap.String("slot_id", booking.SlotID),
	)

	if s.notifier != nil {
		s.notifier.BookingCanceled(ctx, booking)
	}

	return booking, nil
}

// ListByPhone бронирования клиента, свежие записи первыми, с именами мастера
// и услуги для отображения. Пустой телефон даёт пустой список.
func (s *BookingService) ListByPhone(ctx context.Context, phone string) ([]model.BookingView, error) {
	views := []model.BookingView{}
	if phone == "" {
		return views, nil
	}

	err := s.store.View(ctx, func(doc *model.Document) error {
		for _, b := range doc.Bookings {
			if b.ClientPhone != phone {
				continue
			}

			view := model.BookingView{Booking: b}
			for _, m := range doc.Masters {
				if m.ID == b.MasterID {
					view.MasterName = m.Name
					break
				}
			}
			for _, svc := range doc.Services {
				if svc.ID == b.ServiceID {
					view.ServiceName = svc.Name
					break
				}
			}
			views = append(views, view)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Date+" "+views[i].Time > views[j].Date+" "+views[j].Time
	})

	return views, nil
}
