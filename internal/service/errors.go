package service

import "errors"

// Доменные ошибки. Контроллер маппит их в HTTP-статусы, поэтому набор
// стабильный: клиент ветвится по коду, а не по тексту.
var (
	ErrInvalidInput      = errors.New("missing fields")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrSlotTaken         = errors.New("slot already booked")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrMasterNotFound    = errors.New("master not found")
	ErrServiceNotOffered = errors.New("service not available for this master")
)

// errNoop прерывает Update без записи на диск, когда менять нечего
// (повторная отмена уже отменённого бронирования)
var errNoop = errors.New("no changes")
