package model

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusCanceled  BookingStatus = "canceled"  // Отменено клиентом
)

// Booking запись клиента на слот. Дата, время и цена снимаются в момент
// создания, чтобы последующие правки каталога не меняли историю.
type Booking struct {
	ID          string        `json:"id"`
	MasterID    string        `json:"masterId"`
	ServiceID   string        `json:"serviceId"`
	SlotID      string        `json:"slotId"`
	ClientName  string        `json:"clientName"`
	ClientPhone string        `json:"clientPhone"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	PriceFrom   int           `json:"priceFrom"`
	Status      BookingStatus `json:"status"`
	CreatedAt   string        `json:"createdAt"` // ISO-8601
}

// BookingView бронирование с именами для экрана "мои записи"
type BookingView struct {
	Booking
	MasterName  string `json:"masterName,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`
}
