package model

// Slot единица записи: один мастер, одна дата, одно время.
// IsBooked единственный источник правды о доступности, слоты не удаляются.
type Slot struct {
	ID       string `json:"id"`
	MasterID string `json:"masterId"`
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM
	IsBooked bool   `json:"isBooked"`
}
