package model

// MasterService связка мастер-услуга: цена "от" и длительность
type MasterService struct {
	ID          string `json:"id"`
	MasterID    string `json:"masterId"`
	ServiceID   string `json:"serviceId"`
	PriceFrom   int    `json:"priceFrom"`   // в тийинах/копейках
	DurationMin int    `json:"durationMin"` // в минутах
}
