package model

// Document весь стейт приложения: шесть коллекций, читается и пишется целиком
type Document struct {
	Masters        []Master        `json:"masters"`
	Services       []Service       `json:"services"`
	MasterServices []MasterService `json:"masterServices"`
	Slots          []Slot          `json:"slots"`
	Bookings       []Booking       `json:"bookings"`
	Reviews        []Review        `json:"reviews"`
}

// NewDocument пустой документ с инициализированными коллекциями,
// чтобы в JSON уходили [] вместо null
func NewDocument() *Document {
	return &Document{
		Masters:        []Master{},
		Services:       []Service{},
		MasterServices: []MasterService{},
		Slots:          []Slot{},
		Bookings:       []Booking{},
		Reviews:        []Review{},
	}
}
