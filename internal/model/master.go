package model

// Master мастер (провайдер услуг). Справочные данные, не мутируются через API.
type Master struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	District  string   `json:"district"`
	Address   string   `json:"address"`
	Bio       string   `json:"bio"`
	Avatar    string   `json:"avatar"`
	Portfolio []string `json:"portfolio"`
}

// MasterSummary мастер в выдаче поиска: минимальная цена и ближайший слот
type MasterSummary struct {
	Master
	PriceFrom *int      `json:"priceFrom"`
	NextSlot  *NextSlot `json:"nextSlot"`
}

// NextSlot ближайший свободный слот мастера (только дата и время)
type NextSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// MasterDetail карточка мастера: услуги с ценами и отзывы
type MasterDetail struct {
	Master
	Services []OfferedService `json:"services"`
	Reviews  []Review         `json:"reviews"`
}

// OfferedService услуга мастера с ценой и длительностью
type OfferedService struct {
	Service     Service `json:"service"`
	PriceFrom   int     `json:"priceFrom"`
	DurationMin int     `json:"durationMin"`
}
