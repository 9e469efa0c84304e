package model

// Service услуга из каталога (маникюр, стрижка и т.д.)
type Service struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
