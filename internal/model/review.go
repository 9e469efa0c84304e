package model

// Review отзыв о мастере
type Review struct {
	ID       string `json:"id"`
	MasterID string `json:"masterId"`
	Author   string `json:"author"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
}
