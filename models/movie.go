package models

type Movie struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Genre           string `json:"genre"`
	PosterURL       string `json:"posterUrl"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}
