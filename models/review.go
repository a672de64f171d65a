package models

import "time"

const (
	MediaTypePhoto = "photo"
	MediaTypeVideo = "video"
	MediaTypeAudio = "audio"
)

type Review struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	MovieID        string    `json:"movieId"`
	ShowtimeID     string    `json:"showtimeId"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	ReviewDate     time.Time `json:"reviewDate"`
	MediaURL       string    `json:"mediaUrl,omitempty"`
	MediaType      string    `json:"mediaType,omitempty"`
	MovieTitle     string    `json:"movieTitle"`
	MoviePosterURL string    `json:"moviePosterUrl"`
}
