package models

// Theater capacity is the immutable ceiling for a showtime's available seats.
type Theater struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}
