package domain

import "time"

type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	UserID     string    `json:"userId"`
	AuthorName string    `json:"authorName,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
