package model

import "time"

// GenerationEvent records that passwords were generated. It never holds the
// passwords or their hashes.
type GenerationEvent struct {
	ID        string    `json:"id"`
	Client    string    `json:"client"`
	Length    int       `json:"length"`
	Lowercase int       `json:"lowercase"`
	Capitals  int       `json:"capitals"`
	Digits    int       `json:"digits"`
	Symbols   int       `json:"symbols"`
	Count     int       `json:"count"`
	Hashed    bool      `json:"hashed"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse lists recent generation events.
type HistoryResponse struct {
	Events []GenerationEvent `json:"events"`
}
