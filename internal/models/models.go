package models

import (
	"time"

	"github.com/google/uuid"
)

type Actor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Grade     int       `json:"grade"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Form struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Target    string    `json:"target"`
	SignGrade int       `json:"signGrade"`
	ExecGrade int       `json:"execGrade"`
	Signed    bool      `json:"signed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
