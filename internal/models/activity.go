package models

import "time"

// DateLayout is the wire and storage format of Activity.Date
const DateLayout = "2006-01-02"

// Activity is one day's mood entry, unique per date
type Activity struct {
	ID          int64     `json:"id" db:"id"`
	Date        string    `json:"date" db:"date"`
	Mood        string    `json:"mood" db:"mood"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ActivityInput is the upsert payload, also accepted as form fields
type ActivityInput struct {
	Date        string `json:"date" form:"date"`
	Mood        string `json:"mood" form:"mood"`
	Description string `json:"description" form:"description"`
	Key         string `json:"key" form:"key"`
}

// ActivityFilter bounds an activity listing; empty dates are open ends
type ActivityFilter struct {
	StartDate string
	EndDate   string
	Limit     int
}
