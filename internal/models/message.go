package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultAuthor is used when a guestbook message has no author
const DefaultAuthor = "Visitor"

// Message is a guestbook entry
type Message struct {
	ID        int64     `json:"id" db:"id"`
	Author    string    `json:"author" db:"author"`
	Avatar    string    `json:"avatar" db:"avatar"`
	Content   string    `json:"content" db:"content"`
	IsPrivate bool      `json:"is_private" db:"is_private"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MessageInput is the /message/add payload
type MessageInput struct {
	Author    string `json:"author"`
	Avatar    string `json:"avatar"`
	Content   string `json:"content"`
	IsPrivate Flag   `json:"isPrivate"`
	Email     string `json:"email"`
}

// MessagePage is the list response body
type MessagePage struct {
	List  []*Message `json:"list"`
	Total int        `json:"total"`
}

// Flag is a boolean that also accepts 0/1 and "true"/"false"-style strings
type Flag bool

// UnmarshalJSON treats null, 0, "", "0" and "false" as false and any other
// number or string as true
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = false
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "0", "false":
			*f = false
		default:
			*f = true
		}
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flag must be a boolean, number or string: %w", err)
	}
	*f = n != 0
	return nil
}
