package models

import "time"

// RequestStatus is the friend-link request state
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// LinkStatusApproved is the status of every published friend link
const LinkStatusApproved = "approved"

// FriendLink is a published link in the directory
type FriendLink struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	URL         string    `json:"url" db:"url"`
	Logo        string    `json:"logo" db:"logo"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// FriendLinkInput is the admin create payload
type FriendLinkInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Logo        string `json:"logo"`
	Status      string `json:"status"`
}

// FriendLinkPatch is a partial update keyed by ID
type FriendLinkPatch struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Logo        *string `json:"logo"`
	Status      *string `json:"status"`
}

// IsEmpty reports whether the patch changes nothing
func (p FriendLinkPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.URL == nil && p.Logo == nil && p.Status == nil
}

// FriendLinkRequest is an external submission awaiting approval
type FriendLinkRequest struct {
	ID          int64         `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	URL         string        `json:"url" db:"url"`
	Logo        string        `json:"logo" db:"logo"`
	Email       string        `json:"email" db:"email"`
	Status      RequestStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// FriendLinkRequestInput is the public submission payload
type FriendLinkRequestInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Logo        string `json:"logo"`
	Email       string `json:"email"`
}

// IDRequest is the {id} body used by several POST endpoints
type IDRequest struct {
	ID int64 `json:"id"`
}
