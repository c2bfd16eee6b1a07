package models

import "time"

// Teacher represents an instructor record owned by an organization.
type Teacher struct {
	ID          string    `db:"id" json:"id"`
	OrgID       string    `db:"org_id" json:"org_id"`
	FullName    string    `db:"full_name" json:"full_name"`
	DisplayName *string   `db:"display_name" json:"display_name,omitempty"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Name returns the preferred label for calendar cells.
func (t Teacher) Name() string {
	if t.DisplayName != nil && *t.DisplayName != "" {
		return *t.DisplayName
	}
	return t.FullName
}
