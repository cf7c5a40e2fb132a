package models

import "time"

// AuditFields are the row timestamps shared by stored records.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
