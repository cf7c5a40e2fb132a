package domain

import "time"

// AuditFields holds the row timestamps of stored records.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
