// Package conversation holds the records of a companion conversation: the
// session it belongs to and the individual logged turns.
package conversation

import "time"

// Session captures a transient conversation with one companion.
type Session struct {
	ID          string    `json:"id"`
	CompanionID string    `json:"companionId"`
	CreatedAt   time.Time `json:"createdAt"`
}
