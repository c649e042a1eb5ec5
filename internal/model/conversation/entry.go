package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/questme/backend/internal/model/emotion"
	"github.com/zhouzirui/questme/backend/internal/model/subject"
)

// Entry records one logged conversational turn. Entries are created once and
// passed by value; nothing mutates them after NewEntry returns.
type Entry struct {
	ID        uuid.UUID       `json:"id"`
	Speaker   string          `json:"speaker"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"createdAt"`
	Emotion   emotion.Kind    `json:"emotion"`
	Topic     subject.Subject `json:"topic"`
}

// EntryOption customises NewEntry.
type EntryOption func(*Entry)

// WithID sets a caller-chosen identifier, e.g. when rehydrating a stored turn.
func WithID(id uuid.UUID) EntryOption {
	return func(e *Entry) { e.ID = id }
}

// WithCreatedAt sets the creation time instead of now.
func WithCreatedAt(at time.Time) EntryOption {
	return func(e *Entry) { e.CreatedAt = at }
}

// NewEntry creates an entry with a fresh ID stamped with the current UTC time.
func NewEntry(speaker, text string, kind emotion.Kind, topic subject.Subject, opts ...EntryOption) Entry {
	entry := Entry{
		ID:        uuid.New(),
		Speaker:   speaker,
		Text:      text,
		CreatedAt: time.Now().UTC(),
		Emotion:   kind,
		Topic:     topic,
	}
	for _, opt := range opts {
		opt(&entry)
	}
	return entry
}
