// Package journal keeps the conversation log of companion sessions in memory
// and memoises the topic classification of each logged entry.
package journal

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/questme/backend/internal/analysis/topic"
	"github.com/zhouzirui/questme/backend/internal/model/conversation"
)

var (
	ErrCompanionRequired = errors.New("companion id is required")
	ErrSessionNotFound   = errors.New("session not found")
	ErrEmptyText         = errors.New("entry text is empty")
)

// Classifier is the part of topic.Classifier the journal relies on.
type Classifier interface {
	Classify(entry conversation.Entry) topic.Result
}

// Record pairs a logged entry with its classification.
type Record struct {
	Entry  conversation.Entry `json:"entry"`
	Result topic.Result       `json:"result"`
}

// subscriberBuffer bounds how far a slow subscriber may lag before records
// are dropped for it.
const subscriberBuffer = 16

// Service encapsulates conversation log state.
type Service struct {
	classifier Classifier

	mu          sync.RWMutex
	sessions    map[string]conversation.Session
	entries     map[string][]conversation.Entry
	results     map[uuid.UUID]topic.Result
	subscribers map[string]map[int]chan Record
	nextSubID   int
}

// NewService bootstraps the in-memory journal. A nil classifier falls back
// to the built-in keyword rules.
func NewService(classifier Classifier) *Service {
	if classifier == nil {
		classifier = topic.NewClassifier()
	}
	return &Service{
		classifier:  classifier,
		sessions:    make(map[string]conversation.Session),
		entries:     make(map[string][]conversation.Entry),
		results:     make(map[uuid.UUID]topic.Result),
		subscribers: make(map[string]map[int]chan Record),
	}
}

// CreateSession provisions a session bound to a companion.
func (s *Service) CreateSession(_ context.Context, companionID string) (conversation.Session, error) {
	companionID = strings.TrimSpace(companionID)
	if companionID == "" {
		return conversation.Session{}, ErrCompanionRequired
	}

	session := conversation.Session{
		ID:          uuid.NewString(),
		CompanionID: companionID,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.entries[session.ID] = make([]conversation.Entry, 0, 16)
	s.mu.Unlock()

	slog.Info("session created", "component", "journal", "session", session.ID, "companion", companionID)
	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (conversation.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return conversation.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Append logs entry under the session, classifies it and notifies
// subscribers. Classification happens once here; later reads hit the cache.
func (s *Service) Append(_ context.Context, sessionID string, entry conversation.Entry) (Record, error) {
	if strings.TrimSpace(entry.Text) == "" {
		return Record{}, ErrEmptyText
	}

	result := s.classifier.Classify(entry)
	record := Record{Entry: entry, Result: result}

	s.mu.Lock()
	if _, ok := s.sessions[sessionID]; !ok {
		s.mu.Unlock()
		return Record{}, ErrSessionNotFound
	}
	s.entries[sessionID] = append(s.entries[sessionID], entry)
	s.results[entry.ID] = result
	for _, ch := range s.subscribers[sessionID] {
		select {
		case ch <- record:
		default:
			slog.Warn("subscriber lagging, record dropped", "component", "journal", "session", sessionID, "entry", entry.ID)
		}
	}
	s.mu.Unlock()

	return record, nil
}

// Transcript returns the logged entries of the session in append order.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]conversation.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.entries[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]conversation.Entry, len(entries))
	copy(copied, entries)
	return copied, nil
}

// Topics returns one classification per logged entry, in append order.
// Results come from the cache filled by Append.
func (s *Service) Topics(ctx context.Context, sessionID string) ([]topic.Result, error) {
	records, err := s.Records(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	results := make([]topic.Result, len(records))
	for i, r := range records {
		results[i] = r.Result
	}
	return results, nil
}

// Records returns every logged entry of the session with its classification.
func (s *Service) Records(_ context.Context, sessionID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.entries[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	records := make([]Record, len(entries))
	for i, entry := range entries {
		result, cached := s.results[entry.ID]
		if !cached {
			result = s.classifier.Classify(entry)
		}
		records[i] = Record{Entry: entry, Result: result}
	}
	return records, nil
}

// Subscribe streams records appended to the session from now on. The
// returned cancel func must be called to release the subscription; it closes
// the channel.
func (s *Service) Subscribe(_ context.Context, sessionID string) (<-chan Record, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return nil, nil, ErrSessionNotFound
	}

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan Record, subscriberBuffer)
	if s.subscribers[sessionID] == nil {
		s.subscribers[sessionID] = make(map[int]chan Record)
	}
	s.subscribers[sessionID][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers[sessionID], id)
			if len(s.subscribers[sessionID]) == 0 {
				delete(s.subscribers, sessionID)
			}
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}
