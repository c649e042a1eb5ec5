// Package tagging turns raw tagging requests into classified conversation
// entries. The steps run as a compiled eino chain: request parsing builds the
// entry, then the topic classifier tags it.
package tagging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/zhouzirui/questme/backend/internal/analysis/topic"
	"github.com/zhouzirui/questme/backend/internal/model/conversation"
	"github.com/zhouzirui/questme/backend/internal/model/emotion"
)

var (
	ErrEmptyText      = errors.New("text is required")
	ErrUnknownEmotion = errors.New("unknown emotion")
)

// DefaultSpeaker is used when a request names no speaker.
const DefaultSpeaker = "user"

// Request is one turn to be tagged.
type Request struct {
	Speaker         string `json:"speaker"`
	Text            string `json:"text"`
	Emotion         string `json:"emotion"`
	OverrideEmotion string `json:"overrideEmotion,omitempty"`
}

// Outcome is the tagged entry and its classification.
type Outcome struct {
	Entry  conversation.Entry `json:"entry"`
	Result topic.Result       `json:"result"`
}

// draft is a validated request on its way through the chain.
type draft struct {
	speaker  string
	text     string
	kind     emotion.Kind
	override emotion.Kind
}

// Service runs the tagging chain.
type Service struct {
	classifier *topic.Classifier
	runnable   compose.Runnable[Request, Outcome]
}

// NewService compiles the tagging chain around classifier. A nil classifier
// uses the built-in keyword rules.
func NewService(ctx context.Context, classifier *topic.Classifier) (*Service, error) {
	if classifier == nil {
		classifier = topic.NewClassifier()
	}
	svc := &Service{classifier: classifier}

	chain := compose.NewChain[Request, Outcome]()
	chain.AppendLambda(compose.InvokableLambda(buildDraft))
	chain.AppendLambda(compose.InvokableLambda(svc.classify))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile tagging chain: %w", err)
	}
	svc.runnable = runnable
	return svc, nil
}

// Tag parses req into an entry and classifies it.
func (s *Service) Tag(ctx context.Context, req Request) (Outcome, error) {
	return s.runnable.Invoke(ctx, req)
}

// TagAll tags each request in order and stops at the first failure.
func (s *Service) TagAll(ctx context.Context, reqs []Request) ([]Outcome, error) {
	out := make([]Outcome, 0, len(reqs))
	for i, req := range reqs {
		outcome, err := s.Tag(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, outcome)
	}
	return out, nil
}

func buildDraft(_ context.Context, req Request) (draft, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return draft{}, ErrEmptyText
	}

	kind := emotion.Neutral
	if strings.TrimSpace(req.Emotion) != "" {
		parsed, ok := emotion.ParseKind(req.Emotion)
		if !ok {
			return draft{}, fmt.Errorf("%w: %q", ErrUnknownEmotion, req.Emotion)
		}
		kind = parsed
	}

	var override emotion.Kind
	if strings.TrimSpace(req.OverrideEmotion) != "" {
		parsed, ok := emotion.ParseKind(req.OverrideEmotion)
		if !ok {
			return draft{}, fmt.Errorf("%w: %q", ErrUnknownEmotion, req.OverrideEmotion)
		}
		override = parsed
	}

	speaker := strings.TrimSpace(req.Speaker)
	if speaker == "" {
		speaker = DefaultSpeaker
	}

	return draft{speaker: speaker, text: text, kind: kind, override: override}, nil
}

func (s *Service) classify(_ context.Context, d draft) (Outcome, error) {
	entry := conversation.NewEntry(d.speaker, d.text, d.kind, s.classifier.InferSubject(d.text))

	var result topic.Result
	if d.override != "" {
		result = s.classifier.ClassifyWithEmotion(entry, d.override)
	} else {
		result = s.classifier.Classify(entry)
	}
	return Outcome{Entry: entry, Result: result}, nil
}
