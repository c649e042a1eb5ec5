// Package topic infers what a conversational turn is about by keyword
// matching over its text.
package topic

import (
	"strings"

	"github.com/zhouzirui/questme/backend/internal/model/conversation"
	"github.com/zhouzirui/questme/backend/internal/model/emotion"
	"github.com/zhouzirui/questme/backend/internal/model/subject"
)

// Fixed confidences reported by the two classification paths. They are not
// derived from match strength.
const (
	DefaultConfidence  = 0.85
	OverrideConfidence = 0.90
)

// Result is the outcome of classifying one entry.
type Result struct {
	Subject         subject.Subject `json:"subject"`
	DominantEmotion emotion.Kind    `json:"dominantEmotion"`
	Confidence      float64         `json:"confidence"`
}

// Rule maps a keyword substring to a subject.
type Rule struct {
	Keyword string
	Subject subject.Subject
}

// defaultRules are evaluated in order; the first keyword found wins.
var defaultRules = []Rule{
	{Keyword: "仕事", Subject: subject.Work},
	{Keyword: "家族", Subject: subject.Family},
	{Keyword: "健康", Subject: subject.Health},
}

// DefaultRules returns a copy of the built-in rule list.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}

// Classifier maps entries to results. It holds no mutable state and is safe
// for concurrent use.
type Classifier struct {
	rules    []Rule
	fallback subject.Subject
}

// Option customises a Classifier.
type Option func(*Classifier)

// WithRules replaces the built-in rule list. Rules with an empty keyword are
// dropped since they would match every text.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		filtered := make([]Rule, 0, len(rules))
		for _, r := range rules {
			if r.Keyword == "" {
				continue
			}
			filtered = append(filtered, r)
		}
		c.rules = filtered
	}
}

// NewClassifier returns a classifier using the built-in rules unless overridden.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		rules:    DefaultRules(),
		fallback: subject.General,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify infers the subject of entry and keeps the entry's own emotion.
func (c *Classifier) Classify(entry conversation.Entry) Result {
	return Result{
		Subject:         c.InferSubject(entry.Text),
		DominantEmotion: entry.Emotion,
		Confidence:      DefaultConfidence,
	}
}

// ClassifyAll classifies each entry in order. An empty input yields an empty,
// non-nil slice.
func (c *Classifier) ClassifyAll(entries []conversation.Entry) []Result {
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		results = append(results, c.Classify(entry))
	}
	return results
}

// ClassifyWithEmotion classifies entry but reports kind as the dominant
// emotion, with the higher override confidence.
func (c *Classifier) ClassifyWithEmotion(entry conversation.Entry, kind emotion.Kind) Result {
	return Result{
		Subject:         c.InferSubject(entry.Text),
		DominantEmotion: kind,
		Confidence:      OverrideConfidence,
	}
}

// InferSubject returns the subject of the first rule whose keyword occurs in
// text, or general when none does.
func (c *Classifier) InferSubject(text string) subject.Subject {
	for _, rule := range c.rules {
		if strings.Contains(text, rule.Keyword) {
			return rule.Subject
		}
	}
	return c.fallback
}
