package tagging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/questme/backend/internal/analysis/topic"
	"github.com/zhouzirui/questme/backend/internal/model/emotion"
	"github.com/zhouzirui/questme/backend/internal/model/subject"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), nil)
	require.NoError(t, err)
	return svc
}

func TestTagClassifiesText(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.Tag(context.Background(), Request{Speaker: "user", Text: "仕事が大変", Emotion: "sad"})
	require.NoError(t, err)

	assert.Equal(t, subject.Work, out.Result.Subject)
	assert.Equal(t, emotion.Sad, out.Result.DominantEmotion)
	assert.Equal(t, topic.DefaultConfidence, out.Result.Confidence)
	assert.Equal(t, subject.Work, out.Entry.Topic)
	assert.Equal(t, "仕事が大変", out.Entry.Text)
	assert.Equal(t, emotion.Sad, out.Entry.Emotion)
}

func TestTagOverrideEmotion(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.Tag(context.Background(), Request{Text: "家族と話した", Emotion: "neutral", OverrideEmotion: "Happy"})
	require.NoError(t, err)

	assert.Equal(t, subject.Family, out.Result.Subject)
	assert.Equal(t, emotion.Happy, out.Result.DominantEmotion)
	assert.Equal(t, topic.OverrideConfidence, out.Result.Confidence)
	assert.Equal(t, emotion.Neutral, out.Entry.Emotion)
}

func TestTagDefaults(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.Tag(context.Background(), Request{Text: "  こんにちは  "})
	require.NoError(t, err)

	assert.Equal(t, DefaultSpeaker, out.Entry.Speaker)
	assert.Equal(t, "こんにちは", out.Entry.Text)
	assert.Equal(t, emotion.Neutral, out.Result.DominantEmotion)
	assert.Equal(t, subject.General, out.Result.Subject)
}

func TestTagValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Tag(ctx, Request{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = svc.Tag(ctx, Request{Text: "hi", Emotion: "furious"})
	assert.ErrorIs(t, err, ErrUnknownEmotion)

	_, err = svc.Tag(ctx, Request{Text: "hi", OverrideEmotion: "furious"})
	assert.ErrorIs(t, err, ErrUnknownEmotion)
}

func TestTagAll(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	out, err := svc.TagAll(ctx, []Request{
		{Text: "健康第一", Emotion: "encouraging"},
		{Text: "仕事と家族", Emotion: "thinking"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, subject.Health, out[0].Result.Subject)
	assert.Equal(t, subject.Work, out[1].Result.Subject)

	empty, err := svc.TagAll(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.TagAll(ctx, []Request{{Text: "ok"}, {Text: ""}})
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Contains(t, err.Error(), "entry 1")
}

func TestCustomClassifier(t *testing.T) {
	classifier := topic.NewClassifier(topic.WithRules([]topic.Rule{{Keyword: "映画", Subject: subject.Entertainment}}))
	svc, err := NewService(context.Background(), classifier)
	require.NoError(t, err)

	out, err := svc.Tag(context.Background(), Request{Text: "映画を見た"})
	require.NoError(t, err)
	assert.Equal(t, subject.Entertainment, out.Result.Subject)
}
