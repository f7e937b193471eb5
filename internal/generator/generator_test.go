package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yuhaochen/lexipost/internal/config"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestGenerateWordPost(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GenerateText", mock.Anything, mock.MatchedBy(func(p string) bool {
		return len(p) > 0
	})).Return(sampleOutput, nil)

	g := NewWithProvider(provider, zerolog.Nop())

	post, err := g.GenerateWordPost(context.Background(), "abandon", "CET-4")
	require.NoError(t, err)
	assert.Equal(t, "abandon", post.Word)
	assert.Equal(t, "📚 abandon：这个单词别再记错了！", post.Title)
	provider.AssertExpectations(t)
}

func TestGenerateWordPostPromptMentionsWordAndLevel(t *testing.T) {
	provider := new(MockProvider)
	var captured string
	provider.On("GenerateText", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.String(1) }).
		Return(sampleOutput, nil)

	g := NewWithProvider(provider, zerolog.Nop())
	_, err := g.GenerateWordPost(context.Background(), "serendipity", "GRE")
	require.NoError(t, err)

	assert.Contains(t, captured, "serendipity")
	assert.Contains(t, captured, "GRE")
}

func TestGenerateWordPostProviderError(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GenerateText", mock.Anything, mock.Anything).
		Return("", errors.New("connection refused"))

	g := NewWithProvider(provider, zerolog.Nop())
	_, err := g.GenerateWordPost(context.Background(), "abandon", "CET-4")
	assert.ErrorContains(t, err, "abandon")
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(config.GenerationConfig{Provider: "bard"}, zerolog.Nop())
	assert.Error(t, err)
}
