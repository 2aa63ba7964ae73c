package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSuggestions() []model.Suggestion {
	return []model.Suggestion{
		{ItemID: "1", ItemName: "milk", From: "Other", To: "Dairy & Eggs"},
		{ItemID: "2", ItemName: "bread", From: "Other", To: "Bakery"},
	}
}

func TestReviewSuggestionsAccept(t *testing.T) {
	var output bytes.Buffer
	p := NewPrompter(strings.NewReader("a\n"), &output)

	accepted, err := p.ReviewSuggestions(context.Background(), testSuggestions())
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Contains(t, output.String(), "milk")
	assert.Contains(t, output.String(), "Suggested changes (2)")
}

func TestReviewSuggestionsReject(t *testing.T) {
	var output bytes.Buffer
	p := NewPrompter(strings.NewReader("r\n"), &output)

	accepted, err := p.ReviewSuggestions(context.Background(), testSuggestions())
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestReviewSuggestionsRepromptsOnInvalidInput(t *testing.T) {
	var output bytes.Buffer
	p := NewPrompter(strings.NewReader("what\naccept\n"), &output)

	accepted, err := p.ReviewSuggestions(context.Background(), testSuggestions())
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Contains(t, output.String(), "Please enter A or R")
}

func TestReviewSuggestionsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.ReviewSuggestions(ctx, testSuggestions())
	assert.Error(t, err)
}

func TestConfirmRetry(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "yes long", input: "yes\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "default no", input: "\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &output)

			retry, err := p.ConfirmRetry(context.Background(), "category refinement failed")
			require.NoError(t, err)
			assert.Equal(t, tt.want, retry)
			assert.Contains(t, output.String(), "category refinement failed")
		})
	}
}
