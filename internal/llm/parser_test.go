package llm

import (
	"testing"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bare json untouched", content: `[{"id":"1"}]`, want: `[{"id":"1"}]`},
		{name: "json fence", content: "```json\n[1,2]\n```", want: "[1,2]"},
		{name: "plain fence", content: "```\n[1,2]\n```", want: "[1,2]"},
		{name: "surrounding whitespace", content: "  ```json\n{}\n```  ", want: "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.content))
		})
	}
}

func TestParseAssignments(t *testing.T) {
	t.Run("valid response", func(t *testing.T) {
		got, err := parseAssignments("```json\n" + `[
			{"id":"1","name":"milk","category":"Dairy & Eggs"},
			{"id":"2","name":"bread","category":"Bakery"}
		]` + "\n```")
		require.NoError(t, err)
		assert.Equal(t, []model.Assignment{
			{ID: "1", Name: "milk", Category: "Dairy & Eggs"},
			{ID: "2", Name: "bread", Category: "Bakery"},
		}, got)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseAssignments("I could not categorize these items.")
		assert.Error(t, err)
	})

	t.Run("entry missing id fails whole response", func(t *testing.T) {
		_, err := parseAssignments(`[{"id":"1","name":"milk","category":"Dairy & Eggs"},{"name":"bread","category":"Bakery"}]`)
		assert.Error(t, err)
	})

	t.Run("entry missing category fails whole response", func(t *testing.T) {
		_, err := parseAssignments(`[{"id":"1","name":"milk"}]`)
		assert.Error(t, err)
	})
}

func TestParseItemNames(t *testing.T) {
	t.Run("valid response", func(t *testing.T) {
		got, err := parseItemNames("```json\n[\"milk\", \" eggs \", \"bread\"]\n```")
		require.NoError(t, err)
		assert.Equal(t, []string{"milk", "eggs", "bread"}, got)
	})

	t.Run("blank entries dropped", func(t *testing.T) {
		got, err := parseItemNames(`["milk", "", "   "]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"milk"}, got)
	})

	t.Run("all blank is an error", func(t *testing.T) {
		_, err := parseItemNames(`["", " "]`)
		assert.Error(t, err)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := parseItemNames(`{"items": ["milk"]}`)
		assert.Error(t, err)
	})
}
