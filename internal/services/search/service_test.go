package search

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/internal/domain/tools/models"
	"github.com/deepgram/gemini-mcp/internal/infrastructure/gemini/geminitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func lenientConfig() config.GeminiConfig {
	return config.GeminiConfig{APIKey: "k", Model: "gemini-test", SearchMode: config.SearchModeLenient}
}

func strictConfig() config.GeminiConfig {
	return config.GeminiConfig{APIKey: "k", Model: "gemini-test", SearchMode: config.SearchModeStrict}
}

const twoResults = `{"results": [
	{"source": "go.dev", "publisher": "The Go Authors", "title": "Go", "description": "The Go language", "image": "", "url": "https://go.dev"},
	{"source": "pkg.go.dev", "publisher": null, "title": "Packages", "content": "Package index", "image": "https://pkg.go.dev/logo.png", "url": "https://pkg.go.dev"}
]}`

func TestSearch(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.GeminiConfig
		modelText  string
		wantTitles []string
	}{
		{
			name:       "clean results object",
			cfg:        lenientConfig(),
			modelText:  twoResults,
			wantTitles: []string{"Go", "Packages"},
		},
		{
			name:       "fenced results object",
			cfg:        lenientConfig(),
			modelText:  "Here is what I found:\n```json\n" + twoResults + "\n```",
			wantTitles: []string{"Go", "Packages"},
		},
		{
			name:       "bare array in strict mode",
			cfg:        strictConfig(),
			modelText:  `[{"source":"a","publisher":null,"title":"A","description":"d","image":"","url":"u"}]`,
			wantTitles: []string{"A"},
		},
		{
			name:       "empty results",
			cfg:        lenientConfig(),
			modelText:  `{"results": []}`,
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &geminitest.MockGenerator{}
			gen.RespondWith(tt.modelText)

			svc := NewService(gen, tt.cfg)
			resp, err := svc.Search(context.Background(), models.SearchRequest{Query: "golang"})
			require.NoError(t, err)
			require.NotNil(t, resp.Results)

			titles := make([]string, 0, len(resp.Results))
			for _, r := range resp.Results {
				titles = append(titles, r.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
			gen.AssertExpectations(t)
		})
	}
}

func TestSearchPreservesFieldsAndOrder(t *testing.T) {
	gen := &geminitest.MockGenerator{}
	gen.RespondWith(twoResults)

	resp, err := NewService(gen, lenientConfig()).Search(context.Background(), models.SearchRequest{Query: "golang"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	first := resp.Results[0]
	require.NotNil(t, first.Publisher)
	assert.Equal(t, "The Go Authors", *first.Publisher)
	assert.Equal(t, "https://go.dev", first.URL)

	second := resp.Results[1]
	assert.Nil(t, second.Publisher)
	assert.Equal(t, "Package index", second.Description)
	assert.Equal(t, "https://pkg.go.dev/logo.png", second.Image)
}

func TestSearchLenientFallback(t *testing.T) {
	longText := strings.Repeat("é", 250)

	tests := []struct {
		name            string
		modelText       string
		wantDescription string
	}{
		{
			name:            "plain prose",
			modelText:       "I could not find anything useful.",
			wantDescription: "I could not find anything useful.",
		},
		{
			name:            "long prose is cut at 200 characters",
			modelText:       longText,
			wantDescription: strings.Repeat("é", 200) + "...",
		},
		{
			name:            "json without results",
			modelText:       `{"answer": "42"}`,
			wantDescription: `{"answer": "42"}`,
		},
		{
			name:            "broken json",
			modelText:       `{"results": [ {"title": }`,
			wantDescription: `{"results": [ {"title": }`,
		},
		{
			name:            "empty text",
			modelText:       "",
			wantDescription: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &geminitest.MockGenerator{}
			gen.RespondWith(tt.modelText)

			resp, err := NewService(gen, lenientConfig()).Search(context.Background(), models.SearchRequest{Query: "rare topic"})
			require.NoError(t, err)
			require.Len(t, resp.Results, 1)

			r := resp.Results[0]
			assert.Equal(t, "gemini-search", r.Source)
			require.NotNil(t, r.Publisher)
			assert.Equal(t, "Google Gemini", *r.Publisher)
			assert.Equal(t, "Search results for: rare topic", r.Title)
			assert.Equal(t, tt.wantDescription, r.Description)
			assert.Empty(t, r.Image)
			assert.Empty(t, r.URL)
		})
	}
}

func TestSearchStrictModeReportsMalformedOutput(t *testing.T) {
	gen := &geminitest.MockGenerator{}
	gen.RespondWith("Sorry, no JSON today")

	resp, err := NewService(gen, strictConfig()).Search(context.Background(), models.SearchRequest{Query: "golang"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, models.ErrMalformedOutput)
}

func TestSearchInvalidArgument(t *testing.T) {
	gen := &geminitest.MockGenerator{}

	resp, err := NewService(gen, lenientConfig()).Search(context.Background(), models.SearchRequest{})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestSearchNotConfigured(t *testing.T) {
	resp, err := NewService(nil, config.GeminiConfig{}).Search(context.Background(), models.SearchRequest{Query: "golang"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, models.ErrNotConfigured)
}

func TestSearchUpstreamFailure(t *testing.T) {
	gen := &geminitest.MockGenerator{}
	gen.FailWith(errors.New("quota exceeded"))

	resp, err := NewService(gen, lenientConfig()).Search(context.Background(), models.SearchRequest{Query: "golang"})

	assert.Nil(t, resp)
	var upstream *models.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "web search failed: quota exceeded", err.Error())
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestSearchRequestShape(t *testing.T) {
	t.Run("lenient", func(t *testing.T) {
		gen := &geminitest.MockGenerator{}
		gen.RespondWith(`{"results":[]}`)

		_, err := NewService(gen, lenientConfig()).Search(context.Background(), models.SearchRequest{
			Query:       "golang",
			Language:    "French",
			ExtraFields: map[string]interface{}{"author": map[string]interface{}{"type": "string"}, "date": nil},
		})
		require.NoError(t, err)

		req := gen.LastRequest()
		assert.True(t, req.Grounding)
		assert.Nil(t, req.ResponseSchema)
		assert.Equal(t, "gemini-test", req.Model)
		assert.Contains(t, req.Prompt, `Search for information about: "golang"`)
		assert.Contains(t, req.Prompt, "Provide 5-10 relevant")
		assert.Contains(t, req.Prompt, "- Translate result to language: French")
		assert.Contains(t, req.Prompt, "- Include these additional fields if possible: [author date]")
	})

	t.Run("strict", func(t *testing.T) {
		gen := &geminitest.MockGenerator{}
		gen.RespondWith(`[]`)

		_, err := NewService(gen, strictConfig()).Search(context.Background(), models.SearchRequest{Query: "golang"})
		require.NoError(t, err)

		req := gen.LastRequest()
		assert.True(t, req.Grounding)
		require.NotNil(t, req.ResponseSchema)
		assert.NotNil(t, req.ResponseSchema.Items)
		assert.Contains(t, req.Prompt, "Provide 5-7 relevant")
		assert.NotContains(t, req.Prompt, "Translate result")
		assert.NotContains(t, req.Prompt, "additional fields")
	})
}

func TestSearchResponseAlwaysHasResultsKey(t *testing.T) {
	gen := &geminitest.MockGenerator{}
	gen.RespondWith(`{"results": null}`)

	resp, err := NewService(gen, lenientConfig()).Search(context.Background(), models.SearchRequest{Query: "golang"})
	require.NoError(t, err)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[]}`, string(data))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "", truncate("", 2))
}
