package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/internal/domain/tools/models"
)

const promptTemplate = `
Search for information about: %q

Please provide the search results in this exact JSON format:
{
    "results": [
        {
            "source": "URL or domain identifier",
            "publisher": "Publisher name or null",
            "title": "Result title",
            "description": "Brief description",
            "image": "Image URL or empty string",
            "url": "Direct link to result"
        }
    ]
}

Guidelines:
- Use the grounded search results to provide factual, up-to-date information
- Include proper source attribution with actual URLs
- Provide %s relevant, high-quality results
- Set publisher to null if unknown
- Use empty string for image if no image available
- Ensure descriptions are informative but concise`

func buildPrompt(req models.SearchRequest, mode config.SearchMode) string {
	count := "5-10"
	if mode == config.SearchModeStrict {
		count = "5-7"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(promptTemplate, req.Query, count))

	if req.Language != "" {
		b.WriteString("\n- Translate result to language: ")
		b.WriteString(req.Language)
	}

	if len(req.ExtraFields) > 0 {
		keys := make([]string, 0, len(req.ExtraFields))
		for k := range req.ExtraFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(fmt.Sprintf("\n- Include these additional fields if possible: %v", keys))
	}

	return b.String()
}
