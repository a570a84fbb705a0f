package models

import (
	"encoding/json"
	"fmt"
)

// SearchRequest is the input of the gemini_websearch tool.
type SearchRequest struct {
	Query       string                 `json:"query" validate:"required"`
	Language    string                 `json:"language,omitempty"`
	ExtraFields map[string]interface{} `json:"extraFields,omitempty"`
}

// SearchResponse always carries a non-nil Results slice.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// SearchResult is one grounded search hit. Extra holds any fields beyond the
// fixed layout, typically the ones requested through extraFields.
type SearchResult struct {
	Source      string
	Publisher   *string
	Title       string
	Description string
	Image       string
	URL         string
	Extra       map[string]interface{}
}

var knownResultFields = map[string]struct{}{
	"source": {}, "publisher": {}, "title": {}, "description": {},
	"content": {}, "image": {}, "url": {},
}

func (r SearchResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Extra)+6)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["source"] = r.Source
	out["publisher"] = r.Publisher
	out["title"] = r.Title
	out["description"] = r.Description
	out["image"] = r.Image
	out["url"] = r.URL
	return json.Marshal(out)
}

// UnmarshalJSON accepts "content" as an alias of "description" and tolerates
// non-string values in the text fields, which models produce now and then.
func (r *SearchResult) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("search result is null")
	}

	*r = SearchResult{
		Source:      stringField(raw, "source"),
		Title:       stringField(raw, "title"),
		Description: stringField(raw, "description"),
		Image:       stringField(raw, "image"),
		URL:         stringField(raw, "url"),
	}
	if r.Description == "" {
		r.Description = stringField(raw, "content")
	}
	if p, ok := raw["publisher"]; ok && p != nil {
		publisher := stringField(raw, "publisher")
		r.Publisher = &publisher
	}

	for k, v := range raw {
		if _, known := knownResultFields[k]; known {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]interface{})
		}
		r.Extra[k] = v
	}
	return nil
}

func stringField(raw map[string]interface{}, key string) string {
	switch v := raw[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
