package search

import "google.golang.org/genai"

// resultsSchema forces the model output to be an array of result records.
func resultsSchema() *genai.Schema {
	nullable := true
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"source":      {Type: genai.TypeString, Description: "URL or domain identifier"},
				"publisher":   {Type: genai.TypeString, Nullable: &nullable},
				"title":       {Type: genai.TypeString},
				"description": {Type: genai.TypeString},
				"image":       {Type: genai.TypeString, Description: "Image URL or empty string"},
				"url":         {Type: genai.TypeString},
			},
			Required:         []string{"source", "publisher", "title", "description", "image", "url"},
			PropertyOrdering: []string{"source", "publisher", "title", "description", "image", "url"},
		},
	}
}
