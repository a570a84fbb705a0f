package models

import "encoding/json"

// ParseFailureMessage is the error text of a Diagnostic outcome.
const ParseFailureMessage = "Failed to parse JSON response"

// CallRequest is the input of the gemini_call tool.
type CallRequest struct {
	Prompt       string                 `json:"prompt" validate:"required"`
	Args         map[string]interface{} `json:"args,omitempty"`
	OutputSchema map[string]interface{} `json:"outputSchema" validate:"required,min=1"`
}

// Outcome is either Success or Diagnostic.
type Outcome interface {
	isOutcome()
}

// Success carries the parsed model output.
type Success struct {
	Value interface{}
}

// Diagnostic replaces output that could not be parsed.
type Diagnostic struct {
	Error       string `json:"error"`
	RawResponse string `json:"raw_response"`
}

func (Success) isOutcome()    {}
func (Diagnostic) isOutcome() {}

// CallResponse serialises as {"output": <value>} for either outcome.
type CallResponse struct {
	Output Outcome
}

func (r CallResponse) MarshalJSON() ([]byte, error) {
	var output interface{}
	switch o := r.Output.(type) {
	case Success:
		output = o.Value
	case *Success:
		output = o.Value
	case Diagnostic:
		output = o
	case *Diagnostic:
		output = o
	}
	return json.Marshal(struct {
		Output interface{} `json:"output"`
	}{output})
}
