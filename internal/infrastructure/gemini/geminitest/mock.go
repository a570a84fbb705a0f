// Package geminitest provides a testify mock of gemini.Generator.
package geminitest

import (
	"context"

	"github.com/deepgram/gemini-mcp/internal/infrastructure/gemini"
	"github.com/stretchr/testify/mock"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*gemini.GenerateResponse)
	return resp, args.Error(1)
}

// RespondWith expects any Generate call and answers with text.
func (m *MockGenerator) RespondWith(text string) *mock.Call {
	return m.On("Generate", mock.Anything, mock.Anything).
		Return(&gemini.GenerateResponse{Text: text}, nil)
}

// FailWith expects any Generate call and fails it with err.
func (m *MockGenerator) FailWith(err error) *mock.Call {
	return m.On("Generate", mock.Anything, mock.Anything).
		Return(nil, err)
}

// LastRequest returns the request of the most recent Generate call.
func (m *MockGenerator) LastRequest() gemini.GenerateRequest {
	calls := m.Calls
	if len(calls) == 0 {
		return gemini.GenerateRequest{}
	}
	req, _ := calls[len(calls)-1].Arguments.Get(1).(gemini.GenerateRequest)
	return req
}
