package service

import (
	"context"
	"encoding/json"
)

type transportCall struct {
	operation string
	variables map[string]any
	token     string
}

type mockTransport struct {
	calls     []transportCall
	responses []string
	err       error
}

func (m *mockTransport) Do(_ context.Context, operation string, variables map[string]any, bearerToken string) (json.RawMessage, error) {
	m.calls = append(m.calls, transportCall{operation: operation, variables: variables, token: bearerToken})
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return json.RawMessage(`{}`), nil
	}
	out := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return json.RawMessage(out), nil
}

func (m *mockTransport) lastCall() transportCall {
	if len(m.calls) == 0 {
		return transportCall{}
	}
	return m.calls[len(m.calls)-1]
}

func promptResponse(id, message string) string {
	return `{"data":{"promptConversation":{"conversation":{"id":"` + id + `"},"message":{"role":"ASSISTANT","author":"bot","message":"` + message + `","tokens":12,"completionTime":"00:00:01"},"messageCount":2}}}`
}
