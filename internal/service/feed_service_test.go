package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"graphlit-chat/internal/graphql"
)

func TestFeedService_List(t *testing.T) {
	body := `{"data":{"feeds":{"results":[{"id":"f1","name":"blog","state":"ENABLED","type":"WEB","readCount":3,"schedulePolicy":{"recurrenceType":"REPEAT","repeatInterval":"PT15M"}}]}}}`
	transport := &mockTransport{responses: []string{body}}
	svc := NewFeedService(transport, zap.NewNop())

	out, err := svc.List(context.Background(), "tok", 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	call := transport.lastCall()
	if call.operation != graphql.QueryFeeds || call.token != "tok" {
		t.Fatalf("unexpected call %+v", call)
	}
	filter, ok := call.variables["filter"].(map[string]any)
	if !ok || filter["offset"] != 0 || filter["limit"] != 100 {
		t.Fatalf("expected default filter, got %+v", call.variables)
	}
	if string(out.Raw) != body {
		t.Fatalf("expected raw body preserved")
	}
	if len(out.Feeds) != 1 || out.Feeds[0].ID != "f1" || out.Feeds[0].SchedulePolicy == nil || out.Feeds[0].SchedulePolicy.RepeatInterval != "PT15M" {
		t.Fatalf("unexpected feeds %+v", out.Feeds)
	}
}

func TestFeedService_Create(t *testing.T) {
	body := `{"data":{"createFeed":{"id":"f2","name":"docs","state":"ENABLED","type":"WEB"}}}`
	transport := &mockTransport{responses: []string{body}}
	svc := NewFeedService(transport, zap.NewNop())

	out, err := svc.Create(context.Background(), "tok", " docs ", " https://example.com ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	call := transport.lastCall()
	if call.operation != graphql.CreateFeed {
		t.Fatalf("expected CreateFeed operation")
	}
	feed, ok := call.variables["feed"].(map[string]any)
	if !ok {
		t.Fatalf("expected feed variable, got %+v", call.variables)
	}
	web, _ := feed["web"].(map[string]any)
	if feed["type"] != "WEB" || feed["name"] != "docs" || web["uri"] != "https://example.com" {
		t.Fatalf("unexpected feed variables %+v", feed)
	}
	if len(out.Feeds) != 1 || out.Feeds[0].ID != "f2" {
		t.Fatalf("unexpected created feed %+v", out.Feeds)
	}
}

func TestFeedService_Failures(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		transport := &mockTransport{}
		svc := NewFeedService(transport, zap.NewNop())
		_, err := svc.Create(context.Background(), "tok", "", "")
		var verr *ValidationError
		if !errors.As(err, &verr) || len(verr.Fields) != 2 {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(transport.calls) != 0 {
			t.Fatalf("expected no request")
		}
	})

	t.Run("no credential", func(t *testing.T) {
		svc := NewFeedService(&mockTransport{}, zap.NewNop())
		if _, err := svc.List(context.Background(), "", 0, 10); !errors.Is(err, ErrNoCredential) {
			t.Fatalf("expected ErrNoCredential, got %v", err)
		}
	})

	t.Run("transport error", func(t *testing.T) {
		transport := &mockTransport{err: &graphql.TransportError{StatusCode: http.StatusInternalServerError, Body: "boom"}}
		svc := NewFeedService(transport, zap.NewNop())
		_, err := svc.List(context.Background(), "tok", 0, 10)
		var terr *graphql.TransportError
		if !errors.As(err, &terr) || terr.Body != "boom" {
			t.Fatalf("expected TransportError, got %v", err)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		if _, err := NewFeedService(nil, nil).List(context.Background(), "tok", 0, 10); !errors.Is(err, ErrServiceNotConfigured) {
			t.Fatalf("expected ErrServiceNotConfigured, got %v", err)
		}
	})
}

func TestFeedService_InvalidBody(t *testing.T) {
	t.Run("transport rejects body", func(t *testing.T) {
		transport := &mockTransport{err: &graphql.DecodeError{Body: "<html>", Err: errors.New("body is not valid json")}}
		svc := NewFeedService(transport, zap.NewNop())
		if _, err := svc.List(context.Background(), "tok", 0, 10); !errors.Is(err, graphql.ErrInvalidResponse) {
			t.Fatalf("expected ErrInvalidResponse, got %v", err)
		}
	})

	t.Run("list decode failure", func(t *testing.T) {
		svc := NewFeedService(&mockTransport{responses: []string{`<html>maintenance</html>`}}, zap.NewNop())
		out, err := svc.List(context.Background(), "tok", 0, 10)
		if !errors.Is(err, graphql.ErrInvalidResponse) {
			t.Fatalf("expected ErrInvalidResponse, got %v", err)
		}
		if len(out.Raw) != 0 {
			t.Fatalf("expected no payload on failure")
		}
	})

	t.Run("create decode failure", func(t *testing.T) {
		svc := NewFeedService(&mockTransport{responses: []string{`{"data":{"createFeed":"oops"}}`}}, zap.NewNop())
		if _, err := svc.Create(context.Background(), "tok", "docs", "https://example.com"); !errors.Is(err, graphql.ErrInvalidResponse) {
			t.Fatalf("expected ErrInvalidResponse, got %v", err)
		}
	})
}
