package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"graphlit-chat/internal/domain"
	"graphlit-chat/internal/graphql"
)

const (
	defaultFeedOffset = 0
	defaultFeedLimit  = 100
)

// FeedResult conserva la respuesta cruda para mostrarla tal cual.
type FeedResult struct {
	Raw   json.RawMessage
	Feeds []domain.Feed
}

type queryFeedsData struct {
	Feeds *struct {
		Results []domain.Feed `json:"results"`
	} `json:"feeds"`
}

type createFeedData struct {
	CreateFeed *domain.Feed `json:"createFeed"`
}

// FeedService ejecuta las operaciones de feeds, independientes del chat.
type FeedService struct {
	transport graphql.Transport
	logger    *zap.Logger
}

func NewFeedService(transport graphql.Transport, logger *zap.Logger) *FeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedService{transport: transport, logger: logger}
}

func (s *FeedService) List(ctx context.Context, token string, offset, limit int) (FeedResult, error) {
	if s == nil || s.transport == nil {
		return FeedResult{}, ErrServiceNotConfigured
	}
	if strings.TrimSpace(token) == "" {
		return FeedResult{}, ErrNoCredential
	}
	if offset < 0 {
		offset = defaultFeedOffset
	}
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	vars := map[string]any{
		"filter": map[string]any{
			"offset": offset,
			"limit":  limit,
		},
	}
	raw, err := s.transport.Do(ctx, graphql.QueryFeeds, vars, token)
	if err != nil {
		return FeedResult{}, fmt.Errorf("query feeds: %w", err)
	}

	resp, err := graphql.Decode[queryFeedsData](raw)
	if err != nil {
		s.logger.Warn("query feeds decode failed", zap.Error(err))
		return FeedResult{}, fmt.Errorf("query feeds: %w", err)
	}
	result := FeedResult{Raw: raw}
	if resp.Data != nil && resp.Data.Feeds != nil {
		result.Feeds = resp.Data.Feeds.Results
	}
	s.logger.Info("feeds listed", zap.Int("count", len(result.Feeds)))
	return result, nil
}

// Create registra un feed WEB apuntando a uri.
func (s *FeedService) Create(ctx context.Context, token, name, uri string) (FeedResult, error) {
	if s == nil || s.transport == nil {
		return FeedResult{}, ErrServiceNotConfigured
	}
	if err := requireFields("name", name, "uri", uri); err != nil {
		return FeedResult{}, err
	}
	if strings.TrimSpace(token) == "" {
		return FeedResult{}, ErrNoCredential
	}

	vars := map[string]any{
		"feed": map[string]any{
			"type": string(domain.FeedTypeWeb),
			"web": map[string]any{
				"uri": strings.TrimSpace(uri),
			},
			"name": strings.TrimSpace(name),
		},
	}
	raw, err := s.transport.Do(ctx, graphql.CreateFeed, vars, token)
	if err != nil {
		return FeedResult{}, fmt.Errorf("create feed: %w", err)
	}

	resp, err := graphql.Decode[createFeedData](raw)
	if err != nil {
		s.logger.Warn("create feed decode failed", zap.Error(err))
		return FeedResult{}, fmt.Errorf("create feed: %w", err)
	}
	result := FeedResult{Raw: raw}
	if resp.Data != nil && resp.Data.CreateFeed != nil {
		result.Feeds = []domain.Feed{*resp.Data.CreateFeed}
		s.logger.Info("feed created", zap.String("feed_id", resp.Data.CreateFeed.ID))
	}
	return result, nil
}
