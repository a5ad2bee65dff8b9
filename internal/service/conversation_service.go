package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"graphlit-chat/internal/domain"
	"graphlit-chat/internal/graphql"
)

// PromptRequest es NewConversation o ContinueConversation.
type PromptRequest interface {
	Variables() map[string]any
	isPromptRequest()
}

// NewConversation omite el id: el servicio remoto crea una conversacion nueva.
type NewConversation struct {
	Text string
}

func (r NewConversation) Variables() map[string]any {
	return map[string]any{"prompt": r.Text}
}

func (NewConversation) isPromptRequest() {}

// ContinueConversation agrega el prompt a una conversacion existente.
type ContinueConversation struct {
	Text string
	ID   string
}

func (r ContinueConversation) Variables() map[string]any {
	return map[string]any{"prompt": r.Text, "id": r.ID}
}

func (ContinueConversation) isPromptRequest() {}

// NewPromptRequest decide la variante a partir del id activo de la sesion.
func NewPromptRequest(session domain.Session, text string) PromptRequest {
	if session.HasConversation() {
		return ContinueConversation{Text: text, ID: session.ConversationID}
	}
	return NewConversation{Text: text}
}

type promptConversationData struct {
	PromptConversation *domain.ConversationResponse `json:"promptConversation"`
}

// ConversationService mantiene la continuidad del id de conversacion.
type ConversationService struct {
	transport graphql.Transport
	logger    *zap.Logger
	now       func() time.Time
}

func NewConversationService(transport graphql.Transport, logger *zap.Logger) *ConversationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationService{
		transport: transport,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Prompt envia el texto y devuelve una copia de la sesion con el id remoto y
// los mensajes user/assistant agregados. La sesion recibida no se modifica.
func (s *ConversationService) Prompt(ctx context.Context, session domain.Session, text string) (domain.Session, string, error) {
	if s == nil || s.transport == nil {
		return session, "", ErrServiceNotConfigured
	}
	if !session.HasCredential() {
		return session, "", ErrNoCredential
	}

	req := NewPromptRequest(session, text)
	raw, err := s.transport.Do(ctx, graphql.PromptConversation, req.Variables(), session.Token)
	if errors.Is(err, graphql.ErrInvalidResponse) {
		return session, "", &ConversationError{Reason: err.Error()}
	}
	if err != nil {
		return session, "", fmt.Errorf("prompt conversation: %w", err)
	}

	resp, err := graphql.Decode[promptConversationData](raw)
	if err != nil {
		return session, "", &ConversationError{Reason: err.Error()}
	}
	gqlErrs := graphql.ErrorMessages(resp.Errors)
	if resp.Data == nil || resp.Data.PromptConversation == nil {
		return session, "", &ConversationError{Reason: "missing promptConversation", GraphQLErrors: gqlErrs}
	}
	conv := resp.Data.PromptConversation
	conversationID := strings.TrimSpace(conv.Conversation.ID)
	if conversationID == "" {
		return session, "", &ConversationError{Reason: "missing conversation id", GraphQLErrors: gqlErrs}
	}
	if conv.Message == nil {
		return session, "", &ConversationError{Reason: "missing message", GraphQLErrors: gqlErrs}
	}
	reply := conv.Message.Message

	if session.HasConversation() && session.ConversationID != conversationID {
		s.logger.Warn("conversation id changed",
			zap.String("previous_id", session.ConversationID),
			zap.String("conversation_id", conversationID),
		)
	}

	updated := session.Clone()
	updated.ConversationID = conversationID
	now := s.now()
	updated.Messages = append(updated.Messages,
		domain.ChatMessage{ID: uuid.NewString(), Role: domain.ChatRoleUser, Content: text, CreatedAt: now},
		domain.ChatMessage{ID: uuid.NewString(), Role: domain.ChatRoleAssistant, Content: reply, CreatedAt: now},
	)

	s.logger.Info("conversation prompted",
		zap.String("conversation_id", conversationID),
		zap.Int("message_count", conv.MessageCount),
		zap.Int("tokens", conv.Message.Tokens),
	)
	return updated, reply, nil
}
