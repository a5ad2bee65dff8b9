package http

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"graphlit-chat/internal/service"
)

// ChatHandler expone el orquestador por HTTP. El mutex hace que el
// orquestador siga teniendo un unico escritor aunque gin atienda en paralelo.
type ChatHandler struct {
	logger *zap.Logger
	mu     sync.Mutex
	chat   *service.ChatOrchestrator
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chat *service.ChatOrchestrator) *ChatHandler {
	return &ChatHandler{
		logger: logger,
		chat:   chat,
	}
}

// GenerateCredential maneja POST /credentials.
func (h *ChatHandler) GenerateCredential(c *gin.Context) {
	var req struct {
		SecretKey      string `json:"secret_key"`
		EnvironmentID  string `json:"environment_id"`
		OrganizationID string `json:"organization_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid credential request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	h.mu.Lock()
	out := h.chat.GenerateCredential(req.SecretKey, req.EnvironmentID, req.OrganizationID)
	cred, _ := h.chat.Credential()
	h.mu.Unlock()

	if !out.OK() {
		h.respond(c, out)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"outcome":    out,
		"expires_at": cred.ExpiresAt,
		"role":       cred.Role,
	})
}

// Submit maneja POST /chat.
func (h *ChatHandler) Submit(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	h.mu.Lock()
	out := h.chat.Submit(c.Request.Context(), req.Prompt)
	messages := h.chat.Messages()
	conversationID := h.chat.ConversationID()
	h.mu.Unlock()

	c.JSON(statusFor(out), gin.H{
		"outcome":         out,
		"conversation_id": conversationID,
		"messages":        messages,
	})
}

// ListMessages maneja GET /chat/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	h.mu.Lock()
	messages := h.chat.Messages()
	conversationID := h.chat.ConversationID()
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conversationID,
		"messages":        messages,
	})
}

// ListFeeds maneja GET /feeds.
func (h *ChatHandler) ListFeeds(c *gin.Context) {
	h.mu.Lock()
	out := h.chat.ListFeeds(c.Request.Context())
	h.mu.Unlock()
	h.respond(c, out)
}

// CreateFeed maneja POST /feeds.
func (h *ChatHandler) CreateFeed(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
		URI  string `json:"uri"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create feed request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	h.mu.Lock()
	out := h.chat.CreateFeed(c.Request.Context(), req.Name, req.URI)
	h.mu.Unlock()
	h.respond(c, out)
}

func (h *ChatHandler) respond(c *gin.Context, out service.Outcome) {
	if out.Err != nil {
		h.logger.Warn("action failed", zap.String("kind", string(out.Kind)), zap.Error(out.Err))
	}
	c.JSON(statusFor(out), gin.H{"outcome": out})
}

func statusFor(out service.Outcome) int {
	switch out.Kind {
	case service.OutcomeOK, service.OutcomeIgnored:
		return http.StatusOK
	case service.OutcomeValidation:
		return http.StatusBadRequest
	case service.OutcomeCredentialRequired:
		return http.StatusUnauthorized
	case service.OutcomeTransport, service.OutcomeConversation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
