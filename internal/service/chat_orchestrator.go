package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"graphlit-chat/internal/domain"
	"graphlit-chat/internal/graphql"
)

// OutcomeKind clasifica el resultado de cada accion del usuario.
type OutcomeKind string

const (
	OutcomeOK                 OutcomeKind = "ok"
	OutcomeIgnored            OutcomeKind = "ignored"
	OutcomeCredentialRequired OutcomeKind = "credential_required"
	OutcomeValidation         OutcomeKind = "validation"
	OutcomeTransport          OutcomeKind = "transport"
	OutcomeConversation       OutcomeKind = "conversation"
	OutcomeWarning            OutcomeKind = "warning"
)

const (
	NoticeTokenGenerated    = "Token generated successfully!"
	NoticeFillCredentials   = "Please fill in all the credentials."
	NoticeGenerateFirst     = "Generate a credential first."
	NoticeConversationRetry = "Please generate a credential or try again."
	NoticeGetStarted        = "Generate a credential to get started."
)

// Outcome es lo que la capa de presentacion muestra despues de cada accion.
type Outcome struct {
	Kind       OutcomeKind     `json:"kind"`
	Notice     string          `json:"notice,omitempty"`
	Reply      string          `json:"reply,omitempty"`
	StatusCode int             `json:"status_code,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Feeds      []domain.Feed   `json:"feeds,omitempty"`
	Err        error           `json:"-"`
}

func (o Outcome) OK() bool {
	return o.Kind == OutcomeOK
}

type CredentialIssuer interface {
	Issue(signingKey, environmentID, organizationID string) (domain.Credential, error)
}

type ConversationPrompter interface {
	Prompt(ctx context.Context, session domain.Session, text string) (domain.Session, string, error)
}

type FeedOperations interface {
	List(ctx context.Context, token string, offset, limit int) (FeedResult, error)
	Create(ctx context.Context, token, name, uri string) (FeedResult, error)
}

// ChatOrchestrator es el unico escritor de la sesion. No es seguro para uso
// concurrente; quien lo comparta debe serializar las llamadas.
type ChatOrchestrator struct {
	logger        *zap.Logger
	credentials   CredentialIssuer
	conversations ConversationPrompter
	feeds         FeedOperations
	session       domain.Session
	credential    *domain.Credential
	now           func() time.Time
}

func NewChatOrchestrator(logger *zap.Logger, credentials CredentialIssuer, conversations ConversationPrompter, feeds FeedOperations) *ChatOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatOrchestrator{
		logger:        logger,
		credentials:   credentials,
		conversations: conversations,
		feeds:         feeds,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// GenerateCredential emite y activa una credencial nueva.
func (o *ChatOrchestrator) GenerateCredential(signingKey, environmentID, organizationID string) Outcome {
	if o.credentials == nil {
		return o.unexpected(ErrServiceNotConfigured)
	}
	cred, err := o.credentials.Issue(signingKey, environmentID, organizationID)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return Outcome{Kind: OutcomeValidation, Notice: NoticeFillCredentials, Err: err}
		}
		return o.unexpected(err)
	}
	o.credential = &cred
	o.session.Token = cred.Token
	return Outcome{Kind: OutcomeOK, Notice: NoticeTokenGenerated}
}

// Submit agrega el mensaje del usuario de forma optimista y envia el prompt.
// El mensaje del asistente solo se agrega si la respuesta es valida.
func (o *ChatOrchestrator) Submit(ctx context.Context, text string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("chat loop panic", zap.Any("panic", r))
			out = o.unexpected(fmt.Errorf("panic: %v", r))
		}
	}()

	if strings.TrimSpace(text) == "" {
		return Outcome{Kind: OutcomeIgnored}
	}
	if !o.session.HasCredential() {
		return Outcome{Kind: OutcomeCredentialRequired, Notice: NoticeGenerateFirst, Err: ErrNoCredential}
	}
	if o.conversations == nil {
		return o.unexpected(ErrServiceNotConfigured)
	}

	prior := o.session.Clone()
	o.session.Messages = append(o.session.Messages, domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.ChatRoleUser,
		Content:   text,
		CreatedAt: o.now(),
	})

	updated, reply, err := o.conversations.Prompt(ctx, prior, text)
	if err != nil {
		o.logger.Warn("prompt failed", zap.Error(err))
		return o.classify(err)
	}
	o.session = updated
	return Outcome{Kind: OutcomeOK, Reply: reply}
}

func (o *ChatOrchestrator) ListFeeds(ctx context.Context) Outcome {
	if !o.session.HasCredential() {
		return Outcome{Kind: OutcomeCredentialRequired, Notice: NoticeGenerateFirst, Err: ErrNoCredential}
	}
	if o.feeds == nil {
		return o.unexpected(ErrServiceNotConfigured)
	}
	res, err := o.feeds.List(ctx, o.session.Token, defaultFeedOffset, defaultFeedLimit)
	if err != nil {
		return o.classify(err)
	}
	return Outcome{Kind: OutcomeOK, Notice: "show list was successful!", Payload: res.Raw, Feeds: res.Feeds}
}

func (o *ChatOrchestrator) CreateFeed(ctx context.Context, name, uri string) Outcome {
	if !o.session.HasCredential() {
		return Outcome{Kind: OutcomeCredentialRequired, Notice: NoticeGenerateFirst, Err: ErrNoCredential}
	}
	if o.feeds == nil {
		return o.unexpected(ErrServiceNotConfigured)
	}
	res, err := o.feeds.Create(ctx, o.session.Token, name, uri)
	if err != nil {
		return o.classify(err)
	}
	return Outcome{Kind: OutcomeOK, Notice: "feed creation was successful!", Payload: res.Raw, Feeds: res.Feeds}
}

// Messages devuelve una copia del log de mensajes.
func (o *ChatOrchestrator) Messages() []domain.ChatMessage {
	return slices.Clone(o.session.Messages)
}

func (o *ChatOrchestrator) ConversationID() string {
	return o.session.ConversationID
}

// Credential devuelve la credencial activa, si existe.
func (o *ChatOrchestrator) Credential() (domain.Credential, bool) {
	if o.credential == nil {
		return domain.Credential{}, false
	}
	return *o.credential, true
}

func (o *ChatOrchestrator) classify(err error) Outcome {
	var (
		terr *graphql.TransportError
		derr *graphql.DecodeError
		cerr *ConversationError
		verr *ValidationError
	)
	switch {
	case errors.As(err, &terr) && terr.Unauthorized():
		return Outcome{
			Kind:       OutcomeCredentialRequired,
			Notice:     fmt.Sprintf("%s (status %d)", NoticeGenerateFirst, terr.StatusCode),
			StatusCode: terr.StatusCode,
			Payload:    rawOrString(terr.Body),
			Err:        err,
		}
	case errors.As(err, &terr):
		return Outcome{
			Kind:       OutcomeTransport,
			Notice:     fmt.Sprintf("GraphQL request failed with status code: %d", terr.StatusCode),
			StatusCode: terr.StatusCode,
			Payload:    rawOrString(terr.Body),
			Err:        err,
		}
	case errors.As(err, &derr):
		return Outcome{
			Kind:       OutcomeTransport,
			Notice:     "GraphQL response could not be parsed.",
			StatusCode: http.StatusOK,
			Payload:    rawOrString(derr.Body),
			Err:        err,
		}
	case errors.As(err, &cerr):
		return Outcome{Kind: OutcomeConversation, Notice: NoticeConversationRetry, Err: err}
	case errors.As(err, &verr):
		return Outcome{Kind: OutcomeValidation, Notice: verr.Error(), Err: err}
	case errors.Is(err, ErrNoCredential):
		return Outcome{Kind: OutcomeCredentialRequired, Notice: NoticeGenerateFirst, Err: err}
	default:
		return o.unexpected(err)
	}
}

func (o *ChatOrchestrator) unexpected(err error) Outcome {
	o.logger.Error("unexpected chat error", zap.Error(err))
	return Outcome{Kind: OutcomeWarning, Notice: NoticeGetStarted, Err: err}
}

// rawOrString conserva el cuerpo si es JSON; si no, lo codifica como string.
func rawOrString(body string) json.RawMessage {
	if json.Valid([]byte(body)) {
		return json.RawMessage(body)
	}
	encoded, _ := json.Marshal(body)
	return encoded
}
