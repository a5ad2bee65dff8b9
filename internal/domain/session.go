package domain

import "slices"

// Session es el estado conversacional de un proceso. Tiene un unico escritor
// (el orquestador) y no se comparte entre goroutines.
type Session struct {
	Token          string        `json:"-"`
	ConversationID string        `json:"conversation_id,omitempty"`
	Messages       []ChatMessage `json:"messages"`
}

// HasCredential indica si hay un token activo.
func (s Session) HasCredential() bool {
	return s.Token != ""
}

// HasConversation indica si ya existe una conversacion remota.
func (s Session) HasConversation() bool {
	return s.ConversationID != ""
}

// Clone devuelve una copia que no comparte el slice de mensajes.
func (s Session) Clone() Session {
	s.Messages = slices.Clone(s.Messages)
	return s
}
