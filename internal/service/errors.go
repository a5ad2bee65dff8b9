package service

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError indica entradas requeridas ausentes; nunca se envia request.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// ConversationError indica una respuesta 200 sin la forma esperada.
type ConversationError struct {
	Reason        string
	GraphQLErrors []string
}

func (e *ConversationError) Error() string {
	if len(e.GraphQLErrors) == 0 {
		return "conversation error: " + e.Reason
	}
	return fmt.Sprintf("conversation error: %s (%s)", e.Reason, strings.Join(e.GraphQLErrors, "; "))
}

var (
	ErrNoCredential         = errors.New("no credential")
	ErrServiceNotConfigured = errors.New("service not configured")
)

// requireFields devuelve un ValidationError con los campos vacios, o nil.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}
