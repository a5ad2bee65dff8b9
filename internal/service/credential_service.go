package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"graphlit-chat/internal/domain"
)

const (
	CredentialIssuerName = "graphlit"
	CredentialAudience   = "https://portal.graphlit.io"
	ClaimsNamespace      = "https://graphlit.io/jwt/claims"
	CredentialTTL        = time.Hour
)

// GraphlitClaims son los claims propios bajo el namespace de Graphlit.
type GraphlitClaims struct {
	EnvironmentID  string      `json:"x-graphlit-environment-id"`
	OrganizationID string      `json:"x-graphlit-organization-id"`
	Role           domain.Role `json:"x-graphlit-role"`
}

type CredentialClaims struct {
	Graphlit GraphlitClaims `json:"https://graphlit.io/jwt/claims"`
	jwt.RegisteredClaims
}

// CredentialService emite tokens JWT firmados para la API de Graphlit.
type CredentialService struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewCredentialService(logger *zap.Logger) *CredentialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CredentialService{
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Issue firma un token HS256 con rol Owner que vence en una hora.
func (s *CredentialService) Issue(signingKey, environmentID, organizationID string) (domain.Credential, error) {
	if err := requireFields(
		"secret_key", signingKey,
		"environment_id", environmentID,
		"organization_id", organizationID,
	); err != nil {
		return domain.Credential{}, err
	}
	environmentID = strings.TrimSpace(environmentID)
	organizationID = strings.TrimSpace(organizationID)

	now := s.now().Truncate(time.Second)
	expiresAt := now.Add(CredentialTTL)
	claims := CredentialClaims{
		Graphlit: GraphlitClaims{
			EnvironmentID:  environmentID,
			OrganizationID: organizationID,
			Role:           domain.RoleOwner,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    CredentialIssuerName,
			Audience:  jwt.ClaimStrings{CredentialAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signingKey))
	if err != nil {
		return domain.Credential{}, err
	}

	s.logger.Info("credential issued",
		zap.String("environment_id", environmentID),
		zap.String("organization_id", organizationID),
		zap.Time("expires_at", expiresAt),
	)
	return domain.Credential{
		Token:          signed,
		EnvironmentID:  environmentID,
		OrganizationID: organizationID,
		Role:           domain.RoleOwner,
		IssuedAt:       now,
		ExpiresAt:      expiresAt,
	}, nil
}
