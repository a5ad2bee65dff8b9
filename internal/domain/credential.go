package domain

import "time"

// Role define el nivel de autorizacion embebido en los claims.
type Role string

const (
	RoleOwner       Role = "Owner"
	RoleContributor Role = "Contributor"
	RoleReader      Role = "Reader"
)

// Credential es el token firmado que se presenta como bearer. Nunca se muta:
// una credencial nueva reemplaza a la anterior.
type Credential struct {
	Token          string    `json:"token"`
	EnvironmentID  string    `json:"environment_id"`
	OrganizationID string    `json:"organization_id"`
	Role           Role      `json:"role"`
	IssuedAt       time.Time `json:"issued_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Expired indica si la credencial ya vencio en el instante dado.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
