package cliente

import (
	"regexp"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
)

// TipoCliente distinguishes individual (pessoa física) from organization
// (pessoa jurídica) records
type TipoCliente string

const (
	TipoPF TipoCliente = "PF"
	TipoPJ TipoCliente = "PJ"
)

// Cliente is the aggregate root of the CRM client context
type Cliente struct {
	ID       uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome     string      `gorm:"type:varchar(100);not null" json:"nome"`
	Tipo     TipoCliente `gorm:"type:varchar(2);not null" json:"tipo"`
	CnpjCpf  *string     `gorm:"type:varchar(14);uniqueIndex:idx_clientes_cnpj_cpf" json:"cnpjCpf"`
	Email    *string     `gorm:"type:varchar(200)" json:"email"`
	Telefone *string     `gorm:"type:varchar(20)" json:"telefone"`
	Endereco *string     `gorm:"type:text" json:"endereco"`
	Ativo    bool        `gorm:"not null;default:true" json:"ativo"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM
func (Cliente) TableName() string {
	return "clientes"
}

// IsIndividual returns true when the record represents a pessoa física
func (c *Cliente) IsIndividual() bool {
	return c.Tipo == TipoPF
}

// IsOrganization returns true when the record represents a pessoa jurídica
func (c *Cliente) IsOrganization() bool {
	return c.Tipo == TipoPJ
}

var (
	nonDigitRe = regexp.MustCompile(`\D`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// OnlyDigits strips every non-digit character from s
func OnlyDigits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// SanitizeNome trims surrounding whitespace
func SanitizeNome(nome string) string {
	return strings.TrimSpace(nome)
}

// SanitizeEmail lower-cases and trims an email address
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SanitizeTelefone keeps only the digits of a phone number
func SanitizeTelefone(telefone string) string {
	return OnlyDigits(telefone)
}

// SanitizeEndereco trims surrounding whitespace
func SanitizeEndereco(endereco string) string {
	return strings.TrimSpace(endereco)
}

// ValidateNome enforces the 3-100 character range after trimming
func ValidateNome(nome string) error {
	trimmed := strings.TrimSpace(nome)
	if trimmed == "" {
		return shared.NewValidationError("Nome cannot be empty")
	}
	if len(trimmed) < 3 || len(trimmed) > 100 {
		return shared.NewValidationError("Nome must be between 3 and 100 characters")
	}
	return nil
}

// ValidateTipo checks enum membership
func ValidateTipo(tipo TipoCliente) error {
	switch tipo {
	case TipoPF, TipoPJ:
		return nil
	default:
		return shared.NewValidationError("Tipo must be 'PF' or 'PJ'")
	}
}

// ValidateEmail performs a shape check on an already sanitized address
func ValidateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewValidationError("Email cannot exceed 200 characters")
	}
	if !emailRe.MatchString(email) {
		return shared.NewValidationError("Invalid email format")
	}
	return nil
}

// ValidateDocumento checks that a digits-only CPF/CNPJ matches the record
// tipo: an 11-digit valid CPF for PF, a 14-digit valid CNPJ for PJ
func ValidateDocumento(digits string, tipo TipoCliente) error {
	switch tipo {
	case TipoPF:
		if !IsValidCPF(digits) {
			return shared.NewValidationError("Invalid CPF for tipo PF")
		}
	case TipoPJ:
		if !IsValidCNPJ(digits) {
			return shared.NewValidationError("Invalid CNPJ for tipo PJ")
		}
	default:
		return shared.NewValidationError("Tipo must be 'PF' or 'PJ'")
	}
	return nil
}
