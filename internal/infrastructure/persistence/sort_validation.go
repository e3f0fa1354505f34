package persistence

import (
	"strings"
)

// ClienteSortFields contains allowed sort fields for clientes
var ClienteSortFields = map[string]bool{
	"id":         true,
	"nome":       true,
	"tipo":       true,
	"cnpj_cpf":   true,
	"email":      true,
	"ativo":      true,
	"created_at": true,
	"updated_at": true,
}

// clienteSortAliases maps API spellings onto column names
var clienteSortAliases = map[string]string{
	"cnpjCpf":   "cnpj_cpf",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// ValidateSortOrder validates and normalizes the sort order to asc or desc.
// Returns "desc" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "asc"
	}
	return "desc"
}

// ValidateClienteSort validates an order-by request against the clientes
// allow-list. Unknown fields fall back to "id"; fellBack reports whether
// that happened so the caller can log it.
func ValidateClienteSort(orderBy, orderDir string) (field, direction string, fellBack bool) {
	direction = ValidateSortOrder(orderDir)

	trimmed := strings.TrimSpace(orderBy)
	if trimmed == "" {
		return "id", direction, false
	}
	if alias, ok := clienteSortAliases[trimmed]; ok {
		trimmed = alias
	}
	if ClienteSortFields[trimmed] {
		return trimmed, direction, false
	}
	return "id", direction, true
}
