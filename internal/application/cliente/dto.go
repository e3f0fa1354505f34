package cliente

import (
	"time"

	"github.com/crm/backend/internal/domain/cliente"
)

// CreateClienteRequest represents a request to create a new client
type CreateClienteRequest struct {
	Nome     string  `json:"nome" binding:"required"`
	Tipo     string  `json:"tipo" binding:"required,oneof=PF PJ"`
	CnpjCpf  *string `json:"cnpjCpf" binding:"omitempty,max=20"`
	Email    *string `json:"email" binding:"omitempty,max=200"`
	Telefone *string `json:"telefone" binding:"omitempty,max=20"`
	Endereco *string `json:"endereco" binding:"omitempty,max=500"`
	Ativo    *bool   `json:"ativo"`
}

// UpdateClienteRequest represents a partial update to a client.
// Nil fields are left untouched; present fields are set to the given
// value, so cnpjCpf can be explicitly cleared with an empty string.
type UpdateClienteRequest struct {
	Nome     *string `json:"nome"`
	Tipo     *string `json:"tipo" binding:"omitempty,oneof=PF PJ"`
	CnpjCpf  *string `json:"cnpjCpf" binding:"omitempty,max=20"`
	Email    *string `json:"email" binding:"omitempty,max=200"`
	Telefone *string `json:"telefone" binding:"omitempty,max=20"`
	Endereco *string `json:"endereco" binding:"omitempty,max=500"`
	Ativo    *bool   `json:"ativo"`
}

// IsEmpty reports whether the request changes nothing
func (r UpdateClienteRequest) IsEmpty() bool {
	return r.Nome == nil && r.Tipo == nil && r.CnpjCpf == nil &&
		r.Email == nil && r.Telefone == nil && r.Endereco == nil && r.Ativo == nil
}

// ListClientesFilter represents query options for the client list
type ListClientesFilter struct {
	Nome     string `form:"nome"`
	Tipo     string `form:"tipo" binding:"omitempty,oneof=PF PJ"`
	Ativo    *bool  `form:"ativo"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
	OrderBy  string `form:"orderBy"`
	OrderDir string `form:"orderDir" binding:"omitempty,oneof=asc desc"`
}

// ClienteResponse represents a client in API responses
type ClienteResponse struct {
	ID        uint      `json:"id"`
	Nome      string    `json:"nome"`
	Tipo      string    `json:"tipo"`
	CnpjCpf   *string   `json:"cnpjCpf"`
	Email     *string   `json:"email"`
	Telefone  *string   `json:"telefone"`
	Endereco  *string   `json:"endereco"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Pagination describes the position of a page within the full result set
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// PaginatedClientes is one page of clients plus pagination metadata
type PaginatedClientes struct {
	Data       []ClienteResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// ToClienteResponse converts a domain Cliente to ClienteResponse
func ToClienteResponse(c *cliente.Cliente) ClienteResponse {
	return ClienteResponse{
		ID:        c.ID,
		Nome:      c.Nome,
		Tipo:      string(c.Tipo),
		CnpjCpf:   c.CnpjCpf,
		Email:     c.Email,
		Telefone:  c.Telefone,
		Endereco:  c.Endereco,
		Ativo:     c.Ativo,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToClienteResponses converts a slice of domain clients
func ToClienteResponses(clientes []cliente.Cliente) []ClienteResponse {
	out := make([]ClienteResponse, len(clientes))
	for i := range clientes {
		out[i] = ToClienteResponse(&clientes[i])
	}
	return out
}

// NewPagination computes page metadata for a total row count
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
