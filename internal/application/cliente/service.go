package cliente

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crm/backend/internal/domain/cliente"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/cache"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	cacheKeyByID    = "cliente:id:%d"
	cacheKeyListFmt = "cliente:list:p%d:l%d:f%s:o%s"
	cacheKeyListAll = "cliente:list:*"
)

// ClienteService handles client business operations with a cache-aside
// layer in front of the repository. Cache failures never fail a request:
// they are logged and the call falls through to the database.
type ClienteService struct {
	repo   cliente.Repository
	cache  cliente.Cache
	logger *zap.Logger
}

// NewClienteService creates a new ClienteService
func NewClienteService(repo cliente.Repository, c cliente.Cache, logger *zap.Logger) *ClienteService {
	return &ClienteService{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

// List retrieves one page of clients with filtering and sorting
func (s *ClienteService) List(ctx context.Context, filter ListClientesFilter) (*PaginatedClientes, error) {
	query := s.normalizeQuery(filter)
	key := listCacheKey(query)

	var cached PaginatedClientes
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("cliente list cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	rows, total, err := s.repo.ListWithCount(ctx, query)
	if err != nil {
		return nil, storeFailure("failed to list clientes", err)
	}

	result := &PaginatedClientes{
		Data:       ToClienteResponses(rows),
		Pagination: NewPagination(query.Page, query.Limit, total),
	}

	if err := s.cache.SetJSON(ctx, key, result, cache.TTLMedium); err != nil {
		s.logger.Warn("cliente list cache write failed", zap.String("key", key), zap.Error(err))
	}

	return result, nil
}

// GetByID retrieves a client by id
func (s *ClienteService) GetByID(ctx context.Context, id uint) (*ClienteResponse, error) {
	if id == 0 {
		return nil, shared.NewValidationError("id must be a positive integer")
	}

	key := fmt.Sprintf(cacheKeyByID, id)

	var cached ClienteResponse
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("cliente cache read failed", zap.Uint("id", id), zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeFailure("failed to load cliente", err)
	}

	response := ToClienteResponse(c)
	if err := s.cache.SetJSON(ctx, key, response, cache.TTLMedium); err != nil {
		s.logger.Warn("cliente cache write failed", zap.Uint("id", id), zap.Error(err))
	}

	return &response, nil
}

// Create creates a new client
func (s *ClienteService) Create(ctx context.Context, req CreateClienteRequest) (*ClienteResponse, error) {
	nome := cliente.SanitizeNome(req.Nome)
	if err := cliente.ValidateNome(nome); err != nil {
		return nil, err
	}

	tipo := cliente.TipoCliente(req.Tipo)
	if err := cliente.ValidateTipo(tipo); err != nil {
		return nil, err
	}

	c := &cliente.Cliente{
		Nome:  nome,
		Tipo:  tipo,
		Ativo: true,
	}
	if req.Ativo != nil {
		c.Ativo = *req.Ativo
	}

	if req.CnpjCpf != nil && *req.CnpjCpf != "" {
		digits := cliente.OnlyDigits(*req.CnpjCpf)
		if err := cliente.ValidateDocumento(digits, tipo); err != nil {
			return nil, err
		}
		if err := s.checkDuplicateDocumento(ctx, digits, 0); err != nil {
			return nil, err
		}
		c.CnpjCpf = &digits
	}

	if req.Email != nil && *req.Email != "" {
		email := cliente.SanitizeEmail(*req.Email)
		if err := cliente.ValidateEmail(email); err != nil {
			return nil, err
		}
		c.Email = &email
	}
	if req.Telefone != nil {
		if telefone := cliente.SanitizeTelefone(*req.Telefone); telefone != "" {
			c.Telefone = &telefone
		}
	}
	if req.Endereco != nil {
		if endereco := cliente.SanitizeEndereco(*req.Endereco); endereco != "" {
			c.Endereco = &endereco
		}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, storeFailure("failed to create cliente", err)
	}

	s.invalidateLists(ctx)

	response := ToClienteResponse(c)
	return &response, nil
}

// Update applies a partial update to a client
func (s *ClienteService) Update(ctx context.Context, id uint, req UpdateClienteRequest) (*ClienteResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeFailure("failed to load cliente", err)
	}

	if req.IsEmpty() {
		response := ToClienteResponse(existing)
		return &response, nil
	}

	changes := make(map[string]any)

	if req.Nome != nil {
		nome := cliente.SanitizeNome(*req.Nome)
		if err := cliente.ValidateNome(nome); err != nil {
			return nil, err
		}
		changes["nome"] = nome
	}

	tipo := existing.Tipo
	if req.Tipo != nil {
		tipo = cliente.TipoCliente(*req.Tipo)
		if err := cliente.ValidateTipo(tipo); err != nil {
			return nil, err
		}
		changes["tipo"] = string(tipo)
	}

	if req.CnpjCpf != nil {
		if *req.CnpjCpf == "" {
			changes["cnpj_cpf"] = nil
		} else {
			digits := cliente.OnlyDigits(*req.CnpjCpf)
			documentChanged := existing.CnpjCpf == nil || *existing.CnpjCpf != digits
			if documentChanged && req.Tipo == nil {
				return nil, shared.NewValidationError("tipo is required when changing the CNPJ/CPF")
			}
			if err := cliente.ValidateDocumento(digits, tipo); err != nil {
				return nil, err
			}
			if err := s.checkDuplicateDocumento(ctx, digits, id); err != nil {
				return nil, err
			}
			changes["cnpj_cpf"] = digits
		}
	} else if req.Tipo != nil && existing.CnpjCpf != nil {
		// Changing the tipo alone must not leave a document that no
		// longer matches it
		if err := cliente.ValidateDocumento(*existing.CnpjCpf, tipo); err != nil {
			return nil, err
		}
	}

	if req.Email != nil {
		if *req.Email == "" {
			changes["email"] = nil
		} else {
			email := cliente.SanitizeEmail(*req.Email)
			if err := cliente.ValidateEmail(email); err != nil {
				return nil, err
			}
			changes["email"] = email
		}
	}
	if req.Telefone != nil {
		if telefone := cliente.SanitizeTelefone(*req.Telefone); telefone == "" {
			changes["telefone"] = nil
		} else {
			changes["telefone"] = telefone
		}
	}
	if req.Endereco != nil {
		if endereco := cliente.SanitizeEndereco(*req.Endereco); endereco == "" {
			changes["endereco"] = nil
		} else {
			changes["endereco"] = endereco
		}
	}
	if req.Ativo != nil {
		changes["ativo"] = *req.Ativo
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, storeFailure("failed to update cliente", err)
	}

	s.invalidate(ctx, id)

	response := ToClienteResponse(updated)
	return &response, nil
}

// Delete removes a client permanently
func (s *ClienteService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return storeFailure("failed to load cliente", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return storeFailure("failed to delete cliente", err)
	}

	s.invalidate(ctx, id)
	return nil
}

// storeFailure classifies a repository error: already-typed domain errors
// pass through unchanged, anything else becomes an internal error
func storeFailure(message string, err error) error {
	if shared.IsDomainError(err) {
		return err
	}
	return shared.NewInternalError(message, err)
}

// checkDuplicateDocumento rejects a document already held by another client
func (s *ClienteService) checkDuplicateDocumento(ctx context.Context, digits string, excludeID uint) error {
	other, err := s.repo.FindByCnpjCpf(ctx, digits, excludeID)
	if err != nil {
		return storeFailure("failed to check for duplicate CNPJ/CPF", err)
	}
	if other != nil {
		return shared.NewDuplicateError("Cliente", "CNPJ/CPF", digits)
	}
	return nil
}

// invalidate drops the client's id entry and every cached list page
func (s *ClienteService) invalidate(ctx context.Context, id uint) {
	key := fmt.Sprintf(cacheKeyByID, id)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("cliente cache invalidation failed", zap.Uint("id", id), zap.Error(err))
	}
	s.invalidateLists(ctx)
}

func (s *ClienteService) invalidateLists(ctx context.Context) {
	if _, err := s.cache.DeleteByPattern(ctx, cacheKeyListAll); err != nil {
		s.logger.Warn("cliente list cache invalidation failed", zap.Error(err))
	}
}

// normalizeQuery applies paging defaults, clamps the limit, and validates
// the sort against the clientes allow-list
func (s *ClienteService) normalizeQuery(filter ListClientesFilter) cliente.ListQuery {
	page := filter.Page
	if page < 1 {
		page = defaultPage
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	field, direction, fellBack := persistence.ValidateClienteSort(filter.OrderBy, filter.OrderDir)
	if fellBack {
		s.logger.Warn("unknown sort field, falling back to id",
			zap.String("orderBy", filter.OrderBy))
	}

	f := cliente.Filters{
		Nome:   filter.Nome,
		Search: filter.Search,
		Ativo:  filter.Ativo,
	}
	if filter.Tipo != "" {
		tipo := cliente.TipoCliente(filter.Tipo)
		f.Tipo = &tipo
	}

	return cliente.ListQuery{
		Filters: f,
		Order:   cliente.Order{Field: field, Direction: direction},
		Page:    page,
		Limit:   limit,
	}
}

// listCacheKey builds a deterministic key from the normalized query, so
// identical requests share one cache entry regardless of parameter spelling
func listCacheKey(q cliente.ListQuery) string {
	filters, _ := json.Marshal(q.Filters)
	order, _ := json.Marshal(q.Order)
	return fmt.Sprintf(cacheKeyListFmt, q.Page, q.Limit, filters, order)
}
