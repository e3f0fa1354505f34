package handler

import (
	clienteapp "github.com/crm/backend/internal/application/cliente"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ClienteHandler handles client-related API endpoints
type ClienteHandler struct {
	BaseHandler
	clienteService *clienteapp.ClienteService
}

// NewClienteHandler creates a new ClienteHandler
func NewClienteHandler(clienteService *clienteapp.ClienteService) *ClienteHandler {
	return &ClienteHandler{
		clienteService: clienteService,
	}
}

// List returns one page of clients with filtering and sorting
func (h *ClienteHandler) List(c *gin.Context) {
	var filter clienteapp.ListClientesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.clienteService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByID returns a single client by id
func (h *ClienteHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	result, err := h.clienteService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create creates a new client
func (h *ClienteHandler) Create(c *gin.Context) {
	var req clienteapp.CreateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.clienteService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Update applies a partial update to a client
func (h *ClienteHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req clienteapp.UpdateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.clienteService.Update(c.Request.Context(), idReq.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a client permanently
func (h *ClienteHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clienteService.Delete(c.Request.Context(), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers client endpoints under /clientes
func (h *ClienteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clientes := rg.Group("/clientes")
	{
		clientes.GET("", h.List)
		clientes.GET("/:id", h.GetByID)
		clientes.POST("", h.Create)
		clientes.PUT("/:id", h.Update)
		clientes.DELETE("/:id", h.Delete)
	}
}
