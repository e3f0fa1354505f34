package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func exec(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	engine.ServeHTTP(w, req)
	return w
}

func textHandler(status int, body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(status, body)
	}
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestNewRouter_WithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouter_Register(t *testing.T) {
	r := NewRouter(gin.New())
	r.Register(NewDomainGroup("clientes", "/clientes"))

	assert.Len(t, r.registrars, 1)
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("clientes", "/clientes")
	group.GET("/ping", textHandler(http.StatusOK, "pong"))

	r.Register(group)
	r.Setup()

	w := exec(engine, http.MethodGet, "/api/v1/clientes/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup_NameAndPrefix(t *testing.T) {
	g := NewDomainGroup("clientes", "/clientes")
	assert.Equal(t, "clientes", g.Name())
	assert.Equal(t, "/clientes", g.Prefix())
}

func TestDomainGroup_HTTPMethods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("clientes", "/clientes")
	g.GET("", textHandler(http.StatusOK, "list"))
	g.POST("", textHandler(http.StatusCreated, "created"))
	g.PUT("/:id", textHandler(http.StatusOK, "updated"))
	g.PATCH("/:id", textHandler(http.StatusOK, "patched"))
	g.DELETE("/:id", textHandler(http.StatusNoContent, ""))

	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/api/v1/clientes", http.StatusOK},
		{http.MethodPost, "/api/v1/clientes", http.StatusCreated},
		{http.MethodPut, "/api/v1/clientes/7", http.StatusOK},
		{http.MethodPatch, "/api/v1/clientes/7", http.StatusOK},
		{http.MethodDelete, "/api/v1/clientes/7", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := exec(engine, tt.method, tt.target)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestDomainGroup_Middleware(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("clientes", "/clientes")

	g.Use(func(c *gin.Context) {
		c.Header("X-Group-Middleware", "applied")
		c.Next()
	})
	g.GET("", textHandler(http.StatusOK, "ok"))

	g.RegisterRoutes(engine.Group("/api/v1"))

	w := exec(engine, http.MethodGet, "/api/v1/clientes")
	assert.Equal(t, "applied", w.Header().Get("X-Group-Middleware"))
}

func TestDomainGroup_Subgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("clientes", "/clientes")

	g.Group("ativos", "/ativos").GET("", textHandler(http.StatusOK, "ativos list"))
	g.Group("inativos", "/inativos").GET("", textHandler(http.StatusOK, "inativos list"))

	g.RegisterRoutes(engine.Group("/api/v1"))

	w := exec(engine, http.MethodGet, "/api/v1/clientes/ativos")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ativos list", w.Body.String())

	w = exec(engine, http.MethodGet, "/api/v1/clientes/inativos")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "inativos list", w.Body.String())
}

func TestRouter_MultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	clientes := NewDomainGroup("clientes", "/clientes")
	clientes.GET("/ativos", textHandler(http.StatusOK, "ativos"))

	relatorios := NewDomainGroup("relatorios", "/relatorios")
	relatorios.GET("/vendas", textHandler(http.StatusOK, "vendas"))

	r.Register(clientes).Register(relatorios)
	r.Setup()

	w := exec(engine, http.MethodGet, "/api/v1/clientes/ativos")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ativos", w.Body.String())

	w = exec(engine, http.MethodGet, "/api/v1/relatorios/vendas")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "vendas", w.Body.String())
}

func TestDomainGroup_ChainedCalls(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	g := NewDomainGroup("clientes", "/clientes")
	g.GET("/a", textHandler(http.StatusOK, "a")).
		POST("/b", textHandler(http.StatusOK, "b")).
		PUT("/c", textHandler(http.StatusOK, "c"))

	r.Register(g).Setup()

	for _, tt := range []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/v1/clientes/a"},
		{http.MethodPost, "/api/v1/clientes/b"},
		{http.MethodPut, "/api/v1/clientes/c"},
	} {
		w := exec(engine, tt.method, tt.target)
		assert.Equal(t, http.StatusOK, w.Code, "route %s %s", tt.method, tt.target)
	}
}
