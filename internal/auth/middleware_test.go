package auth

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/authgate/internal/storage/memory"
	"github.com/yourusername/authgate/internal/token"
)

func newProtectedRouter(tokens *token.Manager, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	manager := NewManager(memory.New(), tokens)
	router := gin.New()
	protected := router.Group("/")
	protected.Use(manager.RequireToken())
	protected.GET("/ping", func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})
	return router
}

func TestGateDeniesMissingHeader(t *testing.T) {
	var hits int
	router := newProtectedRouter(token.NewManager("test-secret", 0), &hits)

	apitest.Handler(router).
		Get("/ping").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.msg", "Acesso negado!")).
		End()
	assert.Zero(t, hits)
}

func TestGateDeniesHeaderWithoutToken(t *testing.T) {
	var hits int
	router := newProtectedRouter(token.NewManager("test-secret", 0), &hits)

	apitest.Handler(router).
		Get("/ping").
		Header("Authorization", "Bearer").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.msg", "Acesso negado!")).
		End()
	assert.Zero(t, hits)
}

func TestGateRejectsInvalidToken(t *testing.T) {
	var hits int
	router := newProtectedRouter(token.NewManager("test-secret", 0), &hits)

	apitest.Handler(router).
		Get("/ping").
		Header("Authorization", "Bearer not-a-real-token").
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.msg", "Sessão não autorizada!")).
		End()
	assert.Zero(t, hits)
}

func TestGateRejectsTokenSignedWithOtherSecret(t *testing.T) {
	var hits int
	router := newProtectedRouter(token.NewManager("test-secret", 0), &hits)

	foreign, err := token.NewManager("other-secret", 0).Issue(uuid.New())
	require.NoError(t, err)

	apitest.Handler(router).
		Get("/ping").
		Header("Authorization", fmt.Sprintf("Bearer %s", foreign)).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
	assert.Zero(t, hits)
}

func TestGateAllowsValidToken(t *testing.T) {
	var hits int
	tokens := token.NewManager("test-secret", 0)
	router := newProtectedRouter(tokens, &hits)

	valid, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	apitest.Handler(router).
		Get("/ping").
		Header("Authorization", fmt.Sprintf("Bearer %s", valid)).
		Expect(t).
		Status(http.StatusOK).
		End()
	assert.Equal(t, 1, hits)
}
