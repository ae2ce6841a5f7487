// Package auth implements registration, login and the bearer-token
// gate in front of the protected routes.
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/authgate/internal/logutil"
	"github.com/yourusername/authgate/internal/model"
	"github.com/yourusername/authgate/internal/password"
	"github.com/yourusername/authgate/internal/token"
)

// User-facing messages, kept verbatim from the product copy.
const (
	msgNameRequired     = "O nome é obrigatório!"
	msgEmailRequired    = "O email é obrigatório!"
	msgPasswordRequired = "A senha é obrigatória!"
	msgPasswordMismatch = "As senhas não conferem!"
	msgEmailTaken       = "Favor, utilize outro email!"
	msgUserCreated      = "Usuário criado com sucesso!"
	msgUserNotFound     = "Usuário não encontrado!"
	msgInvalidPassword  = "Senha inválida!"
	msgLoginOK          = "Autenticação realizada com sucesso!"
	msgServerError      = "Erro no servidor, tente novamente mais tarde!"
	msgAccessDenied     = "Acesso negado!"
	msgBadSession       = "Sessão não autorizada!"
)

// Manager wires the credential store and the token manager into the
// auth handlers.
type Manager struct {
	store  model.UserStore
	tokens *token.Manager
}

func NewManager(store model.UserStore, tokens *token.Manager) *Manager {
	return &Manager{
		store:  store,
		tokens: tokens,
	}
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register is the POST /auth/register handler. Validation runs in a
// fixed order and the first failure wins; registration never issues a
// token.
func (m *Manager) Register(c *gin.Context) {
	ctx := c.Request.Context()
	log := logutil.GetOrDefault(ctx)

	var req registerRequest
	// A malformed body leaves every field empty and is caught by the
	// field checks below.
	_ = c.ShouldBindJSON(&req)

	if req.Name == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": msgNameRequired})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": msgEmailRequired})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": msgPasswordRequired})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": msgPasswordMismatch})
		return
	}

	_, err := m.store.GetByEmail(ctx, req.Email)
	if err == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": msgEmailTaken})
		return
	}
	if !errors.Is(err, model.ErrNotFound) {
		log.Error().Err(err).Msg("register: store lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgServerError})
		return
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("register: hashing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgServerError})
		return
	}

	user := model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
	}
	if _, err := m.store.Create(ctx, user); err != nil {
		// The store may reject a duplicate the lookup above raced with.
		if errors.Is(err, model.ErrEmailTaken) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": msgEmailTaken})
			return
		}
		log.Error().Err(err).Msg("register: persist failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgServerError})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": msgUserCreated})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login is the POST /auth/login handler. On success the response
// carries a bearer token for the user's id.
func (m *Manager) Login(c *gin.Context) {
	ctx := c.Request.Context()
	log := logutil.GetOrDefault(ctx)

	var req loginRequest
	_ = c.ShouldBindJSON(&req)

	if req.Email == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": msgEmailRequired})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": msgPasswordRequired})
		return
	}

	user, err := m.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": msgUserNotFound})
			return
		}
		log.Error().Err(err).Msg("login: store lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgServerError})
		return
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": msgInvalidPassword})
		return
	}

	tokenString, err := m.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("login: token issuance failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgServerError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": msgLoginOK, "token": tokenString})
}
