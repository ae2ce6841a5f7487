// Package user serves the protected user lookup.
package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/authgate/internal/logutil"
	"github.com/yourusername/authgate/internal/model"
)

const (
	msgUserNotFound = "Usuário não encontrado!"
	msgServerError  = "Erro no servidor, tente novamente mais tarde!"
)

// response is the sanitized record. The password hash has no field
// here, so it can never leak into a reply.
type response struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Handler struct {
	store model.UserStore
}

func NewHandler(store model.UserStore) *Handler {
	return &Handler{store: store}
}

// Get is the GET /user/:id handler, reachable only behind the token
// gate. The id comes from the path, not from the presented token.
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": msgUserNotFound})
		return
	}

	u, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": msgUserNotFound})
			return
		}
		logger := logutil.GetOrDefault(ctx)
		logger.Error().Err(err).Msg("lookup: store read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgServerError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": response{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}})
}
