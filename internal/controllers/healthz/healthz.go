// Package healthz reports if the backend can reach its database.
package healthz

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// pingTimeout bounds the database check.
const pingTimeout = 2 * time.Second

type httpError struct {
	Error string `json:"error" example:"sql: database is closed"`
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Pings the database. Returns no content when it answers, an error otherwise
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httpError
// @Router			/healthz [get]
func Get(c *gin.Context) {
	if err := ping(c.Request.Context()); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("healthz")
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func ping(ctx context.Context) error {
	sqlDB, err := models.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return sqlDB.PingContext(ctx)
}
