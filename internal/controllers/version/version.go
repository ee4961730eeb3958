package version

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
)

type Response struct {
	Data Object `json:"data"`
}

type Object struct {
	Version   string `json:"version" example:"1.4.0"`      // Version of the konverty backend
	GoVersion string `json:"goVersion" example:"go1.25.5"` // Go release the backend was built with
}

// RegisterRoutes serves the version passed in. It is set by the router
// from the build flags.
func RegisterRoutes(r *gin.RouterGroup, version string) {
	r.GET("", Get(version))
	r.OPTIONS("", Options)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		API version
// @Description	Returns the version of the backend and of the Go release it was built with
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(version string) gin.HandlerFunc {
	object := Object{
		Version:   version,
		GoVersion: runtime.Version(),
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{Data: object})
	}
}
