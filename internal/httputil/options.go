package httputil

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Allow answers an OPTIONS request. OPTIONS itself is always allowed
// and listed first.
func Allow(c *gin.Context, methods ...string) {
	c.Header("allow", strings.Join(append([]string{http.MethodOptions}, methods...), ", "))
	c.Render(http.StatusNoContent, render.JSON{})
}

func OptionsGet(c *gin.Context) {
	Allow(c, http.MethodGet)
}

func OptionsPost(c *gin.Context) {
	Allow(c, http.MethodPost)
}

func OptionsGetPost(c *gin.Context) {
	Allow(c, http.MethodGet, http.MethodPost)
}

func OptionsGetPut(c *gin.Context) {
	Allow(c, http.MethodGet, http.MethodPut)
}

func OptionsGetPatch(c *gin.Context) {
	Allow(c, http.MethodGet, http.MethodPatch)
}

func OptionsGetDelete(c *gin.Context) {
	Allow(c, http.MethodGet, http.MethodDelete)
}

func OptionsGetPatchDelete(c *gin.Context) {
	Allow(c, http.MethodGet, http.MethodPatch, http.MethodDelete)
}
