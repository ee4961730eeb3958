package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterDocumentRoutes registers the routes for documents with
// the RouterGroup that is passed.
func RegisterDocumentRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:key", OptionsDocument)
	r.GET("/:key", GetDocument)
	r.PUT("/:key", SetDocument)
}

type DocumentLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/documents/savingsData"` // The document itself
}

type Document struct {
	models.Document
	Links DocumentLinks `json:"links"`
}

func newDocument(c *gin.Context, model models.Document) Document {
	base := c.GetString(string(models.DBContextURL))

	return Document{
		Document: model,
		Links: DocumentLinks{
			Self: fmt.Sprintf("%s/v1/documents/%s", base, url.PathEscape(model.Key)),
		},
	}
}

type DocumentResponse struct {
	Data  *Document `json:"data"`                                                     // The document
	Error *string   `json:"error" example:"there is no document matching your query"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Documents
// @Success		204
// @Param			key	path	string	true	"Key of the document"
// @Router			/v1/documents/{key} [options]
func OptionsDocument(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Get document
// @Description	Returns the JSON document stored under the key
// @Tags			Documents
// @Produce		json
// @Success		200	{object}	DocumentResponse
// @Failure		404	{object}	DocumentResponse
// @Failure		500	{object}	DocumentResponse
// @Param			key	path		string	true	"Key of the document"
// @Router			/v1/documents/{key} [get]
func GetDocument(c *gin.Context) {
	var document models.Document
	err := models.DB.Where(&models.Document{Key: c.Param("key")}).First(&document).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	data := newDocument(c, document)
	c.JSON(http.StatusOK, DocumentResponse{Data: &data})
}

// @Summary		Set document
// @Description	Stores the request body as the document for the key, replacing any previous document.
// @Description	Setting the cutoffDay document validates the day and reconciles the checklists.
// @Tags			Documents
// @Accept			json
// @Produce		json
// @Success		200			{object}	DocumentResponse
// @Failure		400			{object}	DocumentResponse
// @Failure		500			{object}	DocumentResponse
// @Param			key			path		string	true	"Key of the document"
// @Param			document	body		object	true	"Any JSON value"
// @Router			/v1/documents/{key} [put]
func SetDocument(c *gin.Context) {
	key := c.Param("key")

	var value json.RawMessage
	err := httputil.BindData(c, &value)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		store := models.DocumentStore{DB: tx}

		if key != models.DocumentCutoffDay {
			return store.Save(key, value)
		}

		var day int
		if err := json.Unmarshal(value, &day); err != nil {
			return models.ErrCutoffDayInvalid
		}

		if err := models.SetCutoffDay(store, day); err != nil {
			return err
		}

		_, _, err := models.Reconcile(tx)
		return err
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	var document models.Document
	err = models.DB.Where(&models.Document{Key: key}).First(&document).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DocumentResponse{
			Error: &s,
		})
		return
	}

	data := newDocument(c, document)
	c.JSON(http.StatusOK, DocumentResponse{Data: &data})
}
