package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/konverty/backend/internal/httputil"
	"github.com/konverty/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterSettingsRoutes registers the routes for the settings with
// the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", GetSettings)
	r.PATCH("", UpdateSettings)
}

type Settings struct {
	CutoffDay int `json:"cutoffDay" example:"5" minimum:"1" maximum:"31"` // Entries after this day of the month are planned
}

type SettingsResponse struct {
	Data  *Settings `json:"data"`                                                    // The settings
	Error *string   `json:"error" example:"the cutoff day must be between 1 and 31"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get settings
// @Description	Returns the settings
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		500	{object}	SettingsResponse
// @Router			/v1/settings [get]
func GetSettings(c *gin.Context) {
	cutoffDay, err := models.CutoffDay(models.DocumentStore{DB: models.DB})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: &Settings{CutoffDay: cutoffDay}})
}

// @Summary		Update settings
// @Description	Updates the settings. Changing the cutoff day reconciles the checklists.
// @Tags			Settings
// @Accept			json
// @Produce		json
// @Success		200			{object}	SettingsResponse
// @Failure		400			{object}	SettingsResponse
// @Failure		500			{object}	SettingsResponse
// @Param			settings	body		Settings	true	"Settings"
// @Router			/v1/settings [patch]
func UpdateSettings(c *gin.Context) {
	store := models.DocumentStore{DB: models.DB}

	settings := Settings{}
	cutoffDay, err := models.CutoffDay(store)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}
	settings.CutoffDay = cutoffDay

	updateFields, err := httputil.GetBodyFields(c, Settings{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	var data Settings
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	patch(&settings, data, updateFields)

	if settings.CutoffDay != cutoffDay {
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			if err := models.SetCutoffDay(models.DocumentStore{DB: tx}, settings.CutoffDay); err != nil {
				return err
			}

			_, _, err := models.Reconcile(tx)
			return err
		})
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SettingsResponse{
				Error: &s,
			})
			return
		}
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: &settings})
}
