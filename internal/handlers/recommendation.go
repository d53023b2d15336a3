package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"solarmarket/internal/recommend"
)

// Recommendation sizes a solar system for the submitted location and
// consumption profile.
func Recommendation(engine *recommend.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query recommend.Query
		if err := c.ShouldBindJSON(&query); err != nil {
			respondValidationError(c, err)
			return
		}

		result, err := engine.Recommend(c.Request.Context(), query)
		if err != nil {
			switch {
			case errors.Is(err, recommend.ErrMissingInput):
				respondWithError(c, http.StatusBadRequest, "RECOMMEND", "Provide either consumption number or usage description")
			case errors.Is(err, recommend.ErrConsumptionOutOfRange):
				respondWithError(c, http.StatusBadRequest, "RECOMMEND", "Monthly consumption must be between 100 and 5000 kWh")
			case errors.Is(err, recommend.ErrLocationNotFound):
				respondWithError(c, http.StatusBadRequest, "RECOMMEND", "Location lookup failed")
			default:
				log.Println("[RECOMMEND] [ERROR] recommendation failed:", err)
				respondWithError(c, http.StatusInternalServerError, "RECOMMEND", "Failed to generate recommendation")
			}
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
