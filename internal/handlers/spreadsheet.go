package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"solarmarket/internal/export"
)

type spreadsheetRequest struct {
	AccessToken string          `json:"accessToken"`
	Title       string          `json:"title"`
	SheetData   [][]interface{} `json:"sheetData"`
}

// ExportSpreadsheet writes the submitted rows into a new Google Spreadsheet
// owned by the caller's access token.
func ExportSpreadsheet() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req spreadsheetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "SPREADSHEET", "invalid body")
			return
		}

		if req.AccessToken == "" || len(req.SheetData) == 0 {
			respondWithError(c, http.StatusBadRequest, "SPREADSHEET", "Missing data")
			return
		}

		result, err := export.CreateSpreadsheet(c.Request.Context(), req.AccessToken, req.Title, req.SheetData)
		if err != nil {
			log.Println("[SPREADSHEET] [ERROR] export failed:", err)
			respondWithError(c, http.StatusInternalServerError, "SPREADSHEET", "Failed to export to Google Sheets")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
