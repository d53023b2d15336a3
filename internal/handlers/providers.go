package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"solarmarket/internal/models"
	"solarmarket/internal/profilestore"
)

type providerListing struct {
	ID             string `json:"id"`
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	ContactNumber  string `json:"contactNumber"`
	Email          string `json:"email"`
}

// GetProviders lists approved providers for the public directory, with an
// optional free-text search over company name and address.
func GetProviders(store *profilestore.MongoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "PROVIDERS", "invalid pagination parameters")
			return
		}

		providers, total, err := store.SearchProviders(c.Request.Context(), c.Query("search"), page, limit)
		if err != nil {
			log.Println("[PROVIDERS] [ERROR] search failed:", err)
			respondWithError(c, http.StatusInternalServerError, "PROVIDERS", "failed to load providers")
			return
		}

		listings := make([]providerListing, 0, len(providers))
		for _, p := range providers {
			listings = append(listings, toListing(p))
		}

		c.JSON(http.StatusOK, gin.H{
			"providers": listings,
			"total":     total,
			"page":      page,
			"limit":     limit,
		})
	}
}

func toListing(p models.Profile) providerListing {
	return providerListing{
		ID:             p.ID.Hex(),
		CompanyName:    p.CompanyName,
		CompanyAddress: p.CompanyAddress,
		ContactNumber:  p.ContactNumber,
		Email:          p.Email,
	}
}
