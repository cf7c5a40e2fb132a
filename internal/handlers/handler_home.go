package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Describe the API
// @Description Names the service and points at its versioned API root.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Transactions report API v1",
		"api":     "/api/v1",
	})
}
