package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires all HTTP routes onto a new gin engine
func NewRouter(locations *LocationHandler, clients *ClientHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.POST("/update-location", locations.UpdateLocation)
	r.GET("/vehicles/:vehicle_id/location", locations.LatestLocation)
	r.GET("/clients", clients.Clients)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
