package server

import (
	"net/http"

	handler "nft-auction/services/contract/handler"

	"github.com/gin-gonic/gin"
)

// AvailableEndpoints is listed in the body of every 404
var AvailableEndpoints = []string{
	"GET  /health",
	"GET  /state",
	"GET  /wallet",
	"GET  /wallet/transactions",
	"POST /auction/start",
	"POST /auction/bid",
	"POST /auction/end",
	"POST /auction/settle",
	"GET  /auction/status",
	"GET  /auction/topbid",
	"POST /reset",
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(runtime handler.ContractRuntimeInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.CustomRecovery(RecoveryHandler))
	router.Use(CORSMiddleware())
	router.Use(RequestLoggerMiddleware)

	contractHandler := handler.NewContractHandler(runtime)

	router.GET("/health", contractHandler.HealthHandler)
	router.GET("/state", contractHandler.StateHandler)
	router.POST("/reset", contractHandler.ResetHandler)

	wallet := router.Group("/wallet")
	{
		wallet.GET("", contractHandler.WalletHandler)
		wallet.GET("/transactions", contractHandler.TransactionsHandler)
	}

	auction := router.Group("/auction")
	{
		auction.POST("/start", contractHandler.StartAuctionHandler)
		auction.POST("/bid", contractHandler.RecordBidHandler)
		auction.POST("/end", contractHandler.EndAuctionHandler)
		auction.POST("/settle", contractHandler.SettleHandler)
		auction.GET("/status", contractHandler.StatusHandler)
		auction.GET("/topbid", contractHandler.TopBidHandler)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success":            false,
			"error":              "Endpoint not found",
			"availableEndpoints": AvailableEndpoints,
		})
	})

	return router
}
