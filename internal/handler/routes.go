package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/ledgerly-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	ledgerHandler *LedgerHandler,
	categoryHandler *CategoryHandler,
	transactionHandler *TransactionHandler,
	shareHandler *ShareHandler,
	receiptHandler *ReceiptHandler,
	activityHandler *ActivityHandler,
	wsHandler *WebSocketHandler,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth routes (public, rate limited per IP)
	auth := e.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(rateLimiter))
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	// User routes (protected)
	user := e.Group("/user")
	user.Use(authMiddleware.Authenticate())
	user.GET("/ledger", profileHandler.GetUserLedger)
	user.GET("/preferences", profileHandler.GetPreferences)
	user.PATCH("/preferences", profileHandler.UpdatePreferences)

	// Ledger collection routes (protected)
	ledgers := e.Group("/ledgers")
	ledgers.Use(authMiddleware.Authenticate())
	ledgers.GET("", ledgerHandler.GetLedgers)
	ledgers.POST("", ledgerHandler.CreateLedger)

	// Single ledger routes (protected)
	ledger := e.Group("/ledger")
	ledger.Use(authMiddleware.Authenticate())
	ledger.GET("/invite", shareHandler.GetShares)
	ledger.POST("/invite", shareHandler.Invite)
	ledger.PATCH("/invite/:id", shareHandler.UpdateRole)
	ledger.DELETE("/invite/:id", shareHandler.Revoke)
	ledger.PATCH("/:id", ledgerHandler.RenameLedger)
	ledger.PATCH("/:id/currency", ledgerHandler.ChangeCurrency)

	// Category routes (protected)
	categories := e.Group("/categories")
	categories.Use(authMiddleware.Authenticate())
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes (protected)
	transactions := e.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate())
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/summary", transactionHandler.GetSummary)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Receipt accounting routes (protected)
	receipts := e.Group("/receipts")
	receipts.Use(authMiddleware.Authenticate())
	receipts.GET("/stats", receiptHandler.GetStats)
	receipts.DELETE("/stats", receiptHandler.ClearReceipts)

	// Activity log routes. The WebSocket endpoint authenticates via
	// query token inside the handler.
	logs := e.Group("/logs")
	logs.GET("/ws", wsHandler.HandleWS)
	logs.GET("", activityHandler.GetLogs, authMiddleware.Authenticate())
}
