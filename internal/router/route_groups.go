package router

import (
	"github.com/gin-gonic/gin"

	"frame_ledger_backend/internal/handlers"
	"frame_ledger_backend/internal/middleware"
	"frame_ledger_backend/pkg/utils"
)

// SetupAuthRoutes sets up the public login route.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}
}

// SetupShopRoutes sets up the distributor's shop management routes.
func SetupShopRoutes(authenticatedGroup *gin.RouterGroup, shopHandler *handlers.ShopHandler) {
	shopRoutes := authenticatedGroup.Group("/shops")
	shopRoutes.Use(middleware.RoleAuthMiddleware(utils.RoleDistributor))
	{
		shopRoutes.POST("", shopHandler.CreateShop)
		shopRoutes.GET("", shopHandler.GetShops)
	}
}

// SetupCatalogRoutes sets up frame and lens type routes. Reads are open to
// every role; only the distributor edits the catalog.
func SetupCatalogRoutes(authenticatedGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	frameRoutes := authenticatedGroup.Group("/frames")
	{
		frameRoutes.GET("", catalogHandler.GetFrames)
		frameRoutes.POST("", middleware.RoleAuthMiddleware(utils.RoleDistributor), catalogHandler.CreateFrame)
	}
	authenticatedGroup.GET("/lens-types", catalogHandler.GetLensTypes)
}

// SetupInventoryRoutes sets up a shop's inventory routes.
func SetupInventoryRoutes(shopGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventoryRoutes := shopGroup.Group("/inventory")
	{
		inventoryRoutes.GET("", inventoryHandler.GetInventory)

		distributorOnly := inventoryRoutes.Group("")
		distributorOnly.Use(middleware.RoleAuthMiddleware(utils.RoleDistributor))
		{
			distributorOnly.POST("", inventoryHandler.IncrementInventory)
			distributorOnly.POST("/import", inventoryHandler.ImportInventoryCSV)
		}
	}
}

// SetupSaleRoutes sets up a shop's sales routes.
func SetupSaleRoutes(shopGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := shopGroup.Group("/sales")
	{
		saleRoutes.POST("", saleHandler.RecordSale)
		saleRoutes.GET("", saleHandler.ListSales)
	}
}

// SetupBillingRoutes sets up a shop's billing routes.
func SetupBillingRoutes(shopGroup *gin.RouterGroup, billingHandler *handlers.BillingHandler) {
	billingRoutes := shopGroup.Group("/billing")
	{
		billingRoutes.GET("", billingHandler.GetMonthlyBill)
		billingRoutes.POST("/mark-billed", middleware.RoleAuthMiddleware(utils.RoleDistributor), billingHandler.MarkBilled)
	}
}

// SetupReportRoutes sets up the distributor dashboard routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(utils.RoleDistributor))
	{
		reportRoutes.GET("/summary", reportHandler.GetSummary)
	}
}
