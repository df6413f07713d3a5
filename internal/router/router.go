package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"frame_ledger_backend/internal/config"
	"frame_ledger_backend/internal/handlers"
	"frame_ledger_backend/internal/middleware"
	"frame_ledger_backend/internal/repositories"
	"frame_ledger_backend/internal/services"
	"frame_ledger_backend/pkg/utils"
)

// Setup initializes the routing for the application.
// idem may be nil, which disables sale idempotency keys.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config, tokens *utils.TokenManager, idem services.IdempotencyStore) {
	// Initialize Repositories
	shopRepo := repositories.NewShopRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	saleRepo := repositories.NewSaleRepository(db)

	// Initialize Services
	shopService := services.NewShopService(shopRepo, db)
	catalogService := services.NewCatalogService(catalogRepo, db)
	inventoryService := services.NewInventoryService(inventoryRepo, shopRepo, catalogRepo, db, cfg.StockPolicy)
	importService := services.NewImportService(catalogRepo, shopRepo, inventoryService, db, cfg.FrameReimportPolicy)
	saleService := services.NewSaleService(saleRepo, shopRepo, catalogRepo, inventoryService, idem, db)
	billingService := services.NewBillingService(saleRepo, shopRepo, db, cfg.BillingLocation)
	reportService := services.NewReportService(saleRepo)

	// Initialize Handlers
	shopHandler := handlers.NewShopHandler(shopService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, importService, cfg.MaxImportBytes)
	saleHandler := handlers.NewSaleHandler(saleService)
	billingHandler := handlers.NewBillingHandler(billingService, cfg.BillingLocation)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	if tokens != nil {
		authService := services.NewAuthService(shopRepo, tokens, cfg.DistributorKeyHash)
		SetupAuthRoutes(apiV1, handlers.NewAuthHandler(authService))
	}

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(tokens, cfg.AuthDisabled))
	{
		SetupShopRoutes(authenticated, shopHandler)
		SetupCatalogRoutes(authenticated, catalogHandler)
		SetupReportRoutes(authenticated, reportHandler)

		shopScoped := authenticated.Group("/shops/:shopId")
		shopScoped.Use(middleware.RoleAuthMiddleware(utils.RoleDistributor, utils.RoleShop), middleware.ShopScopeMiddleware())
		{
			shopScoped.GET("", shopHandler.GetShopByID)
			SetupInventoryRoutes(shopScoped, inventoryHandler)
			SetupSaleRoutes(shopScoped, saleHandler)
			SetupBillingRoutes(shopScoped, billingHandler)
		}
	}
}
