package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/purchasing"
	"github.com/jhoicas/Bodega-api/internal/application/sales"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	ProductUC      *usecase.ProductUseCase
	StockUC        *inventory.StockUseCase
	InventoryQuery *inventory.QueryUseCase
	Replenishment  *inventory.ReplenishmentUseCase
	CreateSale     *sales.CreateSaleUseCase
	VoidSale       *sales.VoidSaleUseCase
	SaleQuery      *sales.SaleQueryUseCase
	ReceiptPDF     *sales.ReceiptPDFUseCase
	OrderUC        *purchasing.OrderUseCase
	ReceiveOrder   *purchasing.ReceiveOrderUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	admin := RequireRole(entity.RoleAdmin)
	warehouseStaff := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	posStaff := RequireRole(entity.RoleAdmin, entity.RoleCajero)

	// Warehouses: lectura para todos, escritura solo admin
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", admin, warehouseHandler.Create)
	warehouses.Put("/:id", admin, warehouseHandler.Update)

	// Products: lectura para todos, escritura admin o bodeguero
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", warehouseStaff, productHandler.Create)
	products.Put("/:id", warehouseStaff, productHandler.Update)

	// Inventory: mutaciones admin o bodeguero, consultas para todos
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.InventoryQuery, deps.Replenishment)
	invGroup.Post("/adjustments", warehouseStaff, inventoryHandler.Adjust)
	invGroup.Post("/transfers", warehouseStaff, inventoryHandler.Transfer)
	invGroup.Get("/stock/:warehouse_id", inventoryHandler.ListStock)
	invGroup.Get("/stock/:warehouse_id/:product_id", inventoryHandler.GetStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:type/:id", inventoryHandler.ListMovementsByReference)
	invGroup.Get("/replenishment-list", warehouseStaff, inventoryHandler.GetReplenishmentList)

	// Sales: crear admin o cajero, anular solo admin
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.VoidSale, deps.SaleQuery, deps.ReceiptPDF)
	salesGroup.Post("/", posStaff, saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Post("/:id/void", admin, saleHandler.Void)

	// Purchase orders: admin o bodeguero; aprobar solo admin
	orders := protected.Group("/purchase-orders", warehouseStaff)
	purchaseHandler := NewPurchaseHandler(deps.OrderUC, deps.ReceiveOrder)
	orders.Post("/", purchaseHandler.Create)
	orders.Get("/", purchaseHandler.List)
	orders.Get("/:id", purchaseHandler.GetByID)
	orders.Post("/:id/submit", purchaseHandler.Submit)
	orders.Post("/:id/approve", admin, purchaseHandler.Approve)
	orders.Post("/:id/mark-ordered", purchaseHandler.MarkOrdered)
	orders.Post("/:id/cancel", purchaseHandler.Cancel)
	orders.Post("/:id/receive", purchaseHandler.Receive)
}
