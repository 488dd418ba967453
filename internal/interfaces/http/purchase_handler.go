package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/purchasing"
)

// PurchaseHandler maneja las peticiones HTTP de órdenes de compra (protegido).
type PurchaseHandler struct {
	orderUC   *purchasing.OrderUseCase
	receiveUC *purchasing.ReceiveOrderUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(orderUC *purchasing.OrderUseCase, receiveUC *purchasing.ReceiveOrderUseCase) *PurchaseHandler {
	return &PurchaseHandler{orderUC: orderUC, receiveUC: receiveUC}
}

// Create godoc
// @Summary      Crear orden de compra (draft)
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "warehouse_id, supplier_name, items"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orderUC.CreateOrder(c.Context(), companyID, userID, in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetByID godoc
// @Summary      Detalle de una orden de compra
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Orden (UUID)"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	order, err := h.orderUC.GetOrder(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(order)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado (draft, pending, approved, ordered, received, cancelled)"
// @Success      200  {array}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.orderUC.ListOrders(c.Context(), companyID, c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "orders": list})
}

// transition aplica un cambio de estado simple (submit/approve/mark-ordered/cancel).
func (h *PurchaseHandler) transition(c *fiber.Ctx, fn func(ctx *fiber.Ctx, companyID, orderID string) error) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := fn(c, companyID, c.Params("id")); err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}

// Submit pasa la orden de draft a pending.
// POST /api/purchase-orders/:id/submit
func (h *PurchaseHandler) Submit(c *fiber.Ctx) error {
	return h.transition(c, func(ctx *fiber.Ctx, companyID, orderID string) error {
		return h.orderUC.Submit(ctx.Context(), companyID, orderID)
	})
}

// Approve pasa la orden de pending a approved.
// POST /api/purchase-orders/:id/approve
func (h *PurchaseHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, func(ctx *fiber.Ctx, companyID, orderID string) error {
		return h.orderUC.Approve(ctx.Context(), companyID, orderID)
	})
}

// MarkOrdered pasa la orden de approved a ordered (enviada al proveedor).
// POST /api/purchase-orders/:id/mark-ordered
func (h *PurchaseHandler) MarkOrdered(c *fiber.Ctx) error {
	return h.transition(c, func(ctx *fiber.Ctx, companyID, orderID string) error {
		return h.orderUC.MarkOrdered(ctx.Context(), companyID, orderID)
	})
}

// Cancel cancela la orden (desde draft, pending o approved).
// POST /api/purchase-orders/:id/cancel
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, func(ctx *fiber.Ctx, companyID, orderID string) error {
		return h.orderUC.Cancel(ctx.Context(), companyID, orderID)
	})
}

// Receive godoc
// @Summary      Recibir mercancía contra la orden
// @Description  Suma stock, actualiza costo promedio y converge el estado de la orden en una sola transacción.
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Orden (UUID)"
// @Param        body  body  dto.ReceiveOrderRequest  true  "items recibidos"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.receiveUC.ReceiveOrder(c.Context(), companyID, userID, c.Params("id"), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(order)
}
