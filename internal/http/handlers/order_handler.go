package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bazar/internal/domain"
	applog "bazar/internal/log"
	"bazar/internal/services"
	"bazar/internal/validate"
)

type OrderHandler struct {
	Checkout *services.CheckoutService
	Orders   *services.OrderService
}

type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	address, ok := validate.Address(req.ShippingAddress)
	if !ok {
		return badRequest(c, "enter a shipping address")
	}
	payment := req.PaymentMethod
	if payment == "" {
		payment = "Efectivo"
	}

	sid := ensureSID(c)
	u := currentUser(c)

	orderIDs, err := h.Checkout.Place(sid, u.ID, address, payment)
	if err != nil {
		applog.Error(c, "checkout.fail", err, map[string]any{
			"user_id":   u.ID,
			"committed": len(orderIDs),
		})
		return fail(c, err)
	}
	applog.Audit(c, "checkout.place", map[string]any{"user_id": u.ID, "orders": orderIDs})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orderIds": orderIDs})
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	u := currentUser(c)
	orders, err := h.Orders.ListByUser(u.ID)
	if err != nil {
		return fail(c, err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(orders)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	o, err := h.Orders.Get(id, currentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(o)
}

// StoreOrders lists orders placed with the seller's store.
func (h *OrderHandler) StoreOrders(c *fiber.Ctx) error {
	u := currentUser(c)
	orders, err := h.Orders.ListForSeller(u.ID)
	if err != nil {
		return fail(c, err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(orders)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	u := currentUser(c)
	if err := h.Orders.UpdateStatus(u.ID, id, domain.OrderStatus(req.Status)); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.status", map[string]any{"order_id": id, "status": req.Status, "user_id": u.ID})
	return c.JSON(fiber.Map{"ok": true})
}
