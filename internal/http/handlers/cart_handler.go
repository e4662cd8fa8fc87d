package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bazar/internal/domain"
	applog "bazar/internal/log"
	"bazar/internal/services"
	"bazar/internal/validate"
)

type CartHandler struct {
	Cart    *services.CartService
	Catalog *services.CatalogService
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Add looks the product up for a fresh price/stock snapshot and merges it
// into the cart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	productID, ok := validate.ID(req.ProductID)
	if !ok {
		return badRequest(c, "missing productId")
	}
	qty := validate.ClampQty(req.Quantity)

	p, err := h.Catalog.Get(productID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	sid := ensureSID(c)
	image := ""
	if len(p.ImageURLs) > 0 {
		image = p.ImageURLs[0]
	}
	err = h.Cart.Add(sid, domain.CartItem{
		ProductID:    p.ID,
		StoreID:      p.StoreID,
		StoreName:    p.StoreName,
		ProductName:  p.Name,
		ProductImage: image,
		Price:        p.FinalPrice(),
		Quantity:     qty,
		Stock:        p.Stock,
	})
	if err != nil {
		return fail(c, err)
	}
	applog.Info(c, "cart.add", map[string]any{"product_id": p.ID, "qty": qty})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cv)
}

func (h *CartHandler) Count(c *fiber.Ctx) error {
	n, err := h.Cart.Count(ensureSID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"count": n})
}

type cartLineRequest struct {
	ProductID string `json:"productId"`
}

func (h *CartHandler) lineOp(c *fiber.Ctx, op func(sid, productID string) error) error {
	var req cartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	productID, ok := validate.ID(req.ProductID)
	if !ok {
		return badRequest(c, "missing productId")
	}
	if err := op(ensureSID(c), productID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CartHandler) Increment(c *fiber.Ctx) error { return h.lineOp(c, h.Cart.Increment) }
func (h *CartHandler) Decrement(c *fiber.Ctx) error { return h.lineOp(c, h.Cart.Decrement) }
func (h *CartHandler) Remove(c *fiber.Ctx) error    { return h.lineOp(c, h.Cart.Remove) }

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(ensureSID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
