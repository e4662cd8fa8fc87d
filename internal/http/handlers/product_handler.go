package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"bazar/internal/domain"
	applog "bazar/internal/log"
	"bazar/internal/services"
	"bazar/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Recommended(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	products, err := h.Catalog.Recommended(limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return badRequest(c, "invalid search query")
	}
	products, err := h.Catalog.Search(q)
	if err != nil {
		return fail(c, err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(products)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}

func (h *ProductHandler) ByStore(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid store id")
	}
	products, err := h.Catalog.ListByStore(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

type productRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice"`
	Category      string   `json:"category"`
	ImageURLs     []string `json:"imageUrls"`
	Stock         int      `json:"stock"`
	Available     bool     `json:"available"`
	Tags          []string `json:"tags"`
}

func (r productRequest) toDomain() (domain.Product, string) {
	name, ok := validate.Name(r.Name)
	if !ok {
		return domain.Product{}, "enter a product name"
	}
	if r.Price < 0 {
		return domain.Product{}, "price cannot be negative"
	}
	if r.DiscountPrice != nil && *r.DiscountPrice < 0 {
		return domain.Product{}, "discount price cannot be negative"
	}
	if r.Stock < 0 {
		return domain.Product{}, "stock cannot be negative"
	}
	return domain.Product{
		Name:          name,
		Description:   r.Description,
		Price:         r.Price,
		DiscountPrice: r.DiscountPrice,
		Category:      r.Category,
		ImageURLs:     r.ImageURLs,
		Stock:         r.Stock,
		Available:     r.Available,
		Tags:          r.Tags,
	}, ""
}

func (h *ProductHandler) Add(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	p, msg := req.toDomain()
	if msg != "" {
		return badRequest(c, msg)
	}
	u := currentUser(c)
	id, err := h.Catalog.AddProduct(u.ID, p)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.add", map[string]any{"product_id": id, "user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	p, msg := req.toDomain()
	if msg != "" {
		return badRequest(c, msg)
	}
	u := currentUser(c)
	if err := h.Catalog.UpdateProduct(u.ID, id, p); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id, "user_id": u.ID})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	u := currentUser(c)
	if err := h.Catalog.DeleteProduct(u.ID, id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id, "user_id": u.ID})
	return c.JSON(fiber.Map{"ok": true})
}
