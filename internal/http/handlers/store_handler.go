package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bazar/internal/domain"
	applog "bazar/internal/log"
	"bazar/internal/services"
	"bazar/internal/validate"
)

type StoreHandler struct {
	Stores *services.StoreService
}

func (h *StoreHandler) List(c *fiber.Ctx) error {
	stores, err := h.Stores.ListActive()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stores)
}

func (h *StoreHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return badRequest(c, "invalid search query")
	}
	stores, err := h.Stores.Search(q)
	if err != nil {
		return fail(c, err)
	}
	if stores == nil {
		stores = []domain.Store{}
	}
	return c.JSON(stores)
}

func (h *StoreHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid store id")
	}
	s, err := h.Stores.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "store not found"})
	}
	return c.JSON(s)
}

// Mine returns the signed-in seller's store, 404 when they have none.
func (h *StoreHandler) Mine(c *fiber.Ctx) error {
	u := currentUser(c)
	s, err := h.Stores.ByOwner(u.ID)
	if err != nil {
		return fail(c, err)
	}
	if s == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "you do not have a store yet"})
	}
	return c.JSON(s)
}

type storeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	LogoURL     string `json:"logoUrl"`
	BannerURL   string `json:"bannerUrl"`
	Active      bool   `json:"isActive"`
}

func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var req storeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "enter a store name")
	}
	u := currentUser(c)
	id, err := h.Stores.Create(u, domain.Store{
		Name:        name,
		Description: req.Description,
		Category:    req.Category,
		LogoURL:     req.LogoURL,
		BannerURL:   req.BannerURL,
	})
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "store.create", map[string]any{"store_id": id, "user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *StoreHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid store id")
	}
	var req storeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	name, nameOK := validate.Name(req.Name)
	if !nameOK {
		return badRequest(c, "enter a store name")
	}
	u := currentUser(c)
	err := h.Stores.Update(u.ID, id, domain.Store{
		Name:        name,
		Description: req.Description,
		Category:    req.Category,
		LogoURL:     req.LogoURL,
		BannerURL:   req.BannerURL,
		Active:      req.Active,
	})
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "store.update", map[string]any{"store_id": id, "user_id": u.ID})
	return c.JSON(fiber.Map{"ok": true})
}
