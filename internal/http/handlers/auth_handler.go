package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bazar/internal/domain"
	applog "bazar/internal/log"
	"bazar/internal/services"
	"bazar/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type signUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	email, ok := validate.Email(req.Email)
	if !ok {
		return badRequest(c, "enter a valid email")
	}
	if !validate.Password(req.Password) {
		return badRequest(c, "password must be 8-64 characters with upper, lower and digit")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "enter your name")
	}
	phone, ok := validate.Phone(req.PhoneNumber)
	if !ok {
		return badRequest(c, "enter a valid phone number")
	}

	sid := ensureSID(c)
	u, err := h.Auth.SignUp(sid, email, req.Password, name, phone, domain.UserRole(req.Role))
	if err != nil {
		applog.Security(c, "auth.signup.fail", map[string]any{"email": email})
		return fail(c, err)
	}
	applog.Audit(c, "auth.signup", map[string]any{"user_id": u.ID, "role": u.Role})
	return c.Status(fiber.StatusCreated).JSON(u)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	sid := ensureSID(c)
	u, err := h.Auth.SignIn(sid, req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.signin.fail", map[string]any{"email": req.Email})
		return fail(c, err)
	}
	applog.Audit(c, "auth.signin", map[string]any{"user_id": u.ID})
	return c.JSON(u)
}

func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		if err := h.Auth.SignOut(sid); err != nil {
			return fail(c, err)
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

type resetRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) SendPasswordReset(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return badRequest(c, "enter a valid email")
	}
	if _, err := h.Auth.SendPasswordReset(email); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "auth.reset.sent", map[string]any{"email": email})
	return c.JSON(fiber.Map{"ok": true})
}
