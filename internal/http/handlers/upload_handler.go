package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	applog "bazar/internal/log"
	"bazar/internal/services"
)

type UploadHandler struct {
	Uploads *services.UploadService
	Auth    *services.AuthService
}

// Image accepts one or more pictures under the "image" multipart field and
// returns their public URLs. Uploads are sequential; the first failure
// aborts the batch.
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "expected multipart form")
	}
	files := form.File["image"]
	if len(files) == 0 {
		return badRequest(c, "missing image")
	}

	pictures := make([][]byte, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "could not read image")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return badRequest(c, "could not read image")
		}
		pictures = append(pictures, data)
	}

	urls, err := h.Uploads.UploadAll(pictures)
	if err != nil {
		return fail(c, err)
	}
	applog.Info(c, "upload.image", map[string]any{"count": len(urls)})
	return c.JSON(fiber.Map{"urls": urls})
}

// ProfileImage uploads a picture and sets it as the user's profile image.
func (h *UploadHandler) ProfileImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "missing image")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "could not read image")
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return badRequest(c, "could not read image")
	}

	url, err := h.Uploads.UploadImage(data)
	if err != nil {
		return fail(c, err)
	}
	u := currentUser(c)
	if err := h.Auth.UpdateProfileImage(u.ID, url); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "profile.image", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"url": url})
}
