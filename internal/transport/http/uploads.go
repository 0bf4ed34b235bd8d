package http

import (
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"recipe-service/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	maxAvatarSize      = 2 * 1024 * 1024
	maxRecipeImageSize = 5 * 1024 * 1024
	maxRecipeImages    = 10
)

// UploadAvatar stores a single profile picture and returns its public URL.
// The caller is expected to persist the URL via PUT /profiles/:user_id.
func (h *Handler) UploadAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return apperr.Validation("file is required")
	}
	userID, err := uuid.Parse(c.FormValue("user_id"))
	if err != nil {
		return apperr.Validation("invalid user_id")
	}

	if !isImage(file) {
		return apperr.Validation("only image files can be uploaded")
	}
	if file.Size > maxAvatarSize {
		return apperr.Validation("avatar must be smaller than 2MB")
	}

	content, contentType, err := readUpload(file)
	if err != nil {
		return err
	}

	key := "avatars/" + userID.String() + "-" + uuid.NewString() + filepath.Ext(file.Filename)
	if err := h.storage.Upload(c.Context(), key, content, contentType); err != nil {
		return err
	}

	log.Printf("🖼️ [UPLOAD] avatar stored for user %s (%d bytes)", userID, file.Size)
	return c.JSON(fiber.Map{
		"url":     h.storage.PublicURL(key),
		"message": "avatar uploaded",
	})
}

// UploadRecipeImages stores a batch of recipe photos. Files that are not
// images or exceed the size cap are skipped without failing the batch.
func (h *Handler) UploadRecipeImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperr.Validation("multipart form is required")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return apperr.Validation("at least one file is required")
	}
	if len(files) > maxRecipeImages {
		return apperr.Validation("a maximum of %d images can be uploaded per request", maxRecipeImages)
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		if !isImage(file) || file.Size > maxRecipeImageSize {
			log.Printf("⚠️ [UPLOAD] skipping %q (type=%s size=%d)", file.Filename, file.Header.Get("Content-Type"), file.Size)
			continue
		}

		content, contentType, err := readUpload(file)
		if err != nil {
			return err
		}

		key := "recipes/" + uuid.NewString() + filepath.Ext(file.Filename)
		if err := h.storage.Upload(c.Context(), key, content, contentType); err != nil {
			return err
		}
		urls = append(urls, h.storage.PublicURL(key))
	}

	return c.JSON(fiber.Map{
		"urls":    urls,
		"count":   len(urls),
		"message": "images uploaded",
	})
}

func isImage(file *multipart.FileHeader) bool {
	return strings.HasPrefix(file.Header.Get("Content-Type"), "image/")
}

func readUpload(file *multipart.FileHeader) ([]byte, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}
	return content, file.Header.Get("Content-Type"), nil
}
