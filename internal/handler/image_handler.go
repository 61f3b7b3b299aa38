package handler

import (
	"errors"
	"net/http"

	"app/internal/config"
	"app/internal/infra/storage"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

// /admin/images のアップロードAPI
type ImageHandler struct {
	store *storage.LocalImageStore
}

func NewImageHandler(store *storage.LocalImageStore) *ImageHandler {
	return &ImageHandler{store: store}
}

func (h *ImageHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("/images", h.upload)
}

// multipart/form-data の "image" フィールドを受ける
func (h *ImageHandler) upload(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image file required"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot read image"})
	}
	defer f.Close()

	url, err := h.store.Save(f, fh.Size)
	if err != nil {
		if errors.Is(err, storage.ErrImageTooLarge) {
			return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "image too large"})
		}
		if errors.Is(err, storage.ErrUnsupportedType) {
			return c.JSON(http.StatusUnsupportedMediaType, ErrorResponse{Error: "unsupported image type"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}
