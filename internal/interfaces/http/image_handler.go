package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/category-admin/internal/application/dto"
	"github.com/jhoicas/category-admin/internal/application/imageupload"
	"github.com/jhoicas/category-admin/internal/application/ports"
	"github.com/jhoicas/category-admin/pkg/imageurl"
)

// ImageHandler endpoints JSON del widget de imágenes. La lista de imágenes la mantiene el cliente;
// aquí solo se valida, se preparan URLs y se calcula la lista tras eliminar.
type ImageHandler struct {
	baseURL string
}

// NewImageHandler construye el handler con la base de las URLs de imágenes.
func NewImageHandler(baseURL string) *ImageHandler {
	return &ImageHandler{baseURL: baseURL}
}

// Upload godoc
// @Summary      Validar imágenes seleccionadas
// @Tags         images
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        images  formData  file  true  "Imágenes (múltiples)"
// @Success      200  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/images [post]
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	mf, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera multipart/form-data"})
	}
	headers := mf.File["images"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "images es requerido"})
	}

	files := make([]imageupload.File, 0, len(headers))
	for _, fh := range headers {
		files = append(files, fileFromHeader(fh))
	}

	var notices ports.NoticeList
	out := dto.UploadResponse{Accepted: []dto.UploadedFileResponse{}}
	widget := imageupload.Widget{
		OnUpload: func(f imageupload.File) {
			out.Accepted = append(out.Accepted, dto.UploadedFileResponse{Name: f.Name, Size: f.Size, ContentType: f.ContentType})
		},
		Notifier: &notices,
	}
	widget.Select(files)
	out.Notices = notices.Responses()
	return c.JSON(out)
}

// Thumbnails godoc
// @Summary      Grilla de miniaturas con URLs autenticadas
// @Tags         images
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ThumbnailsRequest  true  "Imágenes actuales"
// @Success      200   {object}  dto.ThumbnailsResponse
// @Router       /api/images/thumbnails [post]
func (h *ImageHandler) Thumbnails(c *fiber.Ctx) error {
	var in dto.ThumbnailsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	prep := imageurl.Preparer{BaseURL: h.baseURL, Token: GetToken(c)}
	out := dto.ThumbnailsResponse{Items: []dto.ThumbnailResponse{}}
	for _, t := range imageupload.Thumbnails(in.Images, prep) {
		out.Items = append(out.Items, dto.ThumbnailResponse{Index: t.Index, URL: t.URL, Original: t.Original})
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Eliminar una imagen por índice
// @Tags         images
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RemoveImageRequest  true  "Lista e índice"
// @Success      200   {object}  dto.RemoveImageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/images/remove [post]
func (h *ImageHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveImageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Index < 0 || in.Index >= len(in.Images) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "index fuera de rango"})
	}

	remaining := in.Images
	widget := imageupload.Widget{
		OnRemove: func(i int) { remaining = imageupload.RemoveAt(remaining, i) },
	}
	widget.Remove(in.Index)
	return c.JSON(dto.RemoveImageResponse{Images: remaining})
}

func fileFromHeader(fh *multipart.FileHeader) imageupload.File {
	return imageupload.File{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
