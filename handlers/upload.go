package handlers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/middleware"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/utils"
)

const (
	maxUploadFiles    = 5
	maxUploadFileSize = 5 << 20 // 5 MB
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

func (uc *UploadController) UploadImages(c echo.Context) error {
	user := middleware.CurrentUser(c)

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Invalid multipart form")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return badRequest(c, "No images provided")
	}
	if len(files) > maxUploadFiles {
		return badRequest(c, "Maximum 5 images allowed per report")
	}

	var images []models.ReportImage
	for _, fileHeader := range files {
		if fileHeader.Size > maxUploadFileSize {
			return badRequest(c, "Each image must be at most 5 MB")
		}

		src, err := fileHeader.Open()
		if err != nil {
			return fail(c, err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return fail(c, err)
		}

		if !allowedImageTypes[http.DetectContentType(data)] {
			return badRequest(c, "Only JPEG, PNG, GIF, and WebP images are allowed")
		}

		url, publicID, err := utils.UploadReportImage(data, user.ID.Hex())
		if err != nil {
			return fail(c, err)
		}
		images = append(images, models.ReportImage{URL: url, PublicID: publicID})
	}

	return respond(c, http.StatusOK, images)
}

// DeleteImage destroys an uploaded asset. Cloudinary public ids contain
// slashes, so the route captures the remainder of the path.
func (uc *UploadController) DeleteImage(c echo.Context) error {
	publicID := c.Param("*")
	if publicID == "" {
		return badRequest(c, "Image public ID is required")
	}
	if err := utils.DeleteReportImage(publicID); err != nil {
		return fail(c, err)
	}
	return message(c, http.StatusOK, "Image deleted successfully")
}
