package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ImageHandler struct {
	service ImageServiceInterface
}

func NewImageHandler(s ImageServiceInterface) *ImageHandler {
	return &ImageHandler{service: s}
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

type DeleteImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Upload godoc
// @Summary 画像をアップロード（管理者）
// @Description multipart/form-data の file フィールドを受け取り、公開URLを返します
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param entity query string false "キーのプレフィックス" default(packages)
// @Param file formData file true "画像ファイル"
// @Success 201 {object} UploadImageResponse
// @Failure 400 {object} map[string]string "非対応の形式・サイズ超過"
// @Security BearerAuth
// @Router /admin/images [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "画像ファイルが必要です")
	}

	entity := c.QueryParam("entity")
	if entity == "" {
		entity = "packages"
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "画像ファイルを開けません")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.service.Upload(c.Request().Context(), entity, src, contentType, fileHeader.Size)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, UploadImageResponse{URL: url})
}

// Delete godoc
// @Summary 画像を削除（管理者）
// @Tags images
// @Accept json
// @Param request body DeleteImageRequest true "削除対象のURL"
// @Success 204
// @Failure 400 {object} map[string]string "URLが不正"
// @Security BearerAuth
// @Router /admin/images [delete]
func (h *ImageHandler) Delete(c echo.Context) error {
	var req DeleteImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), req.URL); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
