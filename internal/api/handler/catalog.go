package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/novastellaa/BE-Infokus-Studio/internal/application"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/catalog"
)

type CatalogHandler struct {
	service CatalogServiceInterface
}

func NewCatalogHandler(s CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: s}
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required" example:"スタジオ撮影"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PackageRequest struct {
	CategoryID  string   `json:"category_id" validate:"required"`
	Name        string   `json:"name" validate:"required" example:"ベーシックプラン"`
	Description string   `json:"description"`
	Price       int      `json:"price" validate:"gte=0" example:"150000"`
	ImageURLs   []string `json:"image_urls"`
}

type PackageResponse struct {
	ID          string   `json:"id"`
	CategoryID  string   `json:"category_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	ImageURLs   []string `json:"image_urls"`
}

type AddonRequest struct {
	Name  string `json:"name" validate:"required" example:"追加アルバム"`
	Price int    `json:"price" validate:"gte=0" example:"20000"`
}

type AddonResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

type TimeOptionRequest struct {
	StartTime string `json:"start_time" validate:"required" example:"10:00"`
	EndTime   string `json:"end_time" validate:"required" example:"12:00"`
}

type TimeOptionResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func toCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func toPackageResponse(p *catalog.Package) PackageResponse {
	urls := p.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	return PackageResponse{
		ID: p.ID, CategoryID: p.CategoryID, Name: p.Name,
		Description: p.Description, Price: p.Price, ImageURLs: urls,
	}
}

func toAddonResponse(a *catalog.Addon) AddonResponse {
	return AddonResponse{ID: a.ID, Name: a.Name, Price: a.Price}
}

func toTimeOptionResponse(t *catalog.TimeOption) TimeOptionResponse {
	return TimeOptionResponse{ID: t.ID, StartTime: t.StartTime, EndTime: t.EndTime}
}

// CreateCategory godoc
// @Summary カテゴリを作成（管理者）
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "カテゴリ情報"
// @Success 201 {object} CategoryResponse
// @Security BearerAuth
// @Router /admin/categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	cat, err := h.service.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

// ListCategories godoc
// @Summary カテゴリ一覧を取得
// @Tags catalog
// @Produce json
// @Success 200 {array} CategoryResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		resp[i] = toCategoryResponse(cat)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetCategory godoc
// @Summary カテゴリを取得
// @Tags catalog
// @Produce json
// @Param id path string true "カテゴリID"
// @Success 200 {object} CategoryResponse
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [get]
func (h *CatalogHandler) GetCategory(c echo.Context) error {
	cat, err := h.service.GetCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// UpdateCategory godoc
// @Summary カテゴリを更新（管理者）
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "カテゴリID"
// @Param request body CategoryRequest true "カテゴリ情報"
// @Success 200 {object} CategoryResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	cat, err := h.service.UpdateCategory(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// DeleteCategory godoc
// @Summary カテゴリを削除（管理者）
// @Tags catalog
// @Param id path string true "カテゴリID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.service.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreatePackage godoc
// @Summary パッケージを作成（管理者）
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body PackageRequest true "パッケージ情報"
// @Success 201 {object} PackageResponse
// @Failure 404 {object} map[string]string "カテゴリが存在しない"
// @Security BearerAuth
// @Router /admin/packages [post]
func (h *CatalogHandler) CreatePackage(c echo.Context) error {
	var req PackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	pkg, err := h.service.CreatePackage(c.Request().Context(), application.PackageInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toPackageResponse(pkg))
}

// ListPackages godoc
// @Summary パッケージ一覧を取得
// @Tags catalog
// @Produce json
// @Param category_id query string false "カテゴリで絞り込み"
// @Success 200 {array} PackageResponse
// @Router /packages [get]
func (h *CatalogHandler) ListPackages(c echo.Context) error {
	packages, err := h.service.ListPackages(c.Request().Context(), c.QueryParam("category_id"))
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]PackageResponse, len(packages))
	for i, p := range packages {
		resp[i] = toPackageResponse(p)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetPackage godoc
// @Summary パッケージを取得
// @Tags catalog
// @Produce json
// @Param id path string true "パッケージID"
// @Success 200 {object} PackageResponse
// @Failure 404 {object} map[string]string
// @Router /packages/{id} [get]
func (h *CatalogHandler) GetPackage(c echo.Context) error {
	pkg, err := h.service.GetPackage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toPackageResponse(pkg))
}

// UpdatePackage godoc
// @Summary パッケージを更新（管理者）
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "パッケージID"
// @Param request body PackageRequest true "パッケージ情報"
// @Success 200 {object} PackageResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/packages/{id} [put]
func (h *CatalogHandler) UpdatePackage(c echo.Context) error {
	var req PackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	pkg, err := h.service.UpdatePackage(c.Request().Context(), c.Param("id"), application.PackageInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toPackageResponse(pkg))
}

// DeletePackage godoc
// @Summary パッケージを削除（管理者）
// @Tags catalog
// @Param id path string true "パッケージID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/packages/{id} [delete]
func (h *CatalogHandler) DeletePackage(c echo.Context) error {
	if err := h.service.DeletePackage(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateAddon godoc
// @Summary オプションを作成（管理者）
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body AddonRequest true "オプション情報"
// @Success 201 {object} AddonResponse
// @Security BearerAuth
// @Router /admin/addons [post]
func (h *CatalogHandler) CreateAddon(c echo.Context) error {
	var req AddonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	addon, err := h.service.CreateAddon(c.Request().Context(), req.Name, req.Price)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toAddonResponse(addon))
}

// ListAddons godoc
// @Summary オプション一覧を取得
// @Tags catalog
// @Produce json
// @Success 200 {array} AddonResponse
// @Router /addons [get]
func (h *CatalogHandler) ListAddons(c echo.Context) error {
	addons, err := h.service.ListAddons(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]AddonResponse, len(addons))
	for i, a := range addons {
		resp[i] = toAddonResponse(a)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAddon godoc
// @Summary オプションを取得
// @Tags catalog
// @Produce json
// @Param id path string true "オプションID"
// @Success 200 {object} AddonResponse
// @Failure 404 {object} map[string]string
// @Router /addons/{id} [get]
func (h *CatalogHandler) GetAddon(c echo.Context) error {
	addon, err := h.service.GetAddon(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toAddonResponse(addon))
}

// UpdateAddon godoc
// @Summary オプションを更新（管理者）
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "オプションID"
// @Param request body AddonRequest true "オプション情報"
// @Success 200 {object} AddonResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/addons/{id} [put]
func (h *CatalogHandler) UpdateAddon(c echo.Context) error {
	var req AddonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	addon, err := h.service.UpdateAddon(c.Request().Context(), c.Param("id"), req.Name, req.Price)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toAddonResponse(addon))
}

// DeleteAddon godoc
// @Summary オプションを削除（管理者）
// @Tags catalog
// @Param id path string true "オプションID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/addons/{id} [delete]
func (h *CatalogHandler) DeleteAddon(c echo.Context) error {
	if err := h.service.DeleteAddon(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateTimeOption godoc
// @Summary 時間枠を作成（管理者）
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body TimeOptionRequest true "時間枠情報"
// @Success 201 {object} TimeOptionResponse
// @Security BearerAuth
// @Router /admin/time-options [post]
func (h *CatalogHandler) CreateTimeOption(c echo.Context) error {
	var req TimeOptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	opt, err := h.service.CreateTimeOption(c.Request().Context(), req.StartTime, req.EndTime)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toTimeOptionResponse(opt))
}

// ListTimeOptions godoc
// @Summary 時間枠一覧を取得
// @Tags catalog
// @Produce json
// @Success 200 {array} TimeOptionResponse
// @Router /time-options [get]
func (h *CatalogHandler) ListTimeOptions(c echo.Context) error {
	options, err := h.service.ListTimeOptions(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]TimeOptionResponse, len(options))
	for i, o := range options {
		resp[i] = toTimeOptionResponse(o)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetTimeOption godoc
// @Summary 時間枠を取得
// @Tags catalog
// @Produce json
// @Param id path string true "時間枠ID"
// @Success 200 {object} TimeOptionResponse
// @Failure 404 {object} map[string]string
// @Router /time-options/{id} [get]
func (h *CatalogHandler) GetTimeOption(c echo.Context) error {
	opt, err := h.service.GetTimeOption(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toTimeOptionResponse(opt))
}

// UpdateTimeOption godoc
// @Summary 時間枠を更新（管理者）
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "時間枠ID"
// @Param request body TimeOptionRequest true "時間枠情報"
// @Success 200 {object} TimeOptionResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/time-options/{id} [put]
func (h *CatalogHandler) UpdateTimeOption(c echo.Context) error {
	var req TimeOptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	opt, err := h.service.UpdateTimeOption(c.Request().Context(), c.Param("id"), req.StartTime, req.EndTime)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toTimeOptionResponse(opt))
}

// DeleteTimeOption godoc
// @Summary 時間枠を削除（管理者）
// @Tags catalog
// @Param id path string true "時間枠ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/time-options/{id} [delete]
func (h *CatalogHandler) DeleteTimeOption(c echo.Context) error {
	if err := h.service.DeleteTimeOption(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
