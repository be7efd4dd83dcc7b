package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/novastellaa/BE-Infokus-Studio/internal/api/middleware"
	"github.com/novastellaa/BE-Infokus-Studio/internal/application"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/reservation"
)

type ReservationHandler struct {
	service ReservationServiceInterface
}

func NewReservationHandler(s ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

type CreateReservationRequest struct {
	PackageID    string   `json:"package_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	AddonIDs     []string `json:"addon_ids"`
	Name         string   `json:"name" validate:"required" example:"卒業記念撮影"`
	Date         string   `json:"date" validate:"required" example:"2025-06-01"`
	TimeOptionID string   `json:"time_option_id" validate:"required"`
}

type ReservationResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	PackageID    string    `json:"package_id"`
	AddonIDs     []string  `json:"addon_ids"`
	Name         string    `json:"name"`
	Date         string    `json:"date" example:"2025-06-01"`
	TimeOptionID string    `json:"time_option_id"`
	Status       string    `json:"status" example:"pending"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateReservationResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Transaction TransactionResponse `json:"transaction"`
}

type OccupiedSlotsResponse struct {
	Date          string   `json:"date" example:"2025-06-01"`
	TimeOptionIDs []string `json:"time_option_ids"`
}

func toReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID: r.ID, UserID: r.UserID, PackageID: r.PackageID,
		AddonIDs: r.AddonIDs, Name: r.Name, Date: r.Date,
		TimeOptionID: r.TimeOptionID, Status: string(r.Status),
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

// Create godoc
// @Summary 予約を作成
// @Description 時間枠を確保し、予約と取引ヘッダーを同時に作成します
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "予約情報"
// @Success 201 {object} CreateReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "時間枠が既に予約済み"
// @Security BearerAuth
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	res, trans, err := h.service.CreateReservation(c.Request().Context(), application.CreateReservationInput{
		UserID:       middleware.UserID(c),
		PackageID:    req.PackageID,
		AddonIDs:     req.AddonIDs,
		Name:         req.Name,
		Date:         req.Date,
		TimeOptionID: req.TimeOptionID,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, CreateReservationResponse{
		Reservation: toReservationResponse(res),
		Transaction: toTransactionResponse(trans),
	})
}

// GetByID godoc
// @Summary 予約を取得
// @Description 指定IDの予約を取得します
// @Tags reservations
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c echo.Context) error {
	res, err := h.service.GetReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	if !middleware.IsAdmin(c) && res.UserID != middleware.UserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "この操作を行う権限がありません")
	}
	return c.JSON(http.StatusOK, toReservationResponse(res))
}

// GetMine godoc
// @Summary 自分の予約一覧を取得
// @Tags reservations
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} ReservationResponse
// @Security BearerAuth
// @Router /reservations [get]
func (h *ReservationHandler) GetMine(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	reservations, err := h.service.GetUserReservations(c.Request().Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// GetAll godoc
// @Summary 予約一覧を取得（管理者）
// @Tags reservations
// @Produce json
// @Param date query string false "予約日（YYYY-MM-DD）"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} ReservationResponse
// @Security BearerAuth
// @Router /admin/reservations [get]
func (h *ReservationHandler) GetAll(c echo.Context) error {
	if date := c.QueryParam("date"); date != "" {
		reservations, err := h.service.GetReservationsByDate(c.Request().Context(), date)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, toReservationResponses(reservations))
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	reservations, err := h.service.GetAllReservations(c.Request().Context(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// GetOccupiedSlots godoc
// @Summary 占有済み時間枠を取得
// @Description 指定日に予約済みの時間枠ID一覧を返します（認証不要）
// @Tags reservations
// @Produce json
// @Param date query string true "予約日（YYYY-MM-DD）"
// @Success 200 {object} OccupiedSlotsResponse
// @Failure 400 {object} map[string]string
// @Router /slots/occupied [get]
func (h *ReservationHandler) GetOccupiedSlots(c echo.Context) error {
	date := c.QueryParam("date")
	ids, err := h.service.GetOccupiedSlots(c.Request().Context(), date)
	if err != nil {
		return toHTTPError(err)
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, OccupiedSlotsResponse{Date: date, TimeOptionIDs: ids})
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description 予約をキャンセルし、時間枠を解放します
// @Tags reservations
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "既にキャンセル済み・完了済み"
// @Security BearerAuth
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	res, err := h.service.CancelReservation(c.Request().Context(), c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(res))
}

// Delete godoc
// @Summary 予約を削除（管理者）
// @Description 予約に削除マーカーを付けます。履歴は保持されます
// @Tags reservations
// @Param id path string true "予約ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/reservations/{id} [delete]
func (h *ReservationHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteReservation(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toReservationResponses(reservations []*reservation.Reservation) []ReservationResponse {
	resp := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = toReservationResponse(r)
	}
	return resp
}
