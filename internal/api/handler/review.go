package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/novastellaa/BE-Infokus-Studio/internal/api/middleware"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/review"
)

type ReviewHandler struct {
	service ReviewServiceInterface
}

func NewReviewHandler(s ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: s}
}

type CreateReviewRequest struct {
	ReservationID string `json:"reservation_id" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5" example:"5"`
	Comment       string `json:"comment" example:"とても良い撮影でした"`
}

type ReviewResponse struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	Rating        int       `json:"rating" example:"5"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

func toReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID: r.ID, ReservationID: r.ReservationID, UserID: r.UserID,
		Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt,
	}
}

// Create godoc
// @Summary レビューを作成
// @Description 完了済み予約の所有者のみレビューを作成できます
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body CreateReviewRequest true "レビュー情報"
// @Success 201 {object} ReviewResponse
// @Failure 400 {object} map[string]string "レビュー不可の予約"
// @Failure 409 {object} map[string]string "レビューが既に存在"
// @Security BearerAuth
// @Router /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.CreateReview(c.Request().Context(), req.ReservationID, middleware.UserID(c), req.Rating, req.Comment)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toReviewResponse(r))
}

// GetByReservation godoc
// @Summary 予約のレビューを取得
// @Tags reviews
// @Produce json
// @Param reservationId path string true "予約ID"
// @Success 200 {object} ReviewResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{reservationId}/review [get]
func (h *ReviewHandler) GetByReservation(c echo.Context) error {
	r, err := h.service.GetReviewByReservation(c.Request().Context(), c.Param("reservationId"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReviewResponse(r))
}

// List godoc
// @Summary レビュー一覧を取得
// @Tags reviews
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} ReviewResponse
// @Router /reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	reviews, err := h.service.ListReviews(c.Request().Context(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		resp[i] = toReviewResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}
