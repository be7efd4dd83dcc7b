package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/novastellaa/BE-Infokus-Studio/internal/api/middleware"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/payment"
)

type TransactionHandler struct {
	service PaymentServiceInterface
}

func NewTransactionHandler(s PaymentServiceInterface) *TransactionHandler {
	return &TransactionHandler{service: s}
}

type OpenTransactionRequest struct {
	ReservationID string `json:"reservation_id" validate:"required"`
	TotalAmount   int    `json:"total_amount" validate:"required,gt=0" example:"150000"`
}

type SubmitProofRequest struct {
	Amount   int    `json:"amount" validate:"required,gt=0" example:"50000"`
	ProofURL string `json:"proof_url" validate:"required,url"`
}

type TransactionResponse struct {
	ID            string           `json:"id"`
	ReservationID string           `json:"reservation_id"`
	TotalAmount   int              `json:"total_amount" example:"150000"`
	Status        string           `json:"status" example:"partially_paid"`
	Details       []DetailResponse `json:"details"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type DetailResponse struct {
	ID         string     `json:"id"`
	Amount     int        `json:"amount" example:"50000"`
	ProofURL   string     `json:"proof_url"`
	Status     string     `json:"status" example:"submitted"`
	ReviewerID *string    `json:"reviewer_id,omitempty"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toTransactionResponse(t *payment.Transaction) TransactionResponse {
	details := make([]DetailResponse, len(t.Details))
	for i, d := range t.Details {
		details[i] = DetailResponse{
			ID: d.ID, Amount: d.Amount, ProofURL: d.ProofURL,
			Status: string(d.Status), ReviewerID: d.ReviewerID,
			DecidedAt: d.DecidedAt, CreatedAt: d.CreatedAt,
		}
	}
	return TransactionResponse{
		ID: t.ID, ReservationID: t.ReservationID,
		TotalAmount: t.TotalAmount, Status: string(t.Status),
		Details: details, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

// Open godoc
// @Summary 取引を開く（管理者）
// @Description 予約に対する取引ヘッダーを作成します。通常は予約作成時に自動で開かれます
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body OpenTransactionRequest true "取引情報"
// @Success 201 {object} TransactionResponse
// @Failure 409 {object} map[string]string "取引が既に存在"
// @Security BearerAuth
// @Router /admin/transactions [post]
func (h *TransactionHandler) Open(c echo.Context) error {
	var req OpenTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	trans, err := h.service.OpenTransaction(c.Request().Context(), req.ReservationID, req.TotalAmount)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toTransactionResponse(trans))
}

// SubmitProof godoc
// @Summary 支払い証明を提出
// @Description 取引へ新しい支払い明細行を追加します
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "取引ID"
// @Param request body SubmitProofRequest true "支払い情報"
// @Success 201 {object} TransactionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "取引は既に完済"
// @Security BearerAuth
// @Router /transactions/{id}/proofs [post]
func (h *TransactionHandler) SubmitProof(c echo.Context) error {
	var req SubmitProofRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	trans, err := h.service.SubmitProof(c.Request().Context(), c.Param("id"), req.Amount, req.ProofURL, middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toTransactionResponse(trans))
}

// SetValid godoc
// @Summary 支払い明細を承認（管理者）
// @Description 明細を承認し、ヘッダー状態を再計算します。完済時は予約も完了します
// @Tags transactions
// @Produce json
// @Param id path string true "取引ID"
// @Param detailId path string true "明細ID"
// @Success 200 {object} TransactionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "明細は判定済み"
// @Security BearerAuth
// @Router /admin/transactions/{id}/details/{detailId}/valid [post]
func (h *TransactionHandler) SetValid(c echo.Context) error {
	trans, err := h.service.SetValid(c.Request().Context(), c.Param("id"), c.Param("detailId"), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toTransactionResponse(trans))
}

// SetInvalid godoc
// @Summary 支払い明細を却下（管理者）
// @Tags transactions
// @Produce json
// @Param id path string true "取引ID"
// @Param detailId path string true "明細ID"
// @Success 200 {object} TransactionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "明細は判定済み"
// @Security BearerAuth
// @Router /admin/transactions/{id}/details/{detailId}/invalid [post]
func (h *TransactionHandler) SetInvalid(c echo.Context) error {
	trans, err := h.service.SetInvalid(c.Request().Context(), c.Param("id"), c.Param("detailId"), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toTransactionResponse(trans))
}

// MarkPaidOff godoc
// @Summary 取引を強制完了（管理者）
// @Description 明細の合計に関わらず取引を完済にします（現金決済等）
// @Tags transactions
// @Produce json
// @Param id path string true "取引ID"
// @Success 200 {object} TransactionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "取引は既に完済"
// @Security BearerAuth
// @Router /admin/transactions/{id}/paid-off [post]
func (h *TransactionHandler) MarkPaidOff(c echo.Context) error {
	trans, err := h.service.MarkPaidOff(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toTransactionResponse(trans))
}

// GetByID godoc
// @Summary 取引を取得
// @Tags transactions
// @Produce json
// @Param id path string true "取引ID"
// @Success 200 {object} TransactionResponse
// @Failure 403 {object} map[string]string "所有者以外"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetByID(c echo.Context) error {
	trans, err := h.service.GetTransaction(c.Request().Context(), c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toTransactionResponse(trans))
}

// GetByReservation godoc
// @Summary 予約の取引を取得
// @Tags transactions
// @Produce json
// @Param reservationId path string true "予約ID"
// @Success 200 {object} TransactionResponse
// @Failure 403 {object} map[string]string "所有者以外"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{reservationId}/transaction [get]
func (h *TransactionHandler) GetByReservation(c echo.Context) error {
	trans, err := h.service.GetTransactionByReservation(c.Request().Context(), c.Param("reservationId"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toTransactionResponse(trans))
}

// GetAll godoc
// @Summary 取引一覧を取得（管理者）
// @Tags transactions
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} TransactionResponse
// @Security BearerAuth
// @Router /admin/transactions [get]
func (h *TransactionHandler) GetAll(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	transactions, err := h.service.GetAllTransactions(c.Request().Context(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		resp[i] = toTransactionResponse(t)
	}
	return c.JSON(http.StatusOK, resp)
}
