package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/novastellaa/BE-Infokus-Studio/internal/application"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/payment"
)

// MockPaymentService はPaymentServiceInterfaceのモック
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) OpenTransaction(ctx context.Context, reservationID string, totalAmount int) (*payment.Transaction, error) {
	args := m.Called(ctx, reservationID, totalAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentService) SubmitProof(ctx context.Context, transactionID string, amount int, proofURL, actorID string, isAdmin bool) (*payment.Transaction, error) {
	args := m.Called(ctx, transactionID, amount, proofURL, actorID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentService) SetValid(ctx context.Context, transactionID, detailID, reviewerID string) (*payment.Transaction, error) {
	args := m.Called(ctx, transactionID, detailID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentService) SetInvalid(ctx context.Context, transactionID, detailID, reviewerID string) (*payment.Transaction, error) {
	args := m.Called(ctx, transactionID, detailID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentService) MarkPaidOff(ctx context.Context, transactionID, reviewerID string) (*payment.Transaction, error) {
	args := m.Called(ctx, transactionID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentService) GetTransaction(ctx context.Context, id, actorID string, isAdmin bool) (*payment.Transaction, error) {
	args := m.Called(ctx, id, actorID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentService) GetTransactionByReservation(ctx context.Context, reservationID, actorID string, isAdmin bool) (*payment.Transaction, error) {
	args := m.Called(ctx, reservationID, actorID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentService) GetAllTransactions(ctx context.Context, limit, offset int) ([]*payment.Transaction, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Transaction), args.Error(1)
}

func testTransaction(id string, status payment.Status) *payment.Transaction {
	trans := payment.NewTransaction("res-123", 150000)
	trans.ID = id
	trans.Status = status
	return trans
}

func TestTransactionHandler_SubmitProof(t *testing.T) {
	e := NewTestEcho()

	reqBody := `{"amount": 50000, "proof_url": "https://example.com/proof.jpg"}`

	t.Run("正常に支払い証明を提出できる", func(t *testing.T) {
		mockService := new(MockPaymentService)
		trans := testTransaction("trans-123", payment.StatusPartiallyPaid)
		trans.Details = []*payment.Detail{
			{ID: "detail-1", Amount: 50000, ProofURL: "https://example.com/proof.jpg", Status: payment.DetailStatusSubmitted},
		}
		mockService.On("SubmitProof", mock.Anything, "trans-123", 50000, "https://example.com/proof.jpg", "user-123", false).
			Return(trans, nil)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/transactions/trans-123/proofs", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("trans-123")
		AsUser(c, "user-123")

		err := handler.SubmitProof(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp TransactionResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "partially_paid", resp.Status)
		require.Len(t, resp.Details, 1)
		assert.Equal(t, "submitted", resp.Details[0].Status)

		mockService.AssertExpectations(t)
	})

	t.Run("完済済みの取引への提出は409", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("SubmitProof", mock.Anything, "trans-123", 50000, "https://example.com/proof.jpg", "user-123", false).
			Return(nil, payment.ErrTransactionPaidOff)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/transactions/trans-123/proofs", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("trans-123")
		AsUser(c, "user-123")

		err := handler.SubmitProof(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)
	})

	t.Run("金額ゼロは400", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/transactions/trans-123/proofs",
			strings.NewReader(`{"amount": 0, "proof_url": "https://example.com/proof.jpg"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("trans-123")
		AsUser(c, "user-123")

		err := handler.SubmitProof(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		mockService.AssertNotCalled(t, "SubmitProof",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTransactionHandler_SetValid(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に明細を承認できる", func(t *testing.T) {
		mockService := new(MockPaymentService)
		trans := testTransaction("trans-123", payment.StatusPaidOff)
		mockService.On("SetValid", mock.Anything, "trans-123", "detail-1", "admin-1").Return(trans, nil)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/admin/transactions/trans-123/details/detail-1/valid", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id", "detailId")
		c.SetParamValues("trans-123", "detail-1")
		AsAdmin(c, "admin-1")

		err := handler.SetValid(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp TransactionResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "paid_off", resp.Status)

		mockService.AssertExpectations(t)
	})

	t.Run("判定済み明細の再判定は409", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("SetValid", mock.Anything, "trans-123", "detail-1", "admin-1").
			Return(nil, payment.ErrDetailAlreadyDecided)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/admin/transactions/trans-123/details/detail-1/valid", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id", "detailId")
		c.SetParamValues("trans-123", "detail-1")
		AsAdmin(c, "admin-1")

		err := handler.SetValid(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)
	})

	t.Run("明細が見つからない場合404", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("SetValid", mock.Anything, "trans-123", "missing", "admin-1").
			Return(nil, payment.ErrDetailNotFound)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/admin/transactions/trans-123/details/missing/valid", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id", "detailId")
		c.SetParamValues("trans-123", "missing")
		AsAdmin(c, "admin-1")

		err := handler.SetValid(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestTransactionHandler_SetInvalid(t *testing.T) {
	e := NewTestEcho()

	mockService := new(MockPaymentService)
	trans := testTransaction("trans-123", payment.StatusInvalid)
	mockService.On("SetInvalid", mock.Anything, "trans-123", "detail-1", "admin-1").Return(trans, nil)

	handler := NewTransactionHandler(mockService)

	req := httptest.NewRequest(http.MethodPost, "/admin/transactions/trans-123/details/detail-1/invalid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "detailId")
	c.SetParamValues("trans-123", "detail-1")
	AsAdmin(c, "admin-1")

	err := handler.SetInvalid(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp TransactionResponse
	err = json.Unmarshal(rec.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "invalid", resp.Status)

	mockService.AssertExpectations(t)
}

func TestTransactionHandler_MarkPaidOff(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に強制完了できる", func(t *testing.T) {
		mockService := new(MockPaymentService)
		trans := testTransaction("trans-123", payment.StatusPaidOff)
		mockService.On("MarkPaidOff", mock.Anything, "trans-123", "admin-1").Return(trans, nil)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/admin/transactions/trans-123/paid-off", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("trans-123")
		AsAdmin(c, "admin-1")

		err := handler.MarkPaidOff(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("既に完済済みの場合409", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("MarkPaidOff", mock.Anything, "trans-123", "admin-1").
			Return(nil, payment.ErrTransactionPaidOff)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/admin/transactions/trans-123/paid-off", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("trans-123")
		AsAdmin(c, "admin-1")

		err := handler.MarkPaidOff(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)
	})
}

func TestTransactionHandler_Open(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に取引を開ける", func(t *testing.T) {
		mockService := new(MockPaymentService)
		trans := testTransaction("trans-123", payment.StatusPending)
		mockService.On("OpenTransaction", mock.Anything, "res-123", 150000).Return(trans, nil)

		handler := NewTransactionHandler(mockService)

		reqBody := `{"reservation_id": "res-123", "total_amount": 150000}`
		req := httptest.NewRequest(http.MethodPost, "/admin/transactions", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		AsAdmin(c, "admin-1")

		err := handler.Open(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("取引が既に存在する場合409", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("OpenTransaction", mock.Anything, "res-123", 150000).
			Return(nil, payment.ErrTransactionAlreadyExists)

		handler := NewTransactionHandler(mockService)

		reqBody := `{"reservation_id": "res-123", "total_amount": 150000}`
		req := httptest.NewRequest(http.MethodPost, "/admin/transactions", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		AsAdmin(c, "admin-1")

		err := handler.Open(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)
	})
}

func TestTransactionHandler_GetByID(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に取引を取得できる", func(t *testing.T) {
		mockService := new(MockPaymentService)
		trans := testTransaction("trans-123", payment.StatusPending)
		mockService.On("GetTransaction", mock.Anything, "trans-123", "user-123", false).Return(trans, nil)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/transactions/trans-123", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("trans-123")
		AsUser(c, "user-123")

		err := handler.GetByID(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("他人の予約の取引は403", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("GetTransaction", mock.Anything, "trans-123", "other-user", false).
			Return(nil, application.ErrPermissionDenied)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/transactions/trans-123", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("trans-123")
		AsUser(c, "other-user")

		err := handler.GetByID(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})

	t.Run("管理者は他人の取引も取得できる", func(t *testing.T) {
		mockService := new(MockPaymentService)
		trans := testTransaction("trans-123", payment.StatusPending)
		mockService.On("GetTransaction", mock.Anything, "trans-123", "admin-1", true).Return(trans, nil)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/transactions/trans-123", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("trans-123")
		AsAdmin(c, "admin-1")

		err := handler.GetByID(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("取引が見つからない場合404", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("GetTransaction", mock.Anything, "nonexistent", "user-123", false).
			Return(nil, payment.ErrTransactionNotFound)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/transactions/nonexistent", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("nonexistent")
		AsUser(c, "user-123")

		err := handler.GetByID(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestTransactionHandler_GetByReservation(t *testing.T) {
	e := NewTestEcho()

	t.Run("所有者は予約の取引を取得できる", func(t *testing.T) {
		mockService := new(MockPaymentService)
		trans := testTransaction("trans-123", payment.StatusValid)
		mockService.On("GetTransactionByReservation", mock.Anything, "res-123", "user-123", false).Return(trans, nil)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/reservations/res-123/transaction", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("reservationId")
		c.SetParamValues("res-123")
		AsUser(c, "user-123")

		err := handler.GetByReservation(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp TransactionResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "trans-123", resp.ID)
		assert.Equal(t, "valid", resp.Status)
	})

	t.Run("他人の予約の取引は403", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("GetTransactionByReservation", mock.Anything, "res-123", "other-user", false).
			Return(nil, application.ErrPermissionDenied)

		handler := NewTransactionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/reservations/res-123/transaction", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("reservationId")
		c.SetParamValues("res-123")
		AsUser(c, "other-user")

		err := handler.GetByReservation(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})
}
