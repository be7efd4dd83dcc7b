package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/catalog"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/reservation"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/slot"
)

func setupReservationService() (*ReservationService, *MockTxManager, *MockReservationRepository, *MockPaymentRepository, *MockAllocator, *MockCatalogRepository) {
	txManager := new(MockTxManager)
	reservationRepo := new(MockReservationRepository)
	paymentRepo := new(MockPaymentRepository)
	allocator := new(MockAllocator)
	catalogRepo := new(MockCatalogRepository)

	// ロック・キャッシュ・イベント発行なしで動作する（単体テスト用）
	svc := NewReservationService(txManager, reservationRepo, paymentRepo, allocator, catalogRepo, nil, nil, nil)
	return svc, txManager, reservationRepo, paymentRepo, allocator, catalogRepo
}

func validInput() CreateReservationInput {
	return CreateReservationInput{
		UserID:       "user-1",
		PackageID:    "pkg-1",
		AddonIDs:     []string{"addon-1"},
		Name:         "卒業記念撮影",
		Date:         "2025-06-01",
		TimeOptionID: "slot-1",
	}
}

func TestCreateReservation_Success(t *testing.T) {
	svc, txManager, reservationRepo, paymentRepo, allocator, catalogRepo := setupReservationService()
	ctx := context.Background()

	catalogRepo.On("GetPackage", ctx, "pkg-1").Return(&catalog.Package{ID: "pkg-1", Price: 100000}, nil)
	catalogRepo.On("GetTimeOption", ctx, "slot-1").Return(&catalog.TimeOption{ID: "slot-1", StartTime: "10:00", EndTime: "12:00"}, nil)
	catalogRepo.On("GetAddon", ctx, "addon-1").Return(&catalog.Addon{ID: "addon-1", Price: 20000}, nil)

	tx := newCommittableTx()
	txManager.On("Begin", ctx).Return(tx, nil)
	reservationRepo.On("Create", ctx, tx, mock.AnythingOfType("*reservation.Reservation")).Run(func(args mock.Arguments) {
		args.Get(2).(*reservation.Reservation).ID = "res-1"
	}).Return(nil)
	allocator.On("Claim", ctx, tx, mock.AnythingOfType("*slot.Claim")).Return(nil)
	paymentRepo.On("CreateHeader", ctx, tx, mock.AnythingOfType("*payment.Transaction")).Return(nil)

	res, trans, err := svc.CreateReservation(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "res-1", res.ID)
	assert.Equal(t, reservation.StatusPending, res.Status)

	// 合計 = パッケージ価格 + オプション価格
	assert.Equal(t, 120000, trans.TotalAmount)
	assert.Equal(t, "res-1", trans.ReservationID)

	tx.AssertCalled(t, "Commit")
	allocator.AssertCalled(t, "Claim", ctx, tx, mock.MatchedBy(func(c *slot.Claim) bool {
		return c.Date == "2025-06-01" && c.TimeOptionID == "slot-1" && c.ReservationID == "res-1"
	}))
}

func TestCreateReservation_SlotConflict(t *testing.T) {
	svc, txManager, reservationRepo, paymentRepo, allocator, catalogRepo := setupReservationService()
	ctx := context.Background()

	catalogRepo.On("GetPackage", ctx, "pkg-1").Return(&catalog.Package{ID: "pkg-1", Price: 100000}, nil)
	catalogRepo.On("GetTimeOption", ctx, "slot-1").Return(&catalog.TimeOption{ID: "slot-1"}, nil)
	catalogRepo.On("GetAddon", ctx, "addon-1").Return(&catalog.Addon{ID: "addon-1", Price: 20000}, nil)

	tx := newCommittableTx()
	txManager.On("Begin", ctx).Return(tx, nil)
	reservationRepo.On("Create", ctx, tx, mock.Anything).Return(nil)
	allocator.On("Claim", ctx, tx, mock.Anything).Return(slot.ErrSlotUnavailable)

	_, _, err := svc.CreateReservation(ctx, validInput())
	assert.ErrorIs(t, err, slot.ErrSlotUnavailable)

	// 占有失敗時はヘッダーを作成せずロールバック
	paymentRepo.AssertNotCalled(t, "CreateHeader", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit")
	tx.AssertCalled(t, "Rollback")
}

func TestCreateReservation_PackageNotFound(t *testing.T) {
	svc, txManager, _, _, _, catalogRepo := setupReservationService()
	ctx := context.Background()

	catalogRepo.On("GetPackage", ctx, "pkg-1").Return(nil, catalog.ErrPackageNotFound)

	_, _, err := svc.CreateReservation(ctx, validInput())
	assert.ErrorIs(t, err, catalog.ErrPackageNotFound)
	txManager.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestCreateReservation_InvalidInput(t *testing.T) {
	svc, txManager, _, _, _, _ := setupReservationService()

	input := validInput()
	input.Date = "not-a-date"
	_, _, err := svc.CreateReservation(context.Background(), input)
	assert.ErrorIs(t, err, reservation.ErrInvalidDate)
	txManager.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestCancelReservation_Success(t *testing.T) {
	svc, txManager, reservationRepo, _, allocator, _ := setupReservationService()
	ctx := context.Background()

	res := reservation.NewReservation("user-1", "pkg-1", "撮影", "2025-06-01", "slot-1", nil)
	res.ID = "res-1"
	reservationRepo.On("GetByID", ctx, "res-1").Return(res, nil)

	tx := newCommittableTx()
	txManager.On("Begin", ctx).Return(tx, nil)
	reservationRepo.On("Update", ctx, tx, res).Return(nil)
	allocator.On("Release", ctx, tx, "2025-06-01", "slot-1").Return(nil)

	got, err := svc.CancelReservation(ctx, "res-1", "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusCanceled, got.Status)

	// キャンセルと時間枠解放は同一トランザクション
	allocator.AssertCalled(t, "Release", ctx, tx, "2025-06-01", "slot-1")
	tx.AssertCalled(t, "Commit")
}

func TestCancelReservation_PermissionDenied(t *testing.T) {
	svc, txManager, reservationRepo, _, allocator, _ := setupReservationService()
	ctx := context.Background()

	res := reservation.NewReservation("user-1", "pkg-1", "撮影", "2025-06-01", "slot-1", nil)
	res.ID = "res-1"
	reservationRepo.On("GetByID", ctx, "res-1").Return(res, nil)

	_, err := svc.CancelReservation(ctx, "res-1", "other-user", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	txManager.AssertNotCalled(t, "Begin", mock.Anything)

	// 管理者は他人の予約もキャンセルできる
	tx := newCommittableTx()
	txManager.On("Begin", ctx).Return(tx, nil)
	reservationRepo.On("Update", ctx, tx, res).Return(nil)
	allocator.On("Release", ctx, tx, "2025-06-01", "slot-1").Return(nil)

	_, err = svc.CancelReservation(ctx, "res-1", "admin-1", true)
	require.NoError(t, err)
}

func TestCancelReservation_AlreadyCanceled(t *testing.T) {
	svc, txManager, reservationRepo, _, _, _ := setupReservationService()
	ctx := context.Background()

	res := reservation.NewReservation("user-1", "pkg-1", "撮影", "2025-06-01", "slot-1", nil)
	res.ID = "res-1"
	res.Status = reservation.StatusCanceled
	reservationRepo.On("GetByID", ctx, "res-1").Return(res, nil)

	// 再キャンセルは黙って成功させない
	_, err := svc.CancelReservation(ctx, "res-1", "user-1", false)
	assert.ErrorIs(t, err, reservation.ErrReservationAlreadyCanceled)
	txManager.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestGetOccupiedSlots(t *testing.T) {
	svc, _, _, _, allocator, _ := setupReservationService()
	ctx := context.Background()

	t.Run("日付形式が不正", func(t *testing.T) {
		_, err := svc.GetOccupiedSlots(ctx, "06/01/2025")
		assert.ErrorIs(t, err, reservation.ErrInvalidDate)
	})

	t.Run("占有済み一覧を返す", func(t *testing.T) {
		allocator.On("Occupied", ctx, "2025-06-01").Return([]string{"slot-1", "slot-3"}, nil)
		ids, err := svc.GetOccupiedSlots(ctx, "2025-06-01")
		require.NoError(t, err)
		assert.Equal(t, []string{"slot-1", "slot-3"}, ids)
	})
}

func TestCancelUnpaidReservations(t *testing.T) {
	svc, txManager, reservationRepo, _, allocator, _ := setupReservationService()
	ctx := context.Background()

	res1 := reservation.NewReservation("user-1", "pkg-1", "撮影1", "2025-06-01", "slot-1", nil)
	res1.ID = "res-1"
	res2 := reservation.NewReservation("user-2", "pkg-1", "撮影2", "2025-06-02", "slot-2", nil)
	res2.ID = "res-2"

	reservationRepo.On("GetUnpaidPending", ctx, 24*time.Hour).Return([]*reservation.Reservation{res1, res2}, nil)
	reservationRepo.On("GetByID", ctx, "res-1").Return(res1, nil)
	// 2件目は取得失敗（スイープは継続する）
	reservationRepo.On("GetByID", ctx, "res-2").Return(nil, reservation.ErrReservationNotFound)

	tx := newCommittableTx()
	txManager.On("Begin", ctx).Return(tx, nil)
	reservationRepo.On("Update", ctx, tx, res1).Return(nil)
	allocator.On("Release", ctx, tx, "2025-06-01", "slot-1").Return(nil)

	count, err := svc.CancelUnpaidReservations(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, reservation.StatusCanceled, res1.Status)
}
