package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/catalog"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/payment"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/reservation"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/review"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/slot"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/txn"
	"github.com/novastellaa/BE-Infokus-Studio/internal/infrastructure/queue"
)

// === Mock implementations ===

// MockTxManager implements txn.Manager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (txn.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(txn.Tx), args.Error(1)
}

// MockTx implements txn.Tx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// newCommittableTx はCommit/Rollbackを許可するトランザクションモックを返す
func newCommittableTx() *MockTx {
	tx := new(MockTx)
	tx.On("Commit").Return(nil)
	tx.On("Rollback").Return(nil)
	return tx
}

// MockReservationRepository implements reservation.Repository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, tx txn.Tx, r *reservation.Reservation) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByDate(ctx context.Context, date string) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetAll(ctx context.Context, limit, offset int) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Update(ctx context.Context, tx txn.Tx, r *reservation.Reservation) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationRepository) GetUnpaidPending(ctx context.Context, olderThan time.Duration) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

// MockPaymentRepository implements payment.Repository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreateHeader(ctx context.Context, tx txn.Tx, t *payment.Transaction) error {
	args := m.Called(ctx, tx, t)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*payment.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentRepository) GetByIDForUpdate(ctx context.Context, tx txn.Tx, id string) (*payment.Transaction, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentRepository) GetByReservationID(ctx context.Context, reservationID string) (*payment.Transaction, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentRepository) GetAll(ctx context.Context, limit, offset int) ([]*payment.Transaction, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Transaction), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, tx txn.Tx, t *payment.Transaction) error {
	args := m.Called(ctx, tx, t)
	return args.Error(0)
}

func (m *MockPaymentRepository) CreateDetail(ctx context.Context, tx txn.Tx, d *payment.Detail) error {
	args := m.Called(ctx, tx, d)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdateDetail(ctx context.Context, tx txn.Tx, d *payment.Detail) error {
	args := m.Called(ctx, tx, d)
	return args.Error(0)
}

// MockAllocator implements slot.Allocator
type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Claim(ctx context.Context, tx txn.Tx, c *slot.Claim) error {
	args := m.Called(ctx, tx, c)
	return args.Error(0)
}

func (m *MockAllocator) Release(ctx context.Context, tx txn.Tx, date, timeOptionID string) error {
	args := m.Called(ctx, tx, date, timeOptionID)
	return args.Error(0)
}

func (m *MockAllocator) Occupied(ctx context.Context, date string) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockCatalogRepository implements catalog.Repository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) CreateCategory(ctx context.Context, c *catalog.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Category), args.Error(1)
}

func (m *MockCatalogRepository) UpdateCategory(ctx context.Context, c *catalog.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) CreatePackage(ctx context.Context, p *catalog.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetPackage(ctx context.Context, id string) (*catalog.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Package), args.Error(1)
}

func (m *MockCatalogRepository) ListPackages(ctx context.Context, categoryID string) ([]*catalog.Package, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Package), args.Error(1)
}

func (m *MockCatalogRepository) UpdatePackage(ctx context.Context, p *catalog.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeletePackage(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) CreateAddon(ctx context.Context, a *catalog.Addon) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetAddon(ctx context.Context, id string) (*catalog.Addon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Addon), args.Error(1)
}

func (m *MockCatalogRepository) ListAddons(ctx context.Context) ([]*catalog.Addon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Addon), args.Error(1)
}

func (m *MockCatalogRepository) UpdateAddon(ctx context.Context, a *catalog.Addon) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteAddon(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) CreateTimeOption(ctx context.Context, t *catalog.TimeOption) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetTimeOption(ctx context.Context, id string) (*catalog.TimeOption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.TimeOption), args.Error(1)
}

func (m *MockCatalogRepository) ListTimeOptions(ctx context.Context) ([]*catalog.TimeOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.TimeOption), args.Error(1)
}

func (m *MockCatalogRepository) UpdateTimeOption(ctx context.Context, t *catalog.TimeOption) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteTimeOption(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepository implements review.Repository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByReservationID(ctx context.Context, reservationID string) (*review.Review, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) ListAll(ctx context.Context, limit, offset int) ([]*review.Review, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*review.Review), args.Error(1)
}

// MockEventPublisher implements EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishReservationCreated(ctx context.Context, ev queue.ReservationCreatedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishReservationCanceled(ctx context.Context, ev queue.ReservationCanceledEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishPaymentCompleted(ctx context.Context, ev queue.PaymentCompletedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
