package handler

import (
	"context"
	"io"

	"github.com/novastellaa/BE-Infokus-Studio/internal/application"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/catalog"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/payment"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/reservation"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/review"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/user"
)

// AuthServiceInterface は認証サービスのインターフェース
type AuthServiceInterface interface {
	Register(ctx context.Context, input application.RegisterInput) (*user.User, error)
	Login(ctx context.Context, email, password string) (string, *user.User, error)
}

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, input application.CreateReservationInput) (*reservation.Reservation, *payment.Transaction, error)
	GetReservation(ctx context.Context, id string) (*reservation.Reservation, error)
	GetUserReservations(ctx context.Context, userID string, limit, offset int) ([]*reservation.Reservation, error)
	GetReservationsByDate(ctx context.Context, date string) ([]*reservation.Reservation, error)
	GetAllReservations(ctx context.Context, limit, offset int) ([]*reservation.Reservation, error)
	GetOccupiedSlots(ctx context.Context, date string) ([]string, error)
	CancelReservation(ctx context.Context, id, actorID string, isAdmin bool) (*reservation.Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

// PaymentServiceInterface は取引サービスのインターフェース
type PaymentServiceInterface interface {
	OpenTransaction(ctx context.Context, reservationID string, totalAmount int) (*payment.Transaction, error)
	SubmitProof(ctx context.Context, transactionID string, amount int, proofURL, actorID string, isAdmin bool) (*payment.Transaction, error)
	SetValid(ctx context.Context, transactionID, detailID, reviewerID string) (*payment.Transaction, error)
	SetInvalid(ctx context.Context, transactionID, detailID, reviewerID string) (*payment.Transaction, error)
	MarkPaidOff(ctx context.Context, transactionID, reviewerID string) (*payment.Transaction, error)
	GetTransaction(ctx context.Context, id, actorID string, isAdmin bool) (*payment.Transaction, error)
	GetTransactionByReservation(ctx context.Context, reservationID, actorID string, isAdmin bool) (*payment.Transaction, error)
	GetAllTransactions(ctx context.Context, limit, offset int) ([]*payment.Transaction, error)
}

// CatalogServiceInterface はカタログサービスのインターフェース
type CatalogServiceInterface interface {
	CreateCategory(ctx context.Context, name string) (*catalog.Category, error)
	GetCategory(ctx context.Context, id string) (*catalog.Category, error)
	ListCategories(ctx context.Context) ([]*catalog.Category, error)
	UpdateCategory(ctx context.Context, id, name string) (*catalog.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreatePackage(ctx context.Context, input application.PackageInput) (*catalog.Package, error)
	GetPackage(ctx context.Context, id string) (*catalog.Package, error)
	ListPackages(ctx context.Context, categoryID string) ([]*catalog.Package, error)
	UpdatePackage(ctx context.Context, id string, input application.PackageInput) (*catalog.Package, error)
	DeletePackage(ctx context.Context, id string) error

	CreateAddon(ctx context.Context, name string, price int) (*catalog.Addon, error)
	GetAddon(ctx context.Context, id string) (*catalog.Addon, error)
	ListAddons(ctx context.Context) ([]*catalog.Addon, error)
	UpdateAddon(ctx context.Context, id, name string, price int) (*catalog.Addon, error)
	DeleteAddon(ctx context.Context, id string) error

	CreateTimeOption(ctx context.Context, startTime, endTime string) (*catalog.TimeOption, error)
	GetTimeOption(ctx context.Context, id string) (*catalog.TimeOption, error)
	ListTimeOptions(ctx context.Context) ([]*catalog.TimeOption, error)
	UpdateTimeOption(ctx context.Context, id, startTime, endTime string) (*catalog.TimeOption, error)
	DeleteTimeOption(ctx context.Context, id string) error
}

// ReviewServiceInterface はレビューサービスのインターフェース
type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, reservationID, userID string, rating int, comment string) (*review.Review, error)
	GetReviewByReservation(ctx context.Context, reservationID string) (*review.Review, error)
	ListReviews(ctx context.Context, limit, offset int) ([]*review.Review, error)
}

// ImageServiceInterface は画像サービスのインターフェース
type ImageServiceInterface interface {
	Upload(ctx context.Context, entity string, body io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectURL string) error
}
