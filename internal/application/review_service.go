package application

import (
	"context"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/review"
)

// ReviewGate はレビュー作成の可否判定インターフェース
type ReviewGate interface {
	CanReview(ctx context.Context, reservationID, userID string) (bool, error)
}

// ReviewService は完了済み予約へのレビューを担当する
type ReviewService struct {
	reviewRepo review.Repository
	gate       ReviewGate
}

func NewReviewService(rr review.Repository, gate ReviewGate) *ReviewService {
	return &ReviewService{reviewRepo: rr, gate: gate}
}

// CreateReview は予約の所有者かつ完了済み（予約 success・取引 paid_off）の
// 場合のみレビューを作成する
func (s *ReviewService) CreateReview(ctx context.Context, reservationID, userID string, rating int, comment string) (*review.Review, error) {
	ok, err := s.gate.CanReview(ctx, reservationID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, review.ErrReviewNotAllowed
	}

	r := &review.Review{
		ReservationID: reservationID,
		UserID:        userID,
		Rating:        rating,
		Comment:       comment,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) GetReviewByReservation(ctx context.Context, reservationID string) (*review.Review, error) {
	return s.reviewRepo.GetByReservationID(ctx, reservationID)
}

func (s *ReviewService) ListReviews(ctx context.Context, limit, offset int) ([]*review.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.reviewRepo.ListAll(ctx, limit, offset)
}
