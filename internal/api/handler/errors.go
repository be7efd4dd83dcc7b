package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/novastellaa/BE-Infokus-Studio/internal/application"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/catalog"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/payment"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/reservation"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/review"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/slot"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/user"
)

var notFoundErrors = []error{
	reservation.ErrReservationNotFound,
	payment.ErrTransactionNotFound,
	payment.ErrDetailNotFound,
	catalog.ErrCategoryNotFound,
	catalog.ErrPackageNotFound,
	catalog.ErrAddonNotFound,
	catalog.ErrTimeOptionNotFound,
	user.ErrUserNotFound,
	review.ErrReviewNotFound,
}

var conflictErrors = []error{
	slot.ErrSlotUnavailable,
	application.ErrSlotContention,
	payment.ErrTransactionAlreadyExists,
	payment.ErrDetailAlreadyDecided,
	payment.ErrTransactionPaidOff,
	reservation.ErrReservationNotPending,
	reservation.ErrReservationAlreadyCanceled,
	reservation.ErrReservationAlreadyCompleted,
	user.ErrEmailAlreadyUsed,
	review.ErrReviewAlreadyExists,
}

var badRequestErrors = []error{
	reservation.ErrUserIDRequired,
	reservation.ErrPackageIDRequired,
	reservation.ErrDateRequired,
	reservation.ErrInvalidDate,
	reservation.ErrTimeOptionIDRequired,
	payment.ErrInvalidVerdict,
	payment.ErrReservationIDRequired,
	payment.ErrInvalidAmount,
	payment.ErrProofURLRequired,
	catalog.ErrNameRequired,
	catalog.ErrCategoryIDRequired,
	catalog.ErrInvalidPrice,
	catalog.ErrTimeRangeRequired,
	user.ErrNameRequired,
	user.ErrEmailRequired,
	user.ErrPasswordRequired,
	review.ErrInvalidRating,
	review.ErrReviewNotAllowed,
	application.ErrUnsupportedImageType,
	application.ErrImageTooLarge,
}

// toHTTPError はドメインエラーをHTTPステータスへ対応付ける
// 未知のエラーは500として扱う
func toHTTPError(err error) error {
	switch {
	case isAny(err, notFoundErrors):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case isAny(err, conflictErrors):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case isAny(err, badRequestErrors):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrPermissionDenied):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
