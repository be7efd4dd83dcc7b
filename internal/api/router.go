package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/novastellaa/BE-Infokus-Studio/internal/api/handler"
	"github.com/novastellaa/BE-Infokus-Studio/internal/api/middleware"
)

// Handlers はルート登録に必要なハンドラー一式
type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Reservation *handler.ReservationHandler
	Transaction *handler.TransactionHandler
	Catalog     *handler.CatalogHandler
	Review      *handler.ReviewHandler
	Image       *handler.ImageHandler
}

// RegisterRoutes は全ルートを登録する
// 公開 → 認証必須 → 管理者専用の順にグループ化している
func RegisterRoutes(e *echo.Echo, h *Handlers, jwtSecret string) {
	e.GET("/health", h.Health.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")

	// 認証不要
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)
	v1.GET("/categories", h.Catalog.ListCategories)
	v1.GET("/categories/:id", h.Catalog.GetCategory)
	v1.GET("/packages", h.Catalog.ListPackages)
	v1.GET("/packages/:id", h.Catalog.GetPackage)
	v1.GET("/addons", h.Catalog.ListAddons)
	v1.GET("/addons/:id", h.Catalog.GetAddon)
	v1.GET("/time-options", h.Catalog.ListTimeOptions)
	v1.GET("/time-options/:id", h.Catalog.GetTimeOption)
	v1.GET("/slots/occupied", h.Reservation.GetOccupiedSlots)
	v1.GET("/reviews", h.Review.List)
	v1.GET("/reservations/:reservationId/review", h.Review.GetByReservation)

	// 要認証
	auth := v1.Group("", middleware.JWTAuth(jwtSecret))
	auth.POST("/reservations", h.Reservation.Create)
	auth.GET("/reservations", h.Reservation.GetMine)
	auth.GET("/reservations/:id", h.Reservation.GetByID)
	auth.POST("/reservations/:id/cancel", h.Reservation.Cancel)
	auth.GET("/reservations/:reservationId/transaction", h.Transaction.GetByReservation)
	auth.GET("/transactions/:id", h.Transaction.GetByID)
	auth.POST("/transactions/:id/proofs", h.Transaction.SubmitProof)
	auth.POST("/reviews", h.Review.Create)

	// 管理者専用
	admin := v1.Group("/admin", middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())
	admin.GET("/reservations", h.Reservation.GetAll)
	admin.DELETE("/reservations/:id", h.Reservation.Delete)

	admin.POST("/transactions", h.Transaction.Open)
	admin.GET("/transactions", h.Transaction.GetAll)
	admin.POST("/transactions/:id/details/:detailId/valid", h.Transaction.SetValid)
	admin.POST("/transactions/:id/details/:detailId/invalid", h.Transaction.SetInvalid)
	admin.POST("/transactions/:id/paid-off", h.Transaction.MarkPaidOff)

	admin.POST("/categories", h.Catalog.CreateCategory)
	admin.PUT("/categories/:id", h.Catalog.UpdateCategory)
	admin.DELETE("/categories/:id", h.Catalog.DeleteCategory)
	admin.POST("/packages", h.Catalog.CreatePackage)
	admin.PUT("/packages/:id", h.Catalog.UpdatePackage)
	admin.DELETE("/packages/:id", h.Catalog.DeletePackage)
	admin.POST("/addons", h.Catalog.CreateAddon)
	admin.PUT("/addons/:id", h.Catalog.UpdateAddon)
	admin.DELETE("/addons/:id", h.Catalog.DeleteAddon)
	admin.POST("/time-options", h.Catalog.CreateTimeOption)
	admin.PUT("/time-options/:id", h.Catalog.UpdateTimeOption)
	admin.DELETE("/time-options/:id", h.Catalog.DeleteTimeOption)

	admin.POST("/images", h.Image.Upload)
	admin.DELETE("/images", h.Image.Delete)
}
