package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/novastellaa/BE-Infokus-Studio/internal/api/middleware"
	"github.com/novastellaa/BE-Infokus-Studio/internal/api/validation"
)

// NewTestEcho はテスト用のEchoインスタンスを作成する
func NewTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.NewValidator()
	return e
}

// AsUser はコンテキストに認証済みユーザーを設定する（テスト用）
func AsUser(c echo.Context, userID string) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, "customer")
}

// AsAdmin はコンテキストに管理者を設定する（テスト用）
func AsAdmin(c echo.Context, userID string) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, "admin")
}
