package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/user"
)

// コンテキストキー
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

// JWTAuth はBearerトークンを検証し、ユーザーIDとロールを
// コンテキストへ格納するミドルウェア
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが必要です")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// HS256のみ許可する
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが不正です")
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが不正です")
			}
			sub, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			if sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが不正です")
			}

			c.Set(ContextKeyUserID, sub)
			c.Set(ContextKeyRole, role)
			return next(c)
		}
	}
}

// RequireAdmin は管理者ロールのみ通過させるミドルウェア
// JWTAuth の後段で使用すること
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if role != string(user.RoleAdmin) {
				return echo.NewHTTPError(http.StatusForbidden, "管理者権限が必要です")
			}
			return next(c)
		}
	}
}

// UserID はコンテキストから認証済みユーザーIDを取り出す
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextKeyUserID).(string)
	return id
}

// IsAdmin はコンテキストのロールが管理者かを返す
func IsAdmin(c echo.Context) bool {
	role, _ := c.Get(ContextKeyRole).(string)
	return role == string(user.RoleAdmin)
}
