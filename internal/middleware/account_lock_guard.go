package middleware

import (
	"net/http"

	"laptop-admin/internal/repository"

	"github.com/labstack/echo/v4"
)

// ロックされたアカウントを弾く。JWTが有効でもDB側でロック済みなら403。
func AccountLockGuard(profileRepo repository.ProfileRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_idを取得する
			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(string)
			if !ok || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のprofileを取得する
			p, err := profileRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if p.IsLocked {
				return c.JSON(http.StatusForbidden, errorJSON("account locked"))
			}

			return next(c)
		}
	}
}
