package auth

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"eyewear.GO/config"
	"eyewear.GO/core/acl"
)

// HeaderStaffRole carries the back-office role of an authenticated caller.
const HeaderStaffRole = "X-Staff-Role"

// Middleware returns the auth middleware based on AUTH_TYPE env var.
func Middleware() echo.MiddlewareFunc {
	skipper := buildSkipper(config.GetAuthSkipperPaths())
	switch os.Getenv("AUTH_TYPE") {
	case "key":
		return keyAuth(os.Getenv("API_KEY"), skipper)
	default:
		return basicAuth(os.Getenv("API_USER"), os.Getenv("API_PASS"), skipper)
	}
}

func buildSkipper(skipPaths []string) middleware.Skipper {
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func basicAuth(user, pass string, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			if user == "" {
				return false, nil
			}
			return username == user && password == pass, nil
		},
		Skipper: skipper,
	})
}

func keyAuth(apiKey string, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return apiKey != "" && key == apiKey, nil
		},
		Skipper: skipper,
	})
}

// Role returns the caller's back-office role.
func Role(c echo.Context) string {
	return c.Request().Header.Get(HeaderStaffRole)
}

// RequireAccess rejects callers whose role may not open page.
func RequireAccess(table *acl.Table, page string) echo.MiddlewareFunc {
	return require(func(role string) bool { return table.CanAccess(page, role) })
}

// RequireEdit rejects callers whose role may not modify page.
func RequireEdit(table *acl.Table, page string) echo.MiddlewareFunc {
	return require(func(role string) bool { return table.CanEdit(role, page) })
}

func require(allowed func(role string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := Role(c)
			if role == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing " + HeaderStaffRole})
			}
			if !allowed(role) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "role " + role + " not permitted"})
			}
			c.Set("role_name", role)
			return next(c)
		}
	}
}
