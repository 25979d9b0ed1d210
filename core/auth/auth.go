package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"chatshop.GO/config"
)

// Middleware returns the auth middleware based on the AUTH_TYPE env var.
// "none" disables auth, "key" expects a bearer API key, anything else is basic auth.
func Middleware() echo.MiddlewareFunc {
	skipper := buildSkipper()
	switch config.GetEnv("AUTH_TYPE", "basic") {
	case "none":
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	case "key":
		return keyAuth(config.GetEnv("API_KEY", ""), skipper)
	default:
		return basicAuth(config.GetEnv("API_USER", ""), config.GetEnv("API_PASS", ""), skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip || strings.HasPrefix(path, skip+"/") {
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
			return equal(username, user) && equal(password, pass), nil
		},
		Skipper: skipper,
	})
}

func keyAuth(apiKey string, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return apiKey != "" && equal(key, apiKey), nil
		},
		Skipper: skipper,
	})
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
