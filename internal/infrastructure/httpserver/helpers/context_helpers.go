package helpers

import (
	"github.com/labstack/echo/v4"
)

// GetClientFromContext returns the rate-limit identity of the caller: a value set
// earlier in the chain, else the client's real IP.
func GetClientFromContext(c echo.Context) string {
	if s, ok := GetClientRaw(c); ok && s != "" {
		return s
	}
	return c.RealIP()
}

// GetRequestID returns the request id assigned by the RequestID middleware.
func GetRequestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
