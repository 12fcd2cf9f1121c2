package helpers

import (
	"github.com/labstack/echo/v4"
)

type ctxKey string

const (
	keyClient ctxKey = "client"
)

func SetClient(c echo.Context, client string) { c.Set(string(keyClient), client) }
func GetClientRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyClient))
	s, ok := v.(string)
	return s, ok
}
