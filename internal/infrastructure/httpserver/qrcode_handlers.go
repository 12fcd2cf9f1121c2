package httpserver

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/qrcode-service/go/internal/core/domain/qrcode"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/httpserver/helpers"
)

const pngMIME = "image/png"

func (s *Server) index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"Title": "QR Code Generator",
		"Defaults": qrcode.Request{
			Size:      qrcode.DefaultSize,
			Border:    qrcode.DefaultBorder,
			FillColor: qrcode.DefaultFillColor,
			BackColor: qrcode.DefaultBackColor,
		},
	})
}

func (s *Server) head(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// generate renders a QR code PNG. Invalid input answers 409 with a detail message.
func (s *Server) generate(c echo.Context) error {
	var req qrcode.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, detail("invalid request body"))
	}
	png, err := s.qrService.Generate(c.Request().Context(), req.ToRequest())
	if err != nil {
		if errors.Is(err, qrcode.ErrInvalidRequest) {
			return echo.NewHTTPError(http.StatusConflict, detail(err.Error()))
		}
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"request_id": helpers.GetRequestID(c)}).WithError(err).Error("generate failed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, detail("failed to generate qr code"))
	}
	return c.Blob(http.StatusOK, pngMIME, png)
}

func detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}
