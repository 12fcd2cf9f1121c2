package main

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	config "github.com/avatarctic/qrcode-service/go/configs"
	"github.com/avatarctic/qrcode-service/go/internal/core/domain/qrcode"
)

func newRenderCmd() *cobra.Command {
	req := qrcode.Request{}
	var out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one QR code to a PNG file through the configured cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := newLogger(cfg.Log)
			a, err := newApp(ctx, cfg, logger, nil)
			if err != nil {
				return err
			}
			defer a.close()

			png, err := a.qrCodeService().Generate(ctx, req)
			if err != nil {
				return err
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(png)
				return err
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", out)
			}
			logger.WithField("path", out).Info("qr code written")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Data, "data", "", "data to encode (required)")
	f.IntVar(&req.Size, "size", qrcode.DefaultSize, "pixels per module")
	f.IntVar(&req.Border, "border", qrcode.DefaultBorder, "quiet zone width in modules")
	f.StringVar(&req.FillColor, "fill-color", qrcode.DefaultFillColor, "module color")
	f.StringVar(&req.BackColor, "back-color", qrcode.DefaultBackColor, "background color")
	f.StringVarP(&out, "out", "o", "qrcode.png", "output file, - for stdout")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
