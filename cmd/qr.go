package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/farellandr/seatsavvy/internal/qr"
)

var (
	qrOut  string
	qrSize int
)

var qrCmd = &cobra.Command{
	Use:   "qr <payload>",
	Short: "Render a ticket payload as a PNG QR code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		png, err := qr.PNG(args[0], qrSize)
		if err != nil {
			return err
		}
		if err := os.WriteFile(qrOut, png, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", qrOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", qrOut, len(png))
		return nil
	},
}

func init() {
	qrCmd.Flags().StringVarP(&qrOut, "out", "o", "ticket-qr.png", "output file")
	qrCmd.Flags().IntVar(&qrSize, "size", qr.DefaultSize, "image size in pixels")
}
