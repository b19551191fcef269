package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newQRCmd() *cobra.Command {
	var outPath string
	var size int

	cmd := &cobra.Command{
		Use:   "qr [code]",
		Short: "Download the join QR code for a session as a PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var code string
			if len(args) > 0 {
				code = strings.ToUpper(args[0])
			} else {
				id, err := requireIdentity()
				if err != nil {
					return err
				}
				code = id.Code
			}

			data, err := client.GetRaw(fmt.Sprintf("/api/v1/sessions/%s/qr?size=%d", code, size))
			if err != nil {
				return err
			}

			path := outPath
			if path == "" {
				path = fmt.Sprintf("whosaid-%s.png", code)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("QR code saved to %s", path))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: whosaid-<code>.png)")
	cmd.Flags().IntVar(&size, "size", 320, "Image size in pixels")

	return cmd
}
