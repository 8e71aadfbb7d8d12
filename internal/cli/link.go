package cli

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tunebrew/internal/share"
	"github.com/llehouerou/tunebrew/internal/track"
)

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.Flags().IntP("ver", "V", 1, "Song version (1 or 2)")
	linkCmd.Flags().Bool("qr", false, "Print the link as a QR code")
}

var linkCmd = &cobra.Command{
	Use:   "link <request-id>",
	Short: "Print the share link of a song",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version := lo.Must(cmd.Flags().GetInt("ver"))
		if version != 1 && version != 2 {
			return errors.New("--ver must be 1 or 2")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.ShareBase == "" {
			return errors.New("share_base is not set in config.toml")
		}

		link := share.BuildLink(cfg.ShareBase, track.Descriptor{ID: args[0], Version: version})
		if lo.Must(cmd.Flags().GetBool("qr")) {
			code, err := share.RenderQR(link)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	},
}
