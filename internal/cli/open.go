package cli

import (
	"github.com/spf13/cobra"

	"github.com/llehouerou/tunebrew/internal/app"
	"github.com/llehouerou/tunebrew/internal/share"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:     "open <link>",
	Short:   "Play a shared song link",
	Long:    "Resolve a shared large-player link, start playing it and open the expanded player.",
	Example: "  tunebrew open 'https://homebrew.example.com/large-player?song_request_id=abc&ver=2'",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, version, err := share.ParseLink(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runTUI(cfg, &app.Open{ID: id, Version: version})
	},
}
