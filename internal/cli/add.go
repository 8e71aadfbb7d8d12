package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tunebrew/internal/app"
	"github.com/llehouerou/tunebrew/internal/likes"
	"github.com/llehouerou/tunebrew/internal/state"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <request-id>...",
	Short: "Add song requests to \"my songs\"",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(st state.Interface) error {
			for _, id := range args {
				id = strings.TrimSpace(id)
				if id == "" || strings.Contains(id, ",") {
					return fmt.Errorf("invalid request id %q", id)
				}
				err := st.UpdateKV(app.MineKey, func(old string) string {
					return likes.Append(old, id)
				})
				if err != nil {
					return fmt.Errorf("add %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", id)
			}
			return nil
		})
	},
}
