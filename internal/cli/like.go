package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tunebrew/internal/likes"
	"github.com/llehouerou/tunebrew/internal/state"
)

func init() {
	rootCmd.AddCommand(likeCmd)
}

var likeCmd = &cobra.Command{
	Use:   "like [request-id]",
	Short: "Toggle a liked song, or list liked songs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(st state.Interface) error {
			store := likes.New(st)
			if len(args) == 0 {
				ids, err := store.All()
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}

			liked, err := store.Toggle(args[0])
			if err != nil {
				return fmt.Errorf("toggle like: %w", err)
			}
			if liked {
				fmt.Fprintf(cmd.OutOrStdout(), "liked %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "unliked %s\n", args[0])
			}
			return nil
		})
	},
}
