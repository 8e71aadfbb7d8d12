// Package cli implements the tunebrew command line.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tunebrew/internal/config"
	"github.com/llehouerou/tunebrew/internal/state"
)

// openState opens the persistent state. Tests replace it.
var openState = func() (state.Interface, error) {
	return state.Open()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Read configuration from this file only")
	lo.Must0(rootCmd.MarkPersistentFlagFilename("config", "toml"))
}

var rootCmd = &cobra.Command{
	Use:           "tunebrew",
	Short:         "Listen to generated songs from the terminal",
	Long:          "tunebrew lists recent and requested songs, plays them and shares links to them.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runTUI(cfg, nil)
	},
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	handleErr(rootCmd.Execute())
}

func handleErr(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "tunebrew: %s\n", strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := lo.Must(cmd.Flags().GetString("config"))
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// withState runs fn with the persistent state open.
func withState(fn func(st state.Interface) error) error {
	st, err := openState()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer st.Close()
	return fn(st)
}
