// Package cli wires the animtrack commands together.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/animtrack/internal/cli/bench"
	"github.com/ivlev/animtrack/internal/cli/cliutil"
	"github.com/ivlev/animtrack/internal/cli/dump"
	"github.com/ivlev/animtrack/internal/cli/generate"
	"github.com/ivlev/animtrack/internal/cli/sample"
	"github.com/ivlev/animtrack/internal/cli/stream"
	"github.com/ivlev/animtrack/internal/config"
	"github.com/ivlev/animtrack/internal/logging"
)

var configPath string

var RootCmd = &cobra.Command{
	Use:   "animtrack",
	Short: "Keyframe animation tracks: sample, dump, stream, generate and benchmark clips",
	Long: `animtrack loads YAML animation clips into keyframe tracks and evaluates them.

Settings come from animtrack.yaml in the working directory (or --config) and
ANIMTRACK_* environment variables, e.g. ANIMTRACK_MQTT_URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := logging.SetLevel(cfg.LogLevel); err != nil {
			return err
		}

		cmd.SetContext(cliutil.WithConfig(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	RootCmd.AddCommand(
		sample.Command,
		dump.Command,
		stream.Command,
		bench.Command,
		generate.Command,
	)
}
