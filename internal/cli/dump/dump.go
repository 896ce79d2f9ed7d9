package dump

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/animtrack/internal/cli/cliutil"
	"github.com/ivlev/animtrack/internal/clip"
)

var Command = &cobra.Command{
	Use:   "dump [clip]",
	Short: "List the keyframes a clip produces, as a golden YAML file",
	Long: `Builds the tracks of a clip and writes back every stored keyframe, after
sorting and de-duplication, so importers can be checked against golden files.

Usage examples:

	animtrack dump clips/wave.yaml
	animtrack dump clips/wave.yaml --auto
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cliutil.ClipArg(args)
		if err != nil {
			return err
		}

		cfg, err := cliutil.MustConfig(cmd.Context())
		if err != nil {
			return err
		}

		anim, _, err := cliutil.LoadAnimation(path, cfg.ClipsDir)
		if err != nil {
			return err
		}

		out := opts.Out
		if opts.Auto {
			out = clip.GenerateDumpPath(cfg.ClipsDir, anim.Name)
		}

		if out == "" {
			data, err := clip.MarshalGolden(anim)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return err
		}
		if err := clip.WriteGolden(anim, out); err != nil {
			return err
		}
		fmt.Printf("[+++] Dump saved: %s\n", out)
		return nil
	},
}
