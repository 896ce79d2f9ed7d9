package sample

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/animtrack/internal/cli/cliutil"
	"github.com/ivlev/animtrack/internal/easing"
	"github.com/ivlev/animtrack/internal/sampler"
)

var Command = &cobra.Command{
	Use:   "sample [clip]",
	Short: "Evaluate every channel of a clip over a frame range",
	Long: `Samples a clip at evenly spaced frames and prints the values as YAML.
Without a clip argument the newest clip in clips_dir is used.

Usage examples:

	animtrack sample clips/wave.yaml --step 0.5
	animtrack sample clips/wave.yaml --start 0 --end 40 --loop --easing in-out-sine -o wave.samples.yaml
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

		ease, err := easing.NewEasing(opts.Easing)
		if err != nil {
			return err
		}

		trackCfg := anim.Config()
		if cmd.Flags().Changed("loop") {
			trackCfg.UseLoopingInterpolation = opts.Loop
		}
		trackCfg.Easing = ease

		step := opts.Step
		if step == 0 {
			step = cfg.Sampling.Step
		}

		frames, err := sampler.SampleAnimation(cmd.Context(), anim, sampler.Options{
			Start:    opts.Start,
			End:      opts.End,
			Step:     step,
			Channels: opts.Channels,
			Workers:  opts.Workers,
			Config:   trackCfg,
		})
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(frames)
		if err != nil {
			return err
		}

		if opts.Out == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		if err := os.WriteFile(opts.Out, data, 0644); err != nil {
			return err
		}
		fmt.Printf("[+] Sampled %d frames of %q into %s\n", len(frames), anim.Name, opts.Out)
		return nil
	},
}
