package generate

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/animtrack/internal/cli/cliutil"
	"github.com/ivlev/animtrack/internal/clip"
	"github.com/ivlev/animtrack/internal/director"
)

var Command = &cobra.Command{
	Use:   "generate",
	Short: "Generate a camera clip that tours regions of a viewport",
	Long: `Writes a clip with camera.position and camera.zoom tracks. The camera starts
on the full viewport, visits every region in reading order and zooms out again.

Usage examples:

	animtrack generate --region 200,100,1320,150 --region 200,450,700,250
	animtrack generate --random 5 --seed 42 --duration 20 -o clips/tour.yaml
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := cliutil.MustConfig(cmd.Context())
		if err != nil {
			return err
		}

		regions, err := collectRegions()
		if err != nil {
			return err
		}

		d := director.NewDirector(opts.Width, opts.Height)
		c, err := d.GenerateClip(opts.Name, regions, opts.Duration, opts.FPS)
		if err != nil {
			return err
		}

		out := opts.Out
		if out == "" {
			out = filepath.Join(cfg.ClipsDir, opts.Name+".yaml")
		}
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return err
		}
		if err := clip.WriteClip(c, out); err != nil {
			return err
		}

		fmt.Printf("[+++] Clip saved: %s\n", out)
		fmt.Printf("[*] %d regions, %d frames at %.3g fps\n", len(regions), c.FrameCount, c.FPS)
		for _, kf := range c.Tracks[0].Keyframes {
			fmt.Printf("  frame %4d: %-10s at (%.0f, %.0f)\n", kf.Frame, kf.Tag, kf.Value[0], kf.Value[1])
		}
		return nil
	},
}

func collectRegions() ([]image.Rectangle, error) {
	if opts.Random > 0 {
		if len(opts.Regions) > 0 {
			return nil, errors.New("--random and --region are mutually exclusive")
		}
		return director.RandomRegions(rand.New(rand.NewSource(opts.Seed)), opts.Random, opts.Width, opts.Height), nil
	}

	regions := make([]image.Rectangle, 0, len(opts.Regions))
	for _, s := range opts.Regions {
		r, err := director.ParseRegion(s)
		if err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}
	return regions, nil
}
