package sample

var opts = &options{}

type options struct {
	Start    float64
	End      float64
	Step     float64
	Loop     bool
	Easing   string
	Out      string
	Channels []string
	Workers  int
}

func init() {
	flags := Command.Flags()
	flags.Float64Var(&opts.Start, "start", 0, "First frame to sample")
	flags.Float64Var(&opts.End, "end", 0, "Last frame to sample, inclusive (0: last frame of the clip)")
	flags.Float64Var(&opts.Step, "step", 0, "Frame step (0: sampling.step from config)")
	flags.BoolVar(&opts.Loop, "loop", false, "Force looping interpolation on or off (default: as the clip says)")
	flags.StringVar(&opts.Easing, "easing", "", "Easing applied to linear segments, e.g. in-out-quad")
	flags.StringVarP(&opts.Out, "out", "o", "", "Write YAML to this file instead of stdout")
	flags.StringSliceVar(&opts.Channels, "channels", nil, "Only sample these channels")
	flags.IntVar(&opts.Workers, "workers", 0, "Channels sampled in parallel (0: all)")
}
