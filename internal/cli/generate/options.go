package generate

var opts = &options{}

type options struct {
	Name     string
	Width    int
	Height   int
	Regions  []string
	Random   int
	Seed     int64
	Duration float64
	FPS      float64
	Out      string
}

func init() {
	flags := Command.Flags()
	flags.StringVar(&opts.Name, "name", "camera", "Clip name")
	flags.IntVar(&opts.Width, "width", 1920, "Viewport width in pixels")
	flags.IntVar(&opts.Height, "height", 1080, "Viewport height in pixels")
	flags.StringArrayVar(&opts.Regions, "region", nil, "Region to visit as x,y,w,h (repeatable)")
	flags.IntVar(&opts.Random, "random", 0, "Visit this many random regions instead")
	flags.Int64Var(&opts.Seed, "seed", 1, "Seed for --random")
	flags.Float64Var(&opts.Duration, "duration", 15, "Clip length in seconds")
	flags.Float64Var(&opts.FPS, "fps", 30, "Frames per second")
	flags.StringVarP(&opts.Out, "out", "o", "", "Output file (default: <clips_dir>/<name>.yaml)")
}
