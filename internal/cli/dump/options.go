package dump

var opts = &options{}

type options struct {
	Out  string
	Auto bool
}

func init() {
	flags := Command.Flags()
	flags.StringVarP(&opts.Out, "out", "o", "", "Write the dump to this file instead of stdout")
	flags.BoolVar(&opts.Auto, "auto", false, "Write to a timestamped <name>_<time>.golden.yaml in clips_dir")
}
