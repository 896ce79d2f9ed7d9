package bench

var opts = &options{}

type options struct {
	Keyframes int
	Queries   int
	Pattern   string
	Spacing   int
	Seed      int64
}

func init() {
	flags := Command.Flags()
	flags.IntVar(&opts.Keyframes, "keyframes", 10000, "Keyframes in the benchmark track")
	flags.IntVar(&opts.Queries, "queries", 1000000, "Interpolated lookups to run")
	flags.StringVar(&opts.Pattern, "pattern", "sequential", "Query order: sequential, random, reverse")
	flags.IntVar(&opts.Spacing, "spacing", 4, "Frames between keyframes")
	flags.Int64Var(&opts.Seed, "seed", 1, "Seed for the random pattern")
}
