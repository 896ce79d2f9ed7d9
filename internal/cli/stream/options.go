package stream

var opts = &options{}

type options struct {
	Speed    float64
	Loop     bool
	Stdout   bool
	Codec    string
	Easing   string
	Channels []string
	Start    float64
}

func init() {
	flags := Command.Flags()
	flags.Float64Var(&opts.Speed, "speed", 0, "Playback speed multiplier (0: playback.speed from config)")
	flags.BoolVar(&opts.Loop, "loop", false, "Loop even if the clip does not (default: playback.looping)")
	flags.BoolVar(&opts.Stdout, "stdout", false, "Print frames to stdout instead of publishing to MQTT")
	flags.StringVar(&opts.Codec, "codec", "json", "Frame encoding: json, binary")
	flags.StringVar(&opts.Easing, "easing", "", "Easing for linear segments (default: playback.easing)")
	flags.StringSliceVar(&opts.Channels, "channels", nil, "Only publish these channels (default: playback.channels)")
	flags.Float64Var(&opts.Start, "start", 0, "Frame to start from")
}
