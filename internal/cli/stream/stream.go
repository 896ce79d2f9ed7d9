package stream

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ivlev/animtrack/internal/cli/cliutil"
	"github.com/ivlev/animtrack/internal/config"
	"github.com/ivlev/animtrack/internal/easing"
	"github.com/ivlev/animtrack/internal/player"
	"github.com/ivlev/animtrack/internal/sink"
)

var Command = &cobra.Command{
	Use:   "stream [clip]",
	Short: "Play a clip in real time and publish frames over MQTT",
	Long: `Plays a clip at its frame rate and publishes every sampled frame to the
MQTT topic from the config, until interrupted or, for clips that do not loop,
until the last frame.

Usage examples:

	animtrack stream clips/wave.yaml
	ANIMTRACK_MQTT_URL=tcp://broker:1883 animtrack stream clips/wave.yaml --loop --speed 0.5
	animtrack stream clips/wave.yaml --stdout
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

		return runCommand(cmd, cfg, path)
	},
}

func runCommand(cmd *cobra.Command, cfg *config.Config, path string) error {
	ctx := cmd.Context()

	anim, _, err := cliutil.LoadAnimation(path, cfg.ClipsDir)
	if err != nil {
		return err
	}

	codec, err := sink.ParseCodec(opts.Codec)
	if err != nil {
		return err
	}

	easingName := cfg.Playback.Easing
	if opts.Easing != "" {
		easingName = opts.Easing
	}
	ease, err := easing.NewEasing(easingName)
	if err != nil {
		return err
	}

	session := uuid.NewString()

	var out sink.Sink
	if opts.Stdout {
		// Hide Close so the sink leaves stdout open.
		out = sink.NewWriterSink(struct{ io.Writer }{cmd.OutOrStdout()}, codec)
	} else {
		mqttSink := sink.NewMQTTSink(sink.MQTTOptions{
			URL:            cfg.MQTT.URL,
			Username:       cfg.MQTT.Username,
			Password:       cfg.MQTT.Password,
			ClientID:       fmt.Sprintf("%s-%s", cfg.MQTT.ClientID, session[:8]),
			Topic:          cfg.MQTT.Topic,
			QoS:            cfg.MQTT.QoS,
			Retained:       cfg.MQTT.Retained,
			ConnectTimeout: cfg.MQTT.ConnectTimeout,
			Codec:          codec,
		})
		if err := mqttSink.Connect(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "[*] Publishing to %s on %s\n", cfg.MQTT.Topic, cfg.MQTT.URL)
		out = mqttSink
	}
	defer out.Close()

	speed := cfg.Playback.Speed
	if opts.Speed > 0 {
		speed = opts.Speed
	}
	channels := cfg.Playback.Channels
	if len(opts.Channels) > 0 {
		channels = opts.Channels
	}
	looping := cfg.Playback.Looping
	if cmd.Flags().Changed("loop") {
		looping = opts.Loop
	}

	p, err := player.New(anim, out, player.Options{
		Speed:    speed,
		Looping:  looping,
		Easing:   ease,
		Tick:     cfg.Playback.Tick,
		Channels: channels,
		Start:    opts.Start,
		Session:  session,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "[*] Session %s: playing %q at %.3gx\n", session, anim.Name, speed)

	err = p.Run(ctx)
	stats := p.Stats()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "[+] Published %d frames (%d failed, %d loops)\n", stats.Published, stats.Failed, stats.Loops)
	return nil
}
