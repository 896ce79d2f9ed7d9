package sink

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ivlev/animtrack/internal/logging"
)

var logger = logging.Logger("sink/mqtt")

const (
	tokenPoll       = 10 * time.Millisecond
	disconnectQuiet = 250 // ms
)

type MQTTOptions struct {
	URL            string
	Username       string
	Password       string
	ClientID       string
	Topic          string
	QoS            byte
	Retained       bool
	ConnectTimeout time.Duration
	Codec          Codec
}

// MQTTSink publishes each frame as one message on a fixed topic.
type MQTTSink struct {
	client mqtt.Client
	opts   MQTTOptions
}

// NewMQTTSink creates a sink with its own paho client. Call Connect before
// publishing.
func NewMQTTSink(opts MQTTOptions) *MQTTSink {
	options := mqtt.NewClientOptions().
		AddBroker(opts.URL).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(mqtt.Client) {
			logger.Info("Connected to broker", "url", opts.URL, "client_id", opts.ClientID)
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn("Connection lost", "error", err)
		})

	return NewMQTTSinkWithClient(mqtt.NewClient(options), opts)
}

// NewMQTTSinkWithClient wraps an existing client.
func NewMQTTSinkWithClient(client mqtt.Client, opts MQTTOptions) *MQTTSink {
	if opts.Codec == "" {
		opts.Codec = CodecJSON
	}
	return &MQTTSink{client: client, opts: opts}
}

func (s *MQTTSink) Connect(ctx context.Context) error {
	if err := waitToken(ctx, s.client.Connect(), s.opts.ConnectTimeout); err != nil {
		return fmt.Errorf("connect %s: %w", s.opts.URL, err)
	}
	return nil
}

func (s *MQTTSink) Publish(ctx context.Context, f *Frame) error {
	if !s.client.IsConnectionOpen() {
		return ErrNotConnected
	}

	payload, err := s.opts.Codec.Encode(f)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", f.Seq, err)
	}

	token := s.client.Publish(s.opts.Topic, s.opts.QoS, s.opts.Retained, payload)
	if err := waitToken(ctx, token, 0); err != nil {
		return fmt.Errorf("publish frame %d: %w", f.Seq, err)
	}
	return nil
}

func (s *MQTTSink) Close() error {
	if s.client.IsConnected() {
		s.client.Disconnect(disconnectQuiet)
	}
	return nil
}

// waitToken waits for token while honouring ctx. A zero timeout waits for as
// long as ctx allows.
func waitToken(ctx context.Context, token mqtt.Token, timeout time.Duration) error {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for !token.WaitTimeout(tokenPoll) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return ErrTimeout
		}
	}
	return token.Error()
}
