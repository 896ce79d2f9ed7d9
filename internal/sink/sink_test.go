package sink

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(seq uint64) *Frame {
	return &Frame{
		Session: "s1",
		Clip:    "wave",
		Seq:     seq,
		Frame:   2.5,
		Values: []ChannelValue{
			{Name: "opacity", Value: []float64{0.25}},
			{Name: "offset", Value: []float64{1, 2, 3}},
		},
	}
}

func TestWriterSinkJSONLines(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf, "")

	require.NoError(t, s.Publish(context.Background(), testFrame(1)))
	require.NoError(t, s.Publish(context.Background(), testFrame(2)))
	require.NoError(t, s.Close())

	scanner := bufio.NewScanner(&buf)
	var frames []Frame
	for scanner.Scan() {
		var f Frame
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &f))
		frames = append(frames, f)
	}

	require.Len(t, frames, 2)
	assert.Equal(t, *testFrame(1), frames[0])
	assert.Equal(t, uint64(2), frames[1].Seq)
}

func TestWriterSinkHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewWriterSink(&buf, CodecJSON).Publish(ctx, testFrame(1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestMarshalBinary(t *testing.T) {
	data, err := testFrame(7).MarshalBinary()
	require.NoError(t, err)

	le := binary.LittleEndian
	assert.Equal(t, uint64(7), le.Uint64(data[0:]))
	assert.Equal(t, 2.5, math.Float64frombits(le.Uint64(data[8:])))
	assert.Equal(t, uint16(2), le.Uint16(data[16:]))

	p := 18
	assert.Equal(t, byte(7), data[p])
	assert.Equal(t, "opacity", string(data[p+1:p+8]))
	assert.Equal(t, byte(1), data[p+8])
	assert.Equal(t, float32(0.25), math.Float32frombits(le.Uint32(data[p+9:])))

	p += 13
	assert.Equal(t, "offset", string(data[p+1:p+7]))
	assert.Equal(t, byte(3), data[p+7])
	assert.Equal(t, float32(3), math.Float32frombits(le.Uint32(data[p+16:])))
	assert.Len(t, data, p+20)
}

func TestParseCodec(t *testing.T) {
	c, err := ParseCodec("")
	require.NoError(t, err)
	assert.Equal(t, CodecJSON, c)

	c, err = ParseCodec("binary")
	require.NoError(t, err)
	assert.Equal(t, CodecBinary, c)

	_, err = ParseCodec("xml")
	assert.Error(t, err)
}

type fakeToken struct {
	mqtt.Token
	err   error
	ready bool
}

func (t *fakeToken) WaitTimeout(d time.Duration) bool {
	if !t.ready {
		time.Sleep(d)
	}
	return t.ready
}

func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakeClient struct {
	mqtt.Client
	open         bool
	connectToken *fakeToken
	publishErr   error
	stall        bool
	messages     []published
	disconnected bool
}

func (c *fakeClient) IsConnected() bool      { return c.open }
func (c *fakeClient) IsConnectionOpen() bool { return c.open }

func (c *fakeClient) Connect() mqtt.Token {
	if c.connectToken.ready && c.connectToken.err == nil {
		c.open = true
	}
	return c.connectToken
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.messages = append(c.messages, published{topic, qos, retained, payload.([]byte)})
	return &fakeToken{err: c.publishErr, ready: !c.stall}
}

func (c *fakeClient) Disconnect(uint) {
	c.open = false
	c.disconnected = true
}

func TestMQTTSinkPublish(t *testing.T) {
	client := &fakeClient{connectToken: &fakeToken{ready: true}}
	s := NewMQTTSinkWithClient(client, MQTTOptions{Topic: "animtrack/frames", QoS: 1, Retained: true})

	err := s.Publish(context.Background(), testFrame(1))
	assert.ErrorIs(t, err, ErrNotConnected)

	require.NoError(t, s.Connect(context.Background()))
	require.NoError(t, s.Publish(context.Background(), testFrame(1)))

	require.Len(t, client.messages, 1)
	msg := client.messages[0]
	assert.Equal(t, "animtrack/frames", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	assert.True(t, msg.retained)

	var f Frame
	require.NoError(t, json.Unmarshal(msg.payload, &f))
	assert.Equal(t, "wave", f.Clip)

	require.NoError(t, s.Close())
	assert.True(t, client.disconnected)
}

func TestMQTTSinkBinaryCodec(t *testing.T) {
	client := &fakeClient{open: true}
	s := NewMQTTSinkWithClient(client, MQTTOptions{Topic: "t", Codec: CodecBinary})

	require.NoError(t, s.Publish(context.Background(), testFrame(3)))
	want, _ := testFrame(3).MarshalBinary()
	assert.Equal(t, want, client.messages[0].payload)
}

func TestMQTTSinkErrors(t *testing.T) {
	boom := errors.New("broker refused")

	client := &fakeClient{connectToken: &fakeToken{ready: true, err: boom}}
	s := NewMQTTSinkWithClient(client, MQTTOptions{URL: "tcp://x:1883"})
	assert.ErrorIs(t, s.Connect(context.Background()), boom)

	never := &fakeClient{connectToken: &fakeToken{}}
	s = NewMQTTSinkWithClient(never, MQTTOptions{ConnectTimeout: 30 * time.Millisecond})
	assert.ErrorIs(t, s.Connect(context.Background()), ErrTimeout)

	stalled := &fakeClient{open: true, stall: true}
	s = NewMQTTSinkWithClient(stalled, MQTTOptions{})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Publish(ctx, testFrame(1)), context.DeadlineExceeded)

	failing := &fakeClient{open: true, publishErr: boom}
	s = NewMQTTSinkWithClient(failing, MQTTOptions{})
	assert.ErrorIs(t, s.Publish(context.Background(), testFrame(1)), boom)
}
