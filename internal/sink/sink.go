// Package sink delivers sampled frames to consumers: an MQTT broker for live
// playback, or any io.Writer.
package sink

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	ErrNotConnected = errors.New("sink not connected")
	ErrTimeout      = errors.New("sink operation timed out")
)

// Sink receives frames in playback order. Implementations must not keep f or
// its value slices after Publish returns; the caller reuses them.
type Sink interface {
	Publish(ctx context.Context, f *Frame) error
	Close() error
}

// Frame is every published channel sampled at one instant.
type Frame struct {
	Session string         `json:"session,omitempty"`
	Clip    string         `json:"clip"`
	Seq     uint64         `json:"seq"`
	Frame   float64        `json:"frame"`
	Values  []ChannelValue `json:"values"`
}

type ChannelValue struct {
	Name  string    `json:"name"`
	Value []float64 `json:"value"`
}

// Codec selects the payload encoding.
type Codec string

const (
	CodecJSON   Codec = "json"
	CodecBinary Codec = "binary"
)

func ParseCodec(name string) (Codec, error) {
	switch Codec(name) {
	case "", CodecJSON:
		return CodecJSON, nil
	case CodecBinary:
		return CodecBinary, nil
	}
	return "", fmt.Errorf("unknown codec %q", name)
}

func (c Codec) Encode(f *Frame) ([]byte, error) {
	if c == CodecBinary {
		return f.MarshalBinary()
	}
	return json.Marshal(f)
}

// MarshalBinary encodes the frame compactly for small consumers:
//
//	u64 seq | f64 frame | u16 channel count |
//	per channel: u8 name length | name | u8 dim | dim x f32
//
// All integers and floats are little endian. Session and clip are omitted.
func (f *Frame) MarshalBinary() ([]byte, error) {
	if len(f.Values) > math.MaxUint16 {
		return nil, fmt.Errorf("too many channels: %d", len(f.Values))
	}

	size := 8 + 8 + 2
	for _, v := range f.Values {
		size += 2 + len(v.Name) + 4*len(v.Value)
	}

	data := make([]byte, 0, size)
	data = binary.LittleEndian.AppendUint64(data, f.Seq)
	data = binary.LittleEndian.AppendUint64(data, math.Float64bits(f.Frame))
	data = binary.LittleEndian.AppendUint16(data, uint16(len(f.Values)))

	for _, v := range f.Values {
		if len(v.Name) > math.MaxUint8 || len(v.Value) > math.MaxUint8 {
			return nil, fmt.Errorf("channel %q too large to encode", v.Name)
		}
		data = append(data, byte(len(v.Name)))
		data = append(data, v.Name...)
		data = append(data, byte(len(v.Value)))
		for _, x := range v.Value {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(x)))
		}
	}

	return data, nil
}
