package network

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// MessageType is the first header byte
type MessageType uint8

const (
	MsgHeartbeat MessageType = 0x01 // Keeps an idle link inside the read deadline
	MsgStateSync MessageType = 0x11 // Topic-framed Sync Channel payload
)

// HeaderSize precedes every message on the wire
// Fixed 12 bytes: [Type:1][Flags:1][Seq:4][Ack:4][Len:2]
const HeaderSize = 12

// MaxPayload is the largest payload the length field can carry
const MaxPayload = 65535

// Header flags
const (
	FlagNone    uint8 = 0x00
	FlagRelayed uint8 = 0x01 // Host forwarded the payload from another peer
)

// Message represents a framed network message
type Message struct {
	Type    MessageType
	Flags   uint8
	Seq     uint32 // Sender's sequence number
	Ack     uint32 // Last received sequence from peer
	Payload []byte
}

// Encode writes header and payload with a single Write
func (m *Message) Encode(w io.Writer) error {
	n := len(m.Payload)
	if n > MaxPayload {
		return errors.Errorf("payload of %d bytes exceeds maximum size", n)
	}

	frame := make([]byte, HeaderSize+n)
	frame[0] = byte(m.Type)
	frame[1] = m.Flags
	binary.BigEndian.PutUint32(frame[2:6], m.Seq)
	binary.BigEndian.PutUint32(frame[6:10], m.Ack)
	binary.BigEndian.PutUint16(frame[10:12], uint16(n))
	copy(frame[HeaderSize:], m.Payload)

	_, err := w.Write(frame)
	return err
}

// Decode reads a message from a reader
func Decode(r io.Reader) (*Message, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}

	payloadLen := binary.BigEndian.Uint16(header[10:12])

	m := &Message{
		Type:  MessageType(header[0]),
		Flags: header[1],
		Seq:   binary.BigEndian.Uint32(header[2:6]),
		Ack:   binary.BigEndian.Uint32(header[6:10]),
	}

	if payloadLen > 0 {
		m.Payload = make([]byte, payloadLen)
		if _, err := io.ReadFull(r, m.Payload); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// NewMessage creates a message with the given type and payload
func NewMessage(t MessageType, payload []byte) *Message {
	return &Message{
		Type:    t,
		Flags:   FlagNone,
		Payload: payload,
	}
}

// PackTopic prefixes data with its topic: [TopicLen:1][Topic][Data]
// Shared by every byte transport that multiplexes topics on one stream
func PackTopic(topic string, data []byte) ([]byte, error) {
	if len(topic) == 0 || len(topic) > 255 {
		return nil, errors.Errorf("topic length %d out of range", len(topic))
	}
	out := make([]byte, 0, 1+len(topic)+len(data))
	out = append(out, byte(len(topic)))
	out = append(out, topic...)
	out = append(out, data...)
	return out, nil
}

// UnpackTopic splits a PackTopic frame
func UnpackTopic(frame []byte) (string, []byte, error) {
	if len(frame) < 1 {
		return "", nil, errors.Wrap(ErrMalformed, "empty frame")
	}
	n := int(frame[0])
	if n == 0 || len(frame) < 1+n {
		return "", nil, errors.Wrapf(ErrMalformed, "truncated topic of length %d", n)
	}
	return string(frame[1 : 1+n]), frame[1+n:], nil
}
