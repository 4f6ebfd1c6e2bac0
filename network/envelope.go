package network

import (
	"sync/atomic"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Envelope is the wire wrapper of every Sync Channel message
type Envelope struct {
	Sender string `msgpack:"s"` // ULID of the publishing participant
	Seq    uint64 `msgpack:"q"` // Per-sender, strictly increasing
	Topic  string `msgpack:"t"`
	Body   []byte `msgpack:"b"`
}

// Identity stamps outbound envelopes for one participant
type Identity struct {
	id  ulid.ULID
	seq atomic.Uint64
}

// NewIdentity creates a participant identity with a fresh ULID
func NewIdentity() *Identity {
	return &Identity{id: ulid.Make()}
}

// ID returns the participant ULID in canonical string form
func (i *Identity) ID() string {
	return i.id.String()
}

// Seal wraps body for topic with the next sequence number
func (i *Identity) Seal(topic string, body []byte) ([]byte, error) {
	env := Envelope{
		Sender: i.id.String(),
		Seq:    i.seq.Add(1),
		Topic:  topic,
		Body:   body,
	}
	data, err := msgpack.Marshal(&env)
	if err != nil {
		return nil, errors.Wrap(err, "seal envelope")
	}
	return data, nil
}

// Open decodes and validates an envelope
// Every failure wraps ErrMalformed
func Open(data []byte) (Envelope, error) {
	var env Envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return Envelope{}, errors.Wrapf(ErrMalformed, "decode envelope: %v", err)
	}
	if _, err := ulid.ParseStrict(env.Sender); err != nil {
		return Envelope{}, errors.Wrapf(ErrMalformed, "sender %q: %v", env.Sender, err)
	}
	if env.Seq == 0 {
		return Envelope{}, errors.Wrap(ErrMalformed, "zero sequence")
	}
	return env, nil
}
