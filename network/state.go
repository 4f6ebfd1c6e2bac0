package network

import (
	"math"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/zengarden/vmath"
)

// PlatformState is the platform record broadcast every tick
// Positions[i] belongs to platform i; Direction is +1 or -1
// Toggles counts direction flips the sender has seen, its own and adopted ones
type PlatformState struct {
	Positions []vmath.Vec3
	Direction int
	Toggles   uint32
}

type platformStateWire struct {
	Positions [][3]float64 `msgpack:"p"`
	Direction int8         `msgpack:"d"`
	Toggles   uint32       `msgpack:"v"`
}

// Clone returns a deep copy
func (s PlatformState) Clone() PlatformState {
	out := PlatformState{
		Positions: make([]vmath.Vec3, len(s.Positions)),
		Direction: s.Direction,
		Toggles:   s.Toggles,
	}
	copy(out.Positions, s.Positions)
	return out
}

// EncodePlatformState serializes state for the sync topic
func EncodePlatformState(s PlatformState) ([]byte, error) {
	w := platformStateWire{
		Positions: make([][3]float64, len(s.Positions)),
		Direction: int8(s.Direction),
		Toggles:   s.Toggles,
	}
	for i, p := range s.Positions {
		w.Positions[i] = [3]float64{p.X, p.Y, p.Z}
	}
	data, err := msgpack.Marshal(&w)
	if err != nil {
		return nil, errors.Wrap(err, "encode platform state")
	}
	return data, nil
}

// DecodePlatformState parses and validates a received state for n platforms
// Rejects wrong counts, a direction other than +1/-1, and non-finite coordinates
func DecodePlatformState(data []byte, n int) (PlatformState, error) {
	var w platformStateWire
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return PlatformState{}, errors.Wrapf(ErrMalformed, "decode platform state: %v", err)
	}
	if len(w.Positions) != n {
		return PlatformState{}, errors.Wrapf(ErrMalformed, "platform count %d, want %d", len(w.Positions), n)
	}
	if w.Direction != 1 && w.Direction != -1 {
		return PlatformState{}, errors.Wrapf(ErrMalformed, "direction %d", w.Direction)
	}

	s := PlatformState{
		Positions: make([]vmath.Vec3, n),
		Direction: int(w.Direction),
		Toggles:   w.Toggles,
	}
	for i, p := range w.Positions {
		for _, c := range p {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return PlatformState{}, errors.Wrapf(ErrMalformed, "platform %d has non-finite coordinate", i)
			}
		}
		s.Positions[i] = vmath.V3(p[0], p[1], p[2])
	}
	return s, nil
}
