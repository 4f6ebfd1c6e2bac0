package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen caps stored strings in bytes so HUD columns stay bounded
const MaxStringLen = 20

// AtomicString holds a short label such as an FSM state name
// Zero value reads as ""
type AtomicString struct {
	v atomic.Value
}

// Store saves val, cut back to the last whole rune within MaxStringLen bytes
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.v.Store(val)
}

func (s *AtomicString) Load() string {
	val, _ := s.v.Load().(string)
	return val
}
