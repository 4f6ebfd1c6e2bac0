package fsm

import (
	"time"

	"github.com/lixenwraith/zengarden/event"
)

// StateID identifies a node; ids 0 and 1 are reserved
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is a hierarchical state machine whose actions and guards receive a context of type T
type Machine[T any] struct {
	nodes     map[StateID]*Node[T]
	byName    map[string]StateID
	initialID StateID

	activeStateID StateID
	activePath    []StateID // Root first, active leaf last
	timeInState   time.Duration
	entries       uint64

	guardReg  map[string]GuardFunc[T]
	actionReg map[string]ActionFunc[T]
}

// Node is one state; Path is filled by CompilePaths
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID
	Path     []StateID

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Checked in order, first passing guard wins
	Transitions []Transition[T]
}

// Transition fires on Event, or on every Update when Event is zero
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType
	Guard    GuardFunc[T] // nil passes
}

type Action[T any] struct {
	Func ActionFunc[T]
	Args any
}

type GuardFunc[T any] func(ctx T) bool

type ActionFunc[T any] func(ctx T, args any)
