package fsm

import (
	"maps"
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/zengarden/event"
)

// LoadConfig replaces the graph with the YAML document in data
// Guards and actions must be registered first; every name is resolved here, never at run time
func (m *Machine[T]) LoadConfig(data []byte) error {
	var doc RootConfig
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "decode FSM graph")
	}
	if len(doc.States) == 0 {
		return errors.New("FSM graph has no states")
	}

	m.nodes = make(map[StateID]*Node[T])
	m.byName = make(map[string]StateID)
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]

	// Ids follow sorted names so a graph always loads the same way
	m.AddState(StateRoot, "Root", StateNone)
	names := slices.Sorted(maps.Keys(doc.States))
	next := StateRoot + 1
	for _, name := range names {
		if name == "Root" {
			continue
		}
		m.byName[name] = next
		next++
	}

	for _, name := range names {
		cfg := doc.States[name]
		if cfg == nil {
			cfg = &StateConfig{}
		}
		node, err := m.declare(name, cfg)
		if err != nil {
			return err
		}
		if err := m.bind(node, cfg); err != nil {
			return errors.Wrapf(err, "state %q", name)
		}
	}

	if err := m.CompilePaths(); err != nil {
		return err
	}

	id, ok := m.byName[doc.InitialState]
	if !ok || id == StateRoot {
		return errors.Errorf("initial state %q not found", doc.InitialState)
	}
	m.initialID = id
	return nil
}

// GetStateID resolves a state name
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

func (m *Machine[T]) declare(name string, cfg *StateConfig) (*Node[T], error) {
	if name == "Root" {
		return m.nodes[StateRoot], nil
	}
	parent := cfg.Parent
	if parent == "" {
		parent = "Root"
	}
	parentID, ok := m.byName[parent]
	if !ok {
		return nil, errors.Errorf("state %q has unknown parent %q", name, parent)
	}
	return m.AddState(m.byName[name], name, parentID), nil
}

func (m *Machine[T]) bind(node *Node[T], cfg *StateConfig) error {
	var err error
	if node.OnEnter, err = m.actions(cfg.OnEnter); err != nil {
		return errors.Wrap(err, "on_enter")
	}
	if node.OnUpdate, err = m.actions(cfg.OnUpdate); err != nil {
		return errors.Wrap(err, "on_update")
	}
	if node.OnExit, err = m.actions(cfg.OnExit); err != nil {
		return errors.Wrap(err, "on_exit")
	}

	for _, tc := range cfg.Transitions {
		target, ok := m.byName[tc.Target]
		if !ok {
			return errors.Errorf("unknown target %q", tc.Target)
		}
		trigger, ok := event.Lookup(tc.Trigger)
		if !ok {
			return errors.Errorf("unknown event %q", tc.Trigger)
		}
		var guard GuardFunc[T]
		if tc.Guard != "" {
			if guard = m.guardReg[tc.Guard]; guard == nil {
				return errors.Errorf("unknown guard %q", tc.Guard)
			}
		}
		node.Transitions = append(node.Transitions, Transition[T]{TargetID: target, Event: trigger, Guard: guard})
	}
	return nil
}

func (m *Machine[T]) actions(cfgs []ActionConfig) ([]Action[T], error) {
	if len(cfgs) == 0 {
		return nil, nil
	}
	out := make([]Action[T], 0, len(cfgs))
	for _, c := range cfgs {
		fn := m.actionReg[c.Action]
		if fn == nil {
			return nil, errors.Errorf("unknown action %q", c.Action)
		}
		var args any
		if c.Args != nil {
			args = c.Args
		}
		out = append(out, Action[T]{Func: fn, Args: args})
	}
	return out, nil
}
