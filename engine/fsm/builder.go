package fsm

import "github.com/pkg/errors"

// AddState registers a node, replacing any node with the same id
// Paths are stale until CompilePaths runs
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{ID: id, Name: name, ParentID: parentID}
	m.nodes[id] = node
	m.byName[name] = id
	return node
}

// AddTransition appends t to the source node; unknown sources are ignored
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node := m.nodes[sourceID]; node != nil {
		node.Transitions = append(node.Transitions, t)
	}
}

func (m *Machine[T]) SetInitial(id StateID) {
	m.initialID = id
}

// CompilePaths resolves every node's Root..leaf chain
// Fails on a missing parent or a parent cycle
func (m *Machine[T]) CompilePaths() error {
	done := make(map[StateID][]StateID, len(m.nodes))
	onStack := make(map[StateID]bool)

	var resolve func(id StateID) ([]StateID, error)
	resolve = func(id StateID) ([]StateID, error) {
		if p, ok := done[id]; ok {
			return p, nil
		}
		node := m.nodes[id]
		if node == nil {
			return nil, errors.Errorf("missing state %d", id)
		}
		if onStack[id] {
			return nil, errors.Errorf("state %d has a parent cycle", id)
		}
		onStack[id] = true
		defer delete(onStack, id)

		var path []StateID
		if node.ParentID != StateNone {
			parent, err := resolve(node.ParentID)
			if err != nil {
				return nil, errors.Wrapf(err, "state %d", id)
			}
			path = make([]StateID, len(parent), len(parent)+1)
			copy(path, parent)
		}
		path = append(path, id)
		done[id] = path
		return path, nil
	}

	for id, node := range m.nodes {
		path, err := resolve(id)
		if err != nil {
			return err
		}
		node.Path = path
	}
	return nil
}
