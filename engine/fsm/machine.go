package fsm

import (
	"errors"
	"fmt"
)

var (
	ErrNotCompiled   = errors.New("fsm not compiled")
	ErrUnknownState  = errors.New("unknown state")
	ErrDuplicateNode = errors.New("duplicate state")
)

// NewMachine creates an empty machine
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:      make(map[StateID]*Node[T]),
		activePath: make([]StateID, 0, 4),
	}
}

// AddState adds a node; parentID StateNone makes it a root
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) (*Node[T], error) {
	if id == StateNone {
		return nil, fmt.Errorf("%w: id %d is reserved", ErrUnknownState, id)
	}
	if _, exists := m.nodes[id]; exists {
		return nil, fmt.Errorf("%w: %d (%s)", ErrDuplicateNode, id, name)
	}
	node := &Node[T]{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
	m.nodes[id] = node
	m.compiled = false
	return node, nil
}

// AddTransition appends a transition to sourceID
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) error {
	node, ok := m.nodes[sourceID]
	if !ok {
		return fmt.Errorf("%w: source %d", ErrUnknownState, sourceID)
	}
	node.Transitions = append(node.Transitions, t)
	return nil
}

// SetInitial chooses the state entered by Init and Reset
func (m *Machine[T]) SetInitial(id StateID) {
	m.initial = id
}

// Compile resolves parent links into root paths and validates transition targets
// Must be called after the graph is complete and before Init
func (m *Machine[T]) Compile() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		curr := node
		for depth := 0; ; depth++ {
			if depth > len(m.nodes) {
				return fmt.Errorf("state %d: parent cycle", id)
			}
			path = append(path, curr.ID)
			if curr.ParentID == StateNone {
				break
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("%w: state %d references missing parent %d", ErrUnknownState, id, curr.ParentID)
			}
			curr = parent
		}

		// Reverse to get [Root, ..., Leaf]
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		node.Path = path

		for _, t := range node.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("%w: state %d transitions to %d", ErrUnknownState, id, t.TargetID)
			}
		}
	}

	if _, ok := m.nodes[m.initial]; !ok {
		return fmt.Errorf("%w: initial state %d", ErrUnknownState, m.initial)
	}
	m.compiled = true
	return nil
}

// Init enters the initial state, running OnEnter from the root down
func (m *Machine[T]) Init(ctx T) error {
	if !m.compiled {
		return ErrNotCompiled
	}
	node := m.nodes[m.initial]
	m.active = m.initial
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, action := range m.nodes[id].OnEnter {
			action(ctx)
		}
	}
	return nil
}

// Update advances time in state, runs the leaf's OnUpdate and evaluates tick transitions
func (m *Machine[T]) Update(ctx T, dt float64) {
	if m.active == StateNone {
		return
	}
	m.timeInState += dt

	for _, action := range m.nodes[m.active].OnUpdate {
		action(ctx)
	}
	m.fire(ctx, EventTick)
}

// HandleEvent routes an event from the leaf upward
// Returns true if a transition was taken
func (m *Machine[T]) HandleEvent(ctx T, event EventType) bool {
	if m.active == StateNone || event == EventTick {
		return false
	}
	return m.fire(ctx, event)
}

func (m *Machine[T]) fire(ctx T, event EventType) bool {
	for currID := m.active; currID != StateNone; {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != event {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx, m.timeInState) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition performs a state change through the lowest common ancestor
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.active == targetID {
		return
	}
	target := m.nodes[targetID]

	lca := -1
	current := m.activePath
	for i := 0; i < len(current) && i < len(target.Path); i++ {
		if current[i] != target.Path[i] {
			break
		}
		lca = i
	}

	// Exit: leaf up to LCA (exclusive)
	for i := len(current) - 1; i > lca; i-- {
		for _, action := range m.nodes[current[i]].OnExit {
			action(ctx)
		}
	}

	m.active = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], target.Path...)

	// Enter: LCA (exclusive) down to leaf
	for i := lca + 1; i < len(target.Path); i++ {
		for _, action := range m.nodes[target.Path[i]].OnEnter {
			action(ctx)
		}
	}
}

// Reset exits the active chain and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		for _, action := range m.nodes[m.activePath[i]].OnExit {
			action(ctx)
		}
	}
	m.active = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

// Active returns the current leaf state
func (m *Machine[T]) Active() StateID {
	return m.active
}

// In reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) In(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// StateName returns the active leaf's name
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.active]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns seconds spent in the active leaf
func (m *Machine[T]) TimeInState() float64 {
	return m.timeInState
}
