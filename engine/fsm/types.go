// Package fsm is a small hierarchical finite state machine driven by ticks and events
//
// The graph is built once, then stepped synchronously by its owner. Transitions
// bubble from the active leaf up through its parents; entering and leaving a
// state runs actions only for the nodes below the lowest common ancestor.
package fsm

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
)

// EventType identifies an external trigger; EventTick (0) marks automatic transitions
type EventType int

const EventTick EventType = 0

// Machine is the generic state machine runtime
// T is the context passed to actions and guards (e.g., *motion.Controller)
type Machine[T any] struct {
	// Graph data, immutable after Compile
	nodes    map[StateID]*Node[T]
	initial  StateID
	compiled bool

	// Runtime state
	active      StateID
	activePath  []StateID // Root -> Leaf
	timeInState float64   // seconds
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from root to this node for LCA lookup
	Path []StateID

	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    EventType    // EventTick = evaluated every Update
	Guard    GuardFunc[T] // nil = always true
}

// GuardFunc returns true if the transition should occur
// timeInState is the seconds spent in the current leaf
type GuardFunc[T any] func(ctx T, timeInState float64) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
