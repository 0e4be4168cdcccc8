package fsm

import (
	"fmt"
	"time"
)

// NewMachine creates a new FSM instance with an empty Root node
func NewMachine[T any]() *Machine[T] {
	m := &Machine[T]{
		nodes:      make(map[StateID]*Node[T]),
		activePath: make([]StateID, 0, 4),
	}
	m.AddState(StateRoot, "Root", StateNone)
	return m
}

// Init enters the initial state, running OnEnter from Root down
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}
	if len(node.Path) == 0 {
		return fmt.Errorf("paths not compiled")
	}

	m.activeStateID = m.InitialStateID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)
	m.started = true

	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Update advances time in state, runs the leaf's OnUpdate, then evaluates tick transitions bubbling up
// At most one transition fires per Update
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if !m.started || m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt
	runActions(ctx, m.nodes[m.activeStateID].OnUpdate)

	m.fire(ctx, TriggerTick)
}

// HandleEvent routes an external trigger through the active path
// Returns true if a transition fired
func (m *Machine[T]) HandleEvent(ctx T, trigger Trigger) bool {
	if !m.started || m.activeStateID == StateNone || trigger == TriggerTick {
		return false
	}
	return m.fire(ctx, trigger)
}

func (m *Machine[T]) fire(ctx T, trigger Trigger) bool {
	// Bubble up: Leaf -> Parent -> Root
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Trigger != trigger {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// Force transitions unconditionally, running exit and enter actions
func (m *Machine[T]) Force(ctx T, targetID StateID) {
	if !m.started {
		return
	}
	m.transition(ctx, targetID)
}

// transition performs the state change through the lowest common ancestor
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: attempted transition to unknown state ID %d", targetID))
	}

	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path

	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Exit: current leaf up to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		runActions(ctx, m.nodes[currentPath[i]].OnExit)
	}

	// State is committed before enter actions so they observe the new state
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter: LCA (exclusive) down to target
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		runActions(ctx, m.nodes[targetPath[i]].OnEnter)
	}
}

// Reset exits the whole active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	if m.started {
		for i := len(m.activePath) - 1; i >= 0; i-- {
			runActions(ctx, m.nodes[m.activePath[i]].OnExit)
		}
	}
	m.started = false
	return m.Init(ctx)
}

// Current returns the active leaf state
func (m *Machine[T]) Current() StateID { return m.activeStateID }

// CurrentName returns the active leaf's name
func (m *Machine[T]) CurrentName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns the time accumulated since the last transition
func (m *Machine[T]) TimeInState() time.Duration { return m.timeInState }

// IsIn reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) IsIn(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx, a.Args)
	}
}
