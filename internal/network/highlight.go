package network

import "fmt"

// HighlightState is the transient hover emphasis of a single node.
type HighlightState int

const (
	Neutral HighlightState = iota
	Emphasized
	Dimmed
)

func (s HighlightState) String() string {
	switch s {
	case Neutral:
		return "neutral"
	case Emphasized:
		return "emphasized"
	case Dimmed:
		return "dimmed"
	default:
		return fmt.Sprintf("HighlightState(%d)", int(s))
	}
}

// MarshalText encodes the state by name so JSON maps read naturally.
func (s HighlightState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Hover is the pointer input: either no node, or the node under the pointer.
type Hover struct {
	Node   string
	Active bool
}

// NoHover is the pointer resting on no node.
var NoHover = Hover{}

// HoverOn is the pointer resting on node id.
func HoverOn(id string) Hover {
	return Hover{Node: id, Active: true}
}

// Project computes the state of every node in adj for the given hover. Without a
// hover every node is Neutral. With one, the hovered node and its direct neighbours
// are Emphasized and every other node is Dimmed; hovering an id the graph does not
// contain therefore dims everything.
func Project(adj *Adjacency, hover Hover) map[string]HighlightState {
	states := make(map[string]HighlightState, len(adj.names))
	if !hover.Active {
		for _, id := range adj.names {
			states[id] = Neutral
		}
		return states
	}

	for _, id := range adj.names {
		states[id] = Dimmed
	}
	if !adj.Has(hover.Node) {
		return states
	}
	states[hover.Node] = Emphasized
	for _, id := range adj.Neighbors(hover.Node) {
		states[id] = Emphasized
	}
	return states
}

// Highlighter applies pointer enter/leave events to a rendered subgraph. Each event
// repaints every node from scratch through Project; only the latest event is kept.
type Highlighter struct {
	adj    *Adjacency
	hover  Hover
	states map[string]HighlightState
}

// NewHighlighter starts with every node Neutral.
func NewHighlighter(adj *Adjacency) *Highlighter {
	return &Highlighter{
		adj:    adj,
		states: Project(adj, NoHover),
	}
}

// Enter handles the pointer entering node id, including moving straight from
// another node.
func (h *Highlighter) Enter(id string) map[string]HighlightState {
	return h.apply(HoverOn(id))
}

// Leave handles the pointer leaving the hovered node.
func (h *Highlighter) Leave() map[string]HighlightState {
	return h.apply(NoHover)
}

// Hover returns the last applied pointer input.
func (h *Highlighter) Hover() Hover {
	return h.hover
}

// States returns a copy of the current per-node states.
func (h *Highlighter) States() map[string]HighlightState {
	return copyStates(h.states)
}

func (h *Highlighter) apply(hover Hover) map[string]HighlightState {
	h.hover = hover
	h.states = Project(h.adj, hover)
	return copyStates(h.states)
}

func copyStates(src map[string]HighlightState) map[string]HighlightState {
	dst := make(map[string]HighlightState, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
