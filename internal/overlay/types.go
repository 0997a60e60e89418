// Package overlay defines the per-point datasets shown alongside the graph
// and the keying/race discipline for refreshing them.
package overlay

// Place is a symbolic memory location. Non-empty At marks an "old" snapshot
// taken before a later mutation of the same place.
type Place struct {
	Place string `json:"place"`
	At    string `json:"at,omitempty"`
}

// Old reports whether the place is a pre-mutation snapshot.
func (p Place) Old() bool {
	return p.At != ""
}

// HeapEntry is one abstract heap cell.
type HeapEntry struct {
	Place Place  `json:"place"`
	Value string `json:"value"`
	Type  string `json:"ty"`
}

// Borrow is an active borrow or reborrow edge in the borrow graph.
type Borrow struct {
	BlockedPlace  Place `json:"blocked_place"`
	AssignedPlace Place `json:"assigned_place"`
	IsMut         bool  `json:"is_mut"`
	// Conditions names the path conditions under which the borrow is live.
	Conditions []string `json:"conditions,omitempty"`
}

// Action kinds applied by the analysis between two program points.
const (
	ActionAddReborrow    = "AddReborrow"
	ActionRemoveReborrow = "RemoveReborrow"
	ActionExpandPlace    = "ExpandPlace"
	ActionCollapsePlace  = "CollapsePlace"
)

// Action is one borrow-graph delta.
type Action struct {
	Kind     string  `json:"action"`
	Reborrow *Borrow `json:"reborrow,omitempty"`
	Place    *Place  `json:"place,omitempty"`
}

// Expansion records a place expanded into its fields while a reborrow
// crosses it.
type Expansion struct {
	Base   Place   `json:"base"`
	Fields []Place `json:"expansion"`
}

// Bridge is the reborrow delta effective between two points: place
// expansions, added reborrows and an optional DOT description of the
// intermediate graph.
type Bridge struct {
	Expansions     []Expansion `json:"expansions,omitempty"`
	AddedReborrows []Borrow    `json:"added_reborrows,omitempty"`
	Graph          string      `json:"graph,omitempty"`
}

// Assertion is a logical assertion together with the path-condition set it
// is implied by. Assertions are a per-function dataset.
type Assertion struct {
	Assertion string   `json:"assertion"`
	Pcs       []string `json:"pcs"`
}

// Bundle is the complete per-point dataset. It is derived, never
// authoritative: a function of (function, path prefix, statement offset),
// and is replaced wholesale on every recompute, never merged. Absent
// optional fields decode to their zero values; Normalize makes the empty
// cases uniform so views never see nil-vs-empty differences.
type Bundle struct {
	Heap           []HeapEntry `json:"heap"`
	Borrows        []Borrow    `json:"borrows"`
	ActionsStart   []Action    `json:"actions_start"`
	ActionsMid     []Action    `json:"actions_mid"`
	Bridge         Bridge      `json:"bridge"`
	PathConditions []string    `json:"path_conditions"`
	RepacksStart   []string    `json:"repacks_start"`
	RepacksMid     []string    `json:"repacks_mid"`
}

// Normalize replaces nil slices with empty ones. Called once at the fetch
// boundary so the rest of the program can treat the schema as total.
func (b *Bundle) Normalize() {
	if b.Heap == nil {
		b.Heap = []HeapEntry{}
	}
	if b.Borrows == nil {
		b.Borrows = []Borrow{}
	}
	if b.ActionsStart == nil {
		b.ActionsStart = []Action{}
	}
	if b.ActionsMid == nil {
		b.ActionsMid = []Action{}
	}
	if b.PathConditions == nil {
		b.PathConditions = []string{}
	}
	if b.RepacksStart == nil {
		b.RepacksStart = []string{}
	}
	if b.RepacksMid == nil {
		b.RepacksMid = []string{}
	}
}

// Empty reports whether the bundle carries no data at all.
func (b *Bundle) Empty() bool {
	return len(b.Heap) == 0 && len(b.Borrows) == 0 &&
		len(b.ActionsStart) == 0 && len(b.ActionsMid) == 0 &&
		len(b.Bridge.Expansions) == 0 && len(b.Bridge.AddedReborrows) == 0 &&
		len(b.PathConditions) == 0 &&
		len(b.RepacksStart) == 0 && len(b.RepacksMid) == 0
}
