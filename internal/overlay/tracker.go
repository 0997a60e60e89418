package overlay

// Overlay classes with independent refresh lifetimes. Per-function classes
// reload only on function change; the bundle and dot classes reload on
// every point or path movement.
const (
	ClassGraph      = "graph"
	ClassPaths      = "paths"
	ClassAssertions = "assertions"
	ClassBundle     = "bundle"
	ClassDot        = "dot"
)

// Tracker implements the issue-order discipline for asynchronous overlay
// refreshes. Every issued fetch captures a token; a completed fetch is
// applied only while its token is still the newest for its class. There is
// no cancellation of in-flight requests, discard-on-arrival replaces it.
//
// The tracker is only ever touched from the event loop, so it needs no
// locking.
type Tracker struct {
	seq map[string]uint64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{seq: make(map[string]uint64)}
}

// Issue registers a new fetch for the class and returns its token.
// Issuing supersedes every earlier in-flight fetch of the same class.
func (t *Tracker) Issue(class string) uint64 {
	t.seq[class]++
	return t.seq[class]
}

// Latest reports whether token is still the most recently issued one for
// the class. Results arriving with a stale token must be dropped.
func (t *Tracker) Latest(class string, token uint64) bool {
	return t.seq[class] == token
}
