package overlay

import "testing"

func TestTrackerIssueOrder(t *testing.T) {
	tr := NewTracker()

	t1 := tr.Issue(ClassBundle)
	t2 := tr.Issue(ClassBundle)

	if t2 <= t1 {
		t.Fatalf("tokens not monotonic: %d then %d", t1, t2)
	}

	// The first fetch resolves after the second was issued: it is stale
	// regardless of which one completed first on the wire.
	if tr.Latest(ClassBundle, t1) {
		t.Error("superseded token reported as latest")
	}
	if !tr.Latest(ClassBundle, t2) {
		t.Error("newest token not reported as latest")
	}
}

func TestTrackerClassesIndependent(t *testing.T) {
	tr := NewTracker()

	tb := tr.Issue(ClassBundle)
	tr.Issue(ClassDot)
	tr.Issue(ClassDot)

	if !tr.Latest(ClassBundle, tb) {
		t.Error("dot issues must not invalidate bundle tokens")
	}
}

func TestTrackerUnknownClass(t *testing.T) {
	tr := NewTracker()
	if tr.Latest(ClassGraph, 1) {
		t.Error("token for a never-issued class reported as latest")
	}
}
