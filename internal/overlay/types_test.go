package overlay

import (
	"encoding/json"
	"testing"
)

func TestBundleNormalize(t *testing.T) {
	var b Bundle
	if err := json.Unmarshal([]byte(`{}`), &b); err != nil {
		t.Fatal(err)
	}
	b.Normalize()

	if b.Heap == nil || b.Borrows == nil || b.ActionsStart == nil ||
		b.ActionsMid == nil || b.PathConditions == nil ||
		b.RepacksStart == nil || b.RepacksMid == nil {
		t.Error("normalized bundle still has nil slices")
	}
	if !b.Empty() {
		t.Error("normalized empty bundle reports non-empty")
	}
}

func TestBundleEmpty(t *testing.T) {
	b := Bundle{Borrows: []Borrow{{IsMut: true}}}
	if b.Empty() {
		t.Error("bundle with a borrow reports empty")
	}
}

func TestBundleDecode(t *testing.T) {
	raw := `{
		"heap": [{"place": {"place": "x"}, "value": "1", "ty": "i32"}],
		"borrows": [{
			"blocked_place": {"place": "x"},
			"assigned_place": {"place": "y", "at": "bb1[2]"},
			"is_mut": true
		}],
		"actions_start": [{"action": "AddReborrow"}],
		"path_conditions": ["c1"]
	}`
	var b Bundle
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatal(err)
	}

	if len(b.Heap) != 1 || b.Heap[0].Type != "i32" {
		t.Errorf("heap = %+v", b.Heap)
	}
	br := b.Borrows[0]
	if !br.IsMut || br.BlockedPlace.Place != "x" {
		t.Errorf("borrow = %+v", br)
	}
	if !br.AssignedPlace.Old() {
		t.Error("place with an at-snapshot should report Old")
	}
	if b.ActionsStart[0].Kind != ActionAddReborrow {
		t.Errorf("action kind = %q", b.ActionsStart[0].Kind)
	}
}

func TestPlaceOld(t *testing.T) {
	if (Place{Place: "x"}).Old() {
		t.Error("plain place reports old")
	}
	if !(Place{Place: "x", At: "bb0[1]"}).Old() {
		t.Error("snapshot place does not report old")
	}
}
