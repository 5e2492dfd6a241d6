package csp

import "testing"

func TestForwardCheckPrunesUnassignedNeighbor(t *testing.T) {
	c := notEqualConstraint(0, 1, 1, 3)
	inst := NewInstance([][2]int{{1, 1}, {1, 3}}, []Constraint{c})
	d := NewDomains(inst)
	assignment := map[int]int{}

	if !ForwardCheck(inst, d, assignment, 0, 1) {
		t.Fatal("expected ForwardCheck to succeed")
	}
	got := d.Values(1)
	for _, v := range got {
		if v == 1 {
			t.Errorf("Values(1) = %v, value 1 should have been pruned by X=1 != Y", got)
		}
	}
}

func TestForwardCheckFailsOnEmptiedDomain(t *testing.T) {
	c := notEqualConstraint(0, 1, 1, 1)
	inst := NewInstance([][2]int{{1, 1}, {1, 1}}, []Constraint{c})
	d := NewDomains(inst)
	assignment := map[int]int{}

	if ForwardCheck(inst, d, assignment, 0, 1) {
		t.Fatal("expected ForwardCheck to fail when it empties Y's domain")
	}
}

func TestForwardCheckSkipsAlreadyAssignedNeighbor(t *testing.T) {
	c := notEqualConstraint(0, 1, 1, 1)
	inst := NewInstance([][2]int{{1, 1}, {1, 1}}, []Constraint{c})
	d := NewDomains(inst)
	assignment := map[int]int{1: 1}

	if !ForwardCheck(inst, d, assignment, 0, 1) {
		t.Fatal("expected ForwardCheck to ignore an already-assigned neighbor")
	}
	if d.Size(1) != 1 {
		t.Errorf("Size(1) = %d, an already-assigned neighbor's domain must not be touched", d.Size(1))
	}
}
