package csp

// arc is a directed variable pair (u, v): revise(u, v) filters D(u)
// against D(v).
type arc struct {
	u, v int
}

// AC3 runs arc consistency over a Domain Store. It is constructed
// fresh for each run (preprocessing, or once per search node) and
// tracks the number of successful revisions for observability.
type AC3 struct {
	inst      *Instance
	domains   *Domains
	Revisions int
}

// NewAC3 builds an AC3 run bound to inst and domains. It mutates
// domains in place; callers that need to undo it must snapshot first.
func NewAC3(inst *Instance, domains *Domains) *AC3 {
	return &AC3{inst: inst, domains: domains}
}

// Run establishes arc consistency, returning true (CONSISTENT) if
// every domain still has at least one value with support in every
// neighbor's domain, or false (INCONSISTENT) if some domain was
// emptied in the process. The worklist is FIFO, seeded with both
// directions of every constraint's arc, for run-to-run determinism.
func (a *AC3) Run() bool {
	worklist := make([]arc, 0, 2*len(a.inst.constraints))
	for _, c := range a.inst.constraints {
		worklist = append(worklist, arc{c.U, c.V}, arc{c.V, c.U})
	}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		if a.revise(cur.u, cur.v) {
			if a.domains.Size(cur.u) == 0 {
				return false
			}
			for _, w := range a.inst.Neighbors(cur.u) {
				if w != cur.v {
					worklist = append(worklist, arc{w, cur.u})
				}
			}
		}
	}
	return true
}

// revise removes every value from D(u) that has no supporting value
// in D(v), returning true iff it removed at least one value.
func (a *AC3) revise(u, v int) bool {
	kept := make([]int, 0, a.domains.Size(u))
	revised := false
	for _, x := range a.domains.Values(u) {
		supported := false
		for _, y := range a.domains.Values(v) {
			if a.inst.IsPairAllowed(u, x, v, y) {
				supported = true
				break
			}
		}
		if supported {
			kept = append(kept, x)
		} else {
			revised = true
		}
	}
	if revised {
		a.domains.Replace(u, kept)
		a.Revisions++
	}
	return revised
}
