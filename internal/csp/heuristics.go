package csp

import (
	"math/rand"
	"sort"
)

// Heuristics holds read-only references to the state variable and
// value selection need — the current domains, the partial assignment,
// and the instance's neighbor graph — built once per solve rather than
// re-bound on every call, per the "heuristics as a strategy object"
// design note.
type Heuristics struct {
	inst       *Instance
	domains    *Domains
	assignment map[int]int
	rng        *rand.Rand
}

// NewHeuristics constructs a Heuristics handle. seed selects the PRNG
// seed used by the random variable/value strategies.
func NewHeuristics(inst *Instance, domains *Domains, assignment map[int]int, seed int64) *Heuristics {
	return &Heuristics{
		inst:       inst,
		domains:    domains,
		assignment: assignment,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (h *Heuristics) unassigned() []int {
	var out []int
	for v := 0; v < h.inst.NumVariables(); v++ {
		if _, ok := h.assignment[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// SelectVariable picks the next unassigned variable per strategy.
// Returns -1 iff no unassigned variable remains. Unknown strategy
// names default to "mrv".
func (h *Heuristics) SelectVariable(strategy string) int {
	switch strategy {
	case "degree":
		return h.degreeHeuristic()
	case "random":
		return h.randomVariable()
	case "mrv":
		return h.mrvHeuristic()
	default:
		return h.mrvHeuristic()
	}
}

// mrvHeuristic returns the unassigned variable with the smallest
// current domain, first-encountered on ties.
func (h *Heuristics) mrvHeuristic() int {
	selected := -1
	minSize := -1
	for v := 0; v < h.inst.NumVariables(); v++ {
		if _, ok := h.assignment[v]; ok {
			continue
		}
		size := h.domains.Size(v)
		if minSize == -1 || size < minSize {
			minSize = size
			selected = v
		}
	}
	return selected
}

// degreeHeuristic returns the unassigned variable with the largest
// neighborhood, first-encountered on ties.
func (h *Heuristics) degreeHeuristic() int {
	selected := -1
	maxDegree := -1
	for v := 0; v < h.inst.NumVariables(); v++ {
		if _, ok := h.assignment[v]; ok {
			continue
		}
		degree := len(h.inst.Neighbors(v))
		if degree > maxDegree {
			maxDegree = degree
			selected = v
		}
	}
	return selected
}

func (h *Heuristics) randomVariable() int {
	unassigned := h.unassigned()
	if len(unassigned) == 0 {
		return -1
	}
	return unassigned[h.rng.Intn(len(unassigned))]
}

// OrderValues returns var's current domain values ordered per
// strategy. Unknown strategy names default to "lexicographic".
func (h *Heuristics) OrderValues(varID int, strategy string) []int {
	switch strategy {
	case "lcv":
		return h.lcvHeuristic(varID)
	case "random":
		return h.randomValues(varID)
	case "lexicographic":
		return h.lexicographicValues(varID)
	default:
		return h.lexicographicValues(varID)
	}
}

// lcvHeuristic orders values ascending by conflict count, stable so
// ties keep lexicographic order as the secondary key.
func (h *Heuristics) lcvHeuristic(varID int) []int {
	values := h.domains.Values(varID)
	ordered := make([]int, len(values))
	copy(ordered, values)
	conflicts := make(map[int]int, len(ordered))
	for _, value := range ordered {
		conflicts[value] = h.conflictCount(varID, value)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return conflicts[ordered[i]] < conflicts[ordered[j]]
	})
	return ordered
}

func (h *Heuristics) randomValues(varID int) []int {
	values := h.domains.Values(varID)
	shuffled := make([]int, len(values))
	copy(shuffled, values)
	h.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

func (h *Heuristics) lexicographicValues(varID int) []int {
	values := h.domains.Values(varID)
	ordered := make([]int, len(values))
	copy(ordered, values)
	sort.Ints(ordered)
	return ordered
}

// conflictCount counts (neighbor, neighbor-value) pairs, over
// unassigned neighbors only, where var=value is not allowed against
// neighbor=neighborValue.
func (h *Heuristics) conflictCount(varID, value int) int {
	conflicts := 0
	for _, w := range h.inst.Neighbors(varID) {
		if _, assigned := h.assignment[w]; assigned {
			continue
		}
		for _, y := range h.domains.Values(w) {
			if !h.inst.IsPairAllowed(varID, value, w, y) {
				conflicts++
			}
		}
	}
	return conflicts
}
