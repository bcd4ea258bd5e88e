package sim

import (
	"github.com/k7f/ascetic/internal/cex"
)

// ExploreResult summarizes an exhaustive sequential exploration: every
// enabled transition is followed as a separate branch instead of
// picking one.
type ExploreResult struct {
	// Reachable is the number of distinct markings seen within the
	// step budget.
	Reachable int
	// Halts counts terminal branches by reason.
	Halts map[HaltReason]int
	// GoalMarkings are the keys of goal-satisfying markings found.
	GoalMarkings []string
}

// Explore runs the analysis mode of the sequential semantics: a
// breadth-first walk over markings, branching on every enabled
// transition. The visited set bounds the work by the number of
// reachable markings, not the number of paths.
func (e *Engine) Explore(start cex.Marking) *ExploreResult {
	type node struct {
		m     cex.Marking
		depth int
	}

	res := &ExploreResult{Halts: make(map[HaltReason]int)}
	visited := map[string]struct{}{start.Key(): {}}
	queue := []node{{m: start.Clone()}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if e.goalSatisfied(cur.m) {
			res.Halts[GoalReached]++
			res.GoalMarkings = append(res.GoalMarkings, cur.m.Key())
			continue
		}
		if cur.depth >= e.cfg.maxSteps() {
			res.Halts[MaxSteps]++
			continue
		}
		enabled := e.enabledSet(cur.m)
		if len(enabled) == 0 {
			res.Halts[NoEnabledTransition]++
			continue
		}
		for _, i := range enabled {
			next := cur.m.Clone()
			e.transitions[i].Fire(next)
			key := next.Key()
			if _, ok := visited[key]; ok {
				continue
			}
			visited[key] = struct{}{}
			queue = append(queue, node{m: next, depth: cur.depth + 1})
		}
	}
	res.Reachable = len(visited)
	return res
}
