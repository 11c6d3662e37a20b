package presolve

import "github.com/katalvlaran/tabumip/model"

// DetectSelections scans every enabled constraint presolve classified as
// SetPartitioning (sum x == 1), SetPacking (sum x <= 1), or SetCovering
// (sum x >= 1) — the "one-hot" constraint shape — and
// registers a SelectionGroup for each one whose binary members are not
// already claimed by an earlier group (a variable belongs to at most one
// Selection group, per the model invariant).
func DetectSelections(m *model.Model) []*model.SelectionGroup {
	claimed := make(map[int]bool)
	var groups []*model.SelectionGroup

	for _, c := range m.Constraints() {
		if !c.IsEnabled() || !c.IsLinear {
			continue
		}
		switch c.Classification() {
		case model.SetPartitioningType, model.SetPackingType, model.SetCoveringType:
		default:
			continue
		}

		members := varsOf(c.Expression.Sensitivity)
		fresh := members[:0:0]
		for _, vi := range members {
			if !claimed[vi] {
				fresh = append(fresh, vi)
			}
		}
		if len(fresh) < 2 {
			continue
		}
		for _, vi := range fresh {
			claimed[vi] = true
		}
		gi := m.AddSelectionGroup(fresh)
		groups = append(groups, m.Selection(gi))
	}
	return groups
}
