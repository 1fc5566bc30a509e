package optimizer

import (
	"math"
	"sort"

	"gitlab.com/ironspan/cutstock/modules"
)

// group bundles everything a single GroupOptimizer task owns: the group's
// slice of the design catalog and the module-length catalog, which is the
// same ascending, deduplicated list of lengths for every group.
type group struct {
	key         modules.GroupKey
	parts       []modules.DesignPart
	moduleSpec  string
	moduleLengths []int
}

// partitionGroups implements spec.md §4.2: partition parts by composite key
// (specification, round(crossSection)). Groups are returned sorted by key so
// every later group-indexed iteration (coordinator fan-out, statistics
// aggregation) has a single deterministic order to rely on, per spec.md §5.
func partitionGroups(parts []modules.DesignPart, moduleBars []modules.ModuleBarInput) []*group {
	byKey := map[modules.GroupKey]*group{}
	var keys []modules.GroupKey

	for _, p := range parts {
		key := modules.GroupKey{Specification: p.Specification, CrossSection: int64(math.Round(p.CrossSection))}
		g, ok := byKey[key]
		if !ok {
			g = &group{key: key, moduleSpec: p.Specification}
			byKey[key] = g
			keys = append(keys, key)
		}
		g.parts = append(g.parts, p)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	// Module bars are a global catalog of lengths; every group may draw on
	// any length (spec.md never scopes the module-length catalog itself to
	// a group, only the resulting ModuleBar instances). Sort ascending once
	// here so ModuleStockPool and the Packer's lookahead candidate scan
	// never need to re-sort.
	lengths := make([]int, 0, len(moduleBars))
	for _, m := range moduleBars {
		lengths = append(lengths, m.Length)
	}
	sort.Ints(lengths)
	lengths = dedupInts(lengths)

	groups := make([]*group, 0, len(keys))
	for _, key := range keys {
		g := byKey[key]
		g.moduleLengths = lengths
		groups = append(groups, g)
	}
	return groups
}

func dedupInts(sorted []int) []int {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
