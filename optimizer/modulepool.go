package optimizer

import (
	"fmt"

	"gitlab.com/ironspan/cutstock/modules"
)

// moduleStockPool is the per-group generator of fresh module bars described
// in spec.md §4.4. It never rejects a request for a catalog length; it just
// mints the bar and records that one more of that length has been used.
type moduleStockPool struct {
	key     modules.GroupKey
	lengths []int // ascending, deduplicated
	nextSeq int
	opened  []*modules.ModuleBar
}

func newModuleStockPool(key modules.GroupKey, lengths []int) *moduleStockPool {
	return &moduleStockPool{key: key, lengths: lengths}
}

// createBar mints a new ModuleBar of the given length with a sequential,
// group-scoped id ("spec_xs_M{n}") and records it for usage statistics.
func (p *moduleStockPool) createBar(length int) *modules.ModuleBar {
	p.nextSeq++
	bar := &modules.ModuleBar{
		ID:            fmt.Sprintf("%s_M%d", p.key.String(), p.nextSeq),
		Length:        length,
		Specification: p.key.Specification,
	}
	p.opened = append(p.opened, bar)
	return bar
}

// candidatesAtLeast returns every catalog length >= min, ascending.
func (p *moduleStockPool) candidatesAtLeast(min int) []int {
	var out []int
	for _, l := range p.lengths {
		if l >= min {
			out = append(out, l)
		}
	}
	return out
}

// longest returns the single longest catalog length, used by the Packer's
// defensive fallback when no candidate covers a demand (spec.md §4.5).
func (p *moduleStockPool) longest() int {
	if len(p.lengths) == 0 {
		return 0
	}
	return p.lengths[len(p.lengths)-1]
}
