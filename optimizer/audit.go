package optimizer

import (
	"encoding/hex"
	"fmt"
	"sort"

	"gitlab.com/NebulousLabs/merkletree"
	"gitlab.com/ironspan/cutstock/modules"
	"golang.org/x/crypto/blake2b"
)

// auditTrail is an additive integrity check on top of spec.md's result: a
// Merkle root per group over its ordered CuttingPlans, and an overall root
// over the sorted per-group roots. Nothing downstream reads these roots back
// to verify a plan; they exist so a host can detect a tampered or truncated
// result without re-running the optimizer, the way a sector root lets a
// renter detect a tampered download without re-fetching it.
type auditTrail struct {
	groupRoots map[string]string
	overall    string
}

// computeAuditTrail builds one leaf per CuttingPlan (source id, module type,
// cut list, waste — everything that determines the plan's effect on
// material), in the plan order the packer already produced, then a group
// root over those leaves and an overall root over every group root sorted
// by key string, so the overall root does not depend on map iteration order.
func computeAuditTrail(outcomes []groupOutcome) auditTrail {
	groupRoots := map[string]string{}
	var keys []string

	for _, o := range outcomes {
		if o.solution == nil {
			continue
		}
		h, _ := blake2b.New256(nil)
		tree := merkletree.New(h)
		for _, plan := range o.solution.CuttingPlans {
			tree.Push([]byte(planLeaf(plan)))
		}
		root := hex.EncodeToString(tree.Root())
		key := o.key.String()
		groupRoots[key] = root
		keys = append(keys, key)
	}

	sort.Strings(keys)
	h, _ := blake2b.New256(nil)
	overallTree := merkletree.New(h)
	for _, k := range keys {
		overallTree.Push([]byte(groupRoots[k]))
	}

	return auditTrail{groupRoots: groupRoots, overall: hex.EncodeToString(overallTree.Root())}
}

// planLeaf renders the deterministic byte representation of a CuttingPlan
// that is hashed into its group's Merkle tree.
func planLeaf(plan *modules.CuttingPlan) string {
	s := fmt.Sprintf("%s|%s|%d|%d", plan.SourceID, plan.ModuleType, plan.SourceLength, plan.Waste)
	for _, c := range plan.Cuts {
		s += fmt.Sprintf("|%s:%d:%d", c.DesignID, c.Length, c.Quantity)
	}
	return s
}
