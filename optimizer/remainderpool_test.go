package optimizer

import (
	"testing"

	"gitlab.com/ironspan/cutstock/modules"
)

func mustKey() modules.GroupKey {
	return modules.GroupKey{Specification: "S", CrossSection: 100}
}

func addRemainder(p *remainderPool, length int) *modules.Remainder {
	r := &modules.Remainder{ID: p.newRemainderID(), Length: length, GroupKey: p.key, Type: modules.Pending}
	p.add(r)
	return r
}

func TestRemainderPoolAddKeepsAscendingOrder(t *testing.T) {
	p := newRemainderPool(mustKey())
	addRemainder(p, 500)
	addRemainder(p, 100)
	addRemainder(p, 300)

	var lengths []int
	for _, m := range p.members {
		lengths = append(lengths, m.Length)
	}
	want := []int{100, 300, 500}
	for i, w := range want {
		if lengths[i] != w {
			t.Fatalf("members not ascending: got %v, want %v", lengths, want)
		}
	}
}

func TestFindBestSingleShortestThatFits(t *testing.T) {
	p := newRemainderPool(mustKey())
	addRemainder(p, 4000)
	addRemainder(p, 5000)
	addRemainder(p, 9000)

	r := p.findBestSingle(4500)
	if r == nil || r.Length != 5000 {
		t.Fatalf("expected the 5000 remainder, got %+v", r)
	}
	if len(p.members) != 2 {
		t.Fatalf("expected the match to be removed from the pool, got %d members", len(p.members))
	}
}

func TestFindBestSingleNoneFits(t *testing.T) {
	p := newRemainderPool(mustKey())
	addRemainder(p, 1000)
	if r := p.findBestSingle(5000); r != nil {
		t.Fatalf("expected no match, got %+v", r)
	}
}

// TestFindBestCombinationWelding mirrors the spec's welding scenario: two
// 4500 offcuts, a required length of 8000, W=2. The single remainder search
// must fail (max pool length 4500 < 8000) and the combination search must
// find the two 4500s summing to 9000 (slack 1000).
func TestFindBestCombinationWelding(t *testing.T) {
	p := newRemainderPool(mustKey())
	r1 := addRemainder(p, 4500)
	r2 := addRemainder(p, 4500)

	if single := p.findBestSingle(8000); single != nil {
		t.Fatalf("expected no single remainder to cover 8000, got %+v", single)
	}

	combo := p.findBestCombination(8000, 2)
	if combo == nil {
		t.Fatal("expected a welded combination")
	}
	if combo.total != 9000 || combo.slack != 1000 {
		t.Fatalf("got total=%d slack=%d, want total=9000 slack=1000", combo.total, combo.slack)
	}
	if len(combo.remainders) != 2 {
		t.Fatalf("expected 2 remainders in the combination, got %d", len(combo.remainders))
	}
	if len(p.members) != 0 {
		t.Fatalf("expected the combination to be removed from the pool, got %d members left", len(p.members))
	}
	_ = r1
	_ = r2
}

// TestFindBestCombinationPrefersExactMatch verifies the boundary case from
// spec.md §8: a combination with slack 0 beats one with positive slack even
// though both satisfy the required length.
func TestFindBestCombinationPrefersExactMatch(t *testing.T) {
	p := newRemainderPool(mustKey())
	addRemainder(p, 3000)
	addRemainder(p, 5000) // exact: 3000+5000 = 8000
	addRemainder(p, 6000) // 3000+6000 = 9000, slack 1000

	combo := p.findBestCombination(8000, 2)
	if combo == nil || combo.slack != 0 {
		t.Fatalf("expected the exact-match combination (slack 0), got %+v", combo)
	}
}

// TestFindBestCombinationTiesPreferFewerSegments covers spec.md §4.3's
// tie-break: among combinations with equal slack, the one using fewer
// segments wins. Pool [1,2,3,4,6], required 7, W=3: {1,2,4} and {3,4} and
// {1,6} all reach 7 with slack 0, but only {3,4}/{1,6} use 2 members.
func TestFindBestCombinationTiesPreferFewerSegments(t *testing.T) {
	p := newRemainderPool(mustKey())
	addRemainder(p, 1)
	addRemainder(p, 2)
	addRemainder(p, 3)
	addRemainder(p, 4)
	addRemainder(p, 6)

	combo := p.findBestCombination(7, 3)
	if combo == nil || combo.slack != 0 {
		t.Fatalf("expected a slack-0 combination, got %+v", combo)
	}
	if len(combo.remainders) != 2 {
		t.Fatalf("expected the tie-break to prefer the 2-segment combination, got %d segments (%v)",
			len(combo.remainders), combo.remainders)
	}
}

func TestRemainderPoolFinalizeWasteThreshold(t *testing.T) {
	p := newRemainderPool(mustKey())
	below := addRemainder(p, 99)
	atThreshold := addRemainder(p, 100)
	above := addRemainder(p, 500)

	p.finalize(100)

	if below.Type != modules.Waste {
		t.Errorf("length 99 with threshold 100 should be Waste, got %v", below.Type)
	}
	if atThreshold.Type != modules.Real {
		t.Errorf("length exactly at threshold should be Real (strict less-than for waste), got %v", atThreshold.Type)
	}
	if above.Type != modules.Real {
		t.Errorf("length 500 with threshold 100 should be Real, got %v", above.Type)
	}
}

func TestRemoveByID(t *testing.T) {
	p := newRemainderPool(mustKey())
	r := addRemainder(p, 1000)
	addRemainder(p, 2000)

	if !p.removeByID(r.ID) {
		t.Fatal("expected removeByID to find and remove the member")
	}
	if len(p.members) != 1 {
		t.Fatalf("expected 1 member left, got %d", len(p.members))
	}
	if p.removeByID(r.ID) {
		t.Fatal("expected a second removeByID of the same id to report not found")
	}
}
