package optimizer

// removeByID deletes the member with the given id from the pool, if
// present. Used by MWCDOptimizer to pull an MW plan's surviving remainder
// out of circulation the moment it is chosen as a swap's sole source.
func (p *remainderPool) removeByID(id string) bool {
	for i, r := range p.members {
		if r.ID == id {
			p.members = append(p.members[:i], p.members[i+1:]...)
			return true
		}
	}
	return false
}
