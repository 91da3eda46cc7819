package sim

// issuePermits is the government collaborator: a single business permit is
// issued when none is outstanding and the permit cadence lands on this day.
// Permits gate firm founding; one permit buys one firm.
func (s *Simulation) issuePermits() {
	if s.Permits == 0 && s.Day%s.Params.PermitInterval == 1 {
		s.Permits++
		s.Events.Addf(s.Day, EventNarration, "government issued a business permit")
	}
}
