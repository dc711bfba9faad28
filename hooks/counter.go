package hooks

// countdown decides when a periodic hook action fires: every n-th tick. Each
// counting hook owns exactly one countdown; it is never shared.
type countdown struct {
	n        int
	testsRun int
}

// tick records one finished test. When the count reaches the threshold it is
// reset to zero first and tick reports true, so a failure in the fired
// action cannot cause a double fire for the same test count.
func (c *countdown) tick() bool {
	c.testsRun++
	if c.testsRun < c.n {
		return false
	}
	c.testsRun = 0
	return true
}

// reset puts the countdown back into its initial state so the owning hook
// can be run again for a new suite.
func (c *countdown) reset() {
	c.testsRun = 0
}
