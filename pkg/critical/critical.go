package critical

// Section guards a region of code against preemption.
type Section interface {
	// Enter begins the guarded region.
	Enter()
	// Exit ends the region begun by the matching Enter.
	Exit()
}

// Global is the platform critical section.
var Global Section = global{}

// Run calls fn inside the platform critical section.
func Run(fn func()) {
	Guard(Global, fn)
}

// Guard calls fn inside s. Exit runs even if fn panics.
func Guard(s Section, fn func()) {
	s.Enter()
	defer s.Exit()
	fn()
}
