package jflow

// A session is the pair (byte cursor, skip queue) shared by a root Parser
// and every sub-parser handle descended from it. It also tracks which
// handle currently holds exclusive permission to read from the cursor —
// the strategy described in spec §9(c): a state machine inside the owner
// that tracks a current frame and rejects operations on stale frames.
//
// holder identifies the live cursor holder by pointer identity: nil means
// the root Parser itself holds the cursor. acquire/release move the
// holder down into a new child and back up to its parent; any read
// attempted by a handle that is not the current holder is a programmer
// contract violation (spec §7) and panics rather than returning an error.
type session struct {
	cursor *ByteCursor
	skip   skipQueue
	holder any
}

func newSession(c *ByteCursor) *session {
	return &session{cursor: c}
}

// acquire transfers cursor ownership from parent to child. It panics if
// parent is not the current holder, which would mean the caller is trying
// to construct a handle underneath one that is already suspended or
// already closed — exactly the violation spec §5 calls undefined
// behaviour and says implementations should make structurally
// unreachable.
func (s *session) acquire(parent, child any) {
	if s.holder != parent {
		panic("jflow: cannot open a new handle while another is live (cursor exclusivity violated)")
	}
	s.holder = child
}

// release hands the cursor back from child to parent. It panics if child
// is not the current holder. The handles' Close methods call checkHolder
// first (so closing a handle whose child is still open panics there), and
// a second Close returns early without calling release.
func (s *session) release(child, parent any) {
	if s.holder != child {
		panic("jflow: handle released out of turn (cursor exclusivity violated)")
	}
	s.holder = parent
}

// checkHolder panics unless h is the current cursor holder. Every read
// operation on every handle calls this first.
func (s *session) checkHolder(h any) {
	if s.holder != h {
		panic("jflow: operation on a suspended or already-closed handle")
	}
}

// drain runs every pending skip job on behalf of holder — the handle about
// to perform a real read. Jobs run oldest first: a child is always closed
// before its parent, so the oldest job covers the bytes nearest the
// cursor. Running a job may push further jobs (a dropped array full of
// dropped arrays); those belong to the job's own value and run before the
// older jobs still waiting. Drain always happens before the next
// byte-source read, never at drop time.
func (s *session) drain(holder any) error {
	for !s.skip.empty() {
		job, rest := s.skip.jobs[0], s.skip.jobs[1:]
		s.skip.jobs = nil
		err := job.run(s, holder)
		s.skip.jobs = append(s.skip.jobs, rest...)
		if err != nil {
			return err
		}
	}
	return nil
}
