package jflow

// skipKind identifies the shape of a deferred skip job.
type skipKind byte

const (
	skipStringJob skipKind = iota
	skipArrayJob
	skipObjectJob
	skipObjectValueJob
)

// A skipJob is a deferred "finish consuming this value" instruction,
// recorded when a handle is dropped before reaching its terminator.
// Jobs are expressed using the same sub-parser types the live API uses
// (skipArrayJob constructs a transient ParseArray and drives it to
// exhaustion, etc.), so there is exactly one traversal code path and a
// deeply nested dropped value is always skipped correctly.
type skipJob struct {
	kind        skipKind
	keyConsumed bool // only meaningful for skipObjectValueJob
}

func (j skipJob) run(s *session, holder any) error {
	switch j.kind {
	case skipStringJob:
		return runSkipString(s, holder)
	case skipArrayJob:
		return runSkipArray(s, holder)
	case skipObjectJob:
		return runSkipObject(s, holder)
	case skipObjectValueJob:
		return runSkipObjectValue(s, holder, j.keyConsumed)
	default:
		panic("jflow: unknown skip job kind")
	}
}

// skipQueue holds the pending skip jobs in the order they were pushed.
// session.drain runs the oldest job first and runs any jobs pushed while a
// job is running before the older jobs still waiting, which is what lets
// a skip job's own drop-induced jobs interleave correctly with jobs queued
// before it. push and pop also give it plain stack (LIFO) operations.
type skipQueue struct {
	jobs []skipJob
}

func (q *skipQueue) push(j skipJob) { q.jobs = append(q.jobs, j) }

func (q *skipQueue) pop() (skipJob, bool) {
	n := len(q.jobs)
	if n == 0 {
		return skipJob{}, false
	}
	j := q.jobs[n-1]
	q.jobs = q.jobs[:n-1]
	return j, true
}

func (q *skipQueue) empty() bool { return len(q.jobs) == 0 }
