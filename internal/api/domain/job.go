package domain

// JobStatus is the lifecycle state of a job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusAccepted   JobStatus = "ACCEPTED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusCancelled  JobStatus = "CANCELLED"
)

// jobNext is the allowed-next-states table. CANCELLED is only reachable
// before work starts; COMPLETED and CANCELLED are terminal.
var jobNext = map[JobStatus]map[JobStatus]bool{
	JobStatusPending:    {JobStatusAccepted: true, JobStatusCancelled: true},
	JobStatusAccepted:   {JobStatusInProgress: true, JobStatusCancelled: true},
	JobStatusInProgress: {JobStatusCompleted: true},
	JobStatusCompleted:  {},
	JobStatusCancelled:  {},
}

// ValidJobStatus reports whether s is a member of the status enum.
func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusPending, JobStatusAccepted, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// CanTransitionJob reports whether a job may move from one status to the next.
func CanTransitionJob(from, to JobStatus) bool {
	return jobNext[from][to]
}

// JobTerminal reports whether s is a terminal status.
func JobTerminal(s JobStatus) bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// DefaultPriceCents is charged when a provider has no hourly rate set.
const DefaultPriceCents = 7500
