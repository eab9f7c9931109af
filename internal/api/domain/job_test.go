package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionJob(t *testing.T) {
	tests := []struct {
		name string
		from JobStatus
		to   JobStatus
		want bool
	}{
		{"pending to accepted", JobStatusPending, JobStatusAccepted, true},
		{"pending to cancelled", JobStatusPending, JobStatusCancelled, true},
		{"pending to completed skips states", JobStatusPending, JobStatusCompleted, false},
		{"accepted to in progress", JobStatusAccepted, JobStatusInProgress, true},
		{"accepted to cancelled", JobStatusAccepted, JobStatusCancelled, true},
		{"in progress to completed", JobStatusInProgress, JobStatusCompleted, true},
		{"in progress to cancelled rejected", JobStatusInProgress, JobStatusCancelled, false},
		{"in progress regression to pending", JobStatusInProgress, JobStatusPending, false},
		{"completed is terminal", JobStatusCompleted, JobStatusCancelled, false},
		{"cancelled is terminal", JobStatusCancelled, JobStatusAccepted, false},
		{"self transition rejected", JobStatusPending, JobStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionJob(tt.from, tt.to))
		})
	}
}

func TestValidJobStatus(t *testing.T) {
	for _, s := range []JobStatus{JobStatusPending, JobStatusAccepted, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled} {
		assert.True(t, ValidJobStatus(s), string(s))
	}
	assert.False(t, ValidJobStatus("RUNNING"))
	assert.False(t, ValidJobStatus(""))
}

func TestCanTransitionPayment(t *testing.T) {
	assert.True(t, CanTransitionPayment(PaymentStatusPending, PaymentStatusEscrow))
	assert.True(t, CanTransitionPayment(PaymentStatusEscrow, PaymentStatusPaid))
	assert.False(t, CanTransitionPayment(PaymentStatusPending, PaymentStatusPaid))
	assert.False(t, CanTransitionPayment(PaymentStatusEscrow, PaymentStatusPending))
	assert.False(t, CanTransitionPayment(PaymentStatusPaid, PaymentStatusEscrow))
}

func TestJobTerminal(t *testing.T) {
	assert.True(t, JobTerminal(JobStatusCompleted))
	assert.True(t, JobTerminal(JobStatusCancelled))
	assert.False(t, JobTerminal(JobStatusInProgress))
}
