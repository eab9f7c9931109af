package domain

// PaymentStatus is the money-movement state of a job's payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusEscrow  PaymentStatus = "ESCROW"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// Payments only move forward: PENDING -> ESCROW -> PAID.
var paymentNext = map[PaymentStatus]map[PaymentStatus]bool{
	PaymentStatusPending: {PaymentStatusEscrow: true},
	PaymentStatusEscrow:  {PaymentStatusPaid: true},
	PaymentStatusPaid:    {},
}

// ValidPaymentStatus reports whether s is a member of the payment status enum.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusEscrow, PaymentStatusPaid:
		return true
	}
	return false
}

// CanTransitionPayment reports whether a payment may move from one status to the next.
func CanTransitionPayment(from, to PaymentStatus) bool {
	return paymentNext[from][to]
}

// CommissionRate is the platform's cut of the job price.
const CommissionRate = 0.10
