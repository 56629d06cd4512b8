package notification

import "context"

// Service sends the platform's outbound notifications. Delivery is best
// effort: lifecycle operations never fail because an email could not be sent.
type Service interface {
	ProposalSubmitted(ctx context.Context, to, jobTitle, providerName string, price float64) error
	ProposalAccepted(ctx context.Context, to, jobTitle, customerName string, price float64) error
	JobApproved(ctx context.Context, to, jobTitle string) error
	PasswordResetOTP(ctx context.Context, to, otp string) error
}
