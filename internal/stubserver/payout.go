package stubserver

import (
	"context"

	"github.com/google/uuid"
)

// PayoutProcessor represents a connector to an external payout rail used to
// settle partner withdrawals.
type PayoutProcessor interface {
	Authorize(ctx context.Context, req PayoutRequest) (PayoutDecision, error)
}

// PayoutRequest captures the data needed to authorize a withdrawal payout.
type PayoutRequest struct {
	PartnerID string
	Amount    int64
}

// PayoutDecision is the processor's response.
type PayoutDecision struct {
	Reference string
	Status    string
}

// StaticPayoutProcessor simulates an always-approving payout rail.
type StaticPayoutProcessor struct{}

// Authorize approves the payout with a synthetic reference.
func (StaticPayoutProcessor) Authorize(_ context.Context, _ PayoutRequest) (PayoutDecision, error) {
	return PayoutDecision{Reference: uuid.NewString(), Status: "approved"}, nil
}
