package ports

import (
	"context"

	"hawkerflow/internal/core/domain/model/kernel"
)

// ChargeRequest is sent to the payment collaborator.
type ChargeRequest struct {
	OrderID kernel.OrderID
	Token   string
	Amount  kernel.Money
}

// PaymentGateway charges a customer. It returns approved=false with a nil
// error when the payment was declined; transport failures and timeouts are
// returned as errors.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (approved bool, err error)
}
