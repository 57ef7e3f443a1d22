package commands

import (
	"context"

	"hawkerflow/internal/core/ports"
)

// NotifyCustomerCommandHandler hands notifications to the Notifier collaborator.
type NotifyCustomerCommandHandler struct {
	notifier ports.Notifier
}

func NewNotifyCustomerCommandHandler(notifier ports.Notifier) NotifyCustomerCommandHandler {
	return NotifyCustomerCommandHandler{notifier: notifier}
}

func (h *NotifyCustomerCommandHandler) Handle(ctx context.Context, cmd NotifyCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.notifier.Notify(ctx, cmd.Notification())
}
