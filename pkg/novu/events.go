package novu

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// TriggerEvent runs a workflow for the given subscribers.
// See https://docs.novu.co/api/trigger-event/
func (c *Client) TriggerEvent(ctx context.Context, trigger Trigger) (*Result, error) {
	if err := trigger.Validate(); err != nil {
		return nil, err
	}

	return c.do(ctx, request{
		operation: "trigger_event",
		method:    http.MethodPost,
		path:      triggerPath,
		body:      toTriggerRequest(trigger),
	})
}

// BulkTrigger sends several triggers in a single request.
func (c *Client) BulkTrigger(ctx context.Context, triggers []Trigger) (*Result, error) {
	events := make([]triggerRequest, 0, len(triggers))
	for i, trigger := range triggers {
		if err := trigger.Validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, toTriggerRequest(trigger))
	}

	return c.do(ctx, request{
		operation: "bulk_trigger",
		method:    http.MethodPost,
		path:      triggerPath + bulkSuffix,
		body:      bulkTriggerRequest{Events: events},
	})
}

// BroadcastEvent runs a workflow for every existing subscriber. trigger.Subscribers is not sent.
// See https://docs.novu.co/api/broadcast-event-to-all/
func (c *Client) BroadcastEvent(ctx context.Context, trigger Trigger) (*Result, error) {
	if err := trigger.Validate(); err != nil {
		return nil, err
	}

	return c.do(ctx, request{
		operation: "broadcast_event",
		method:    http.MethodPost,
		path:      triggerPath + broadcastSuffix,
		body: broadcastRequest{
			Name:      trigger.ID,
			Payload:   trigger.Payload,
			Overrides: trigger.Overrides,
		},
	})
}

// CancelEvent cancels an active or pending workflow by the transaction ID its trigger returned.
func (c *Client) CancelEvent(ctx context.Context, transactionID string) (*Result, error) {
	if err := requireID("transaction id", transactionID); err != nil {
		return nil, err
	}

	return c.do(ctx, request{
		operation: "cancel_event",
		method:    http.MethodDelete,
		path:      triggerPath + "/" + url.PathEscape(transactionID),
	})
}
