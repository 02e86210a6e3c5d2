package novu

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) GetSubscriber(ctx context.Context, subscriberID string) (*Result, error) {
	if err := requireID("subscriber id", subscriberID); err != nil {
		return nil, err
	}

	return c.do(ctx, request{
		operation: "get_subscriber",
		method:    http.MethodGet,
		path:      subscriberPath(subscriberID),
	})
}

// UpsertSubscriber updates a subscriber profile, creating it when it does not exist.
func (c *Client) UpsertSubscriber(ctx context.Context, subscriber Subscriber) (*Result, error) {
	if err := subscriber.Validate(); err != nil {
		return nil, err
	}

	return c.do(ctx, request{
		operation: "upsert_subscriber",
		method:    http.MethodPost,
		path:      subscribersPath,
		body:      toUpsertSubscriberRequest(subscriber),
	})
}

// UpdateSubscriberCredentials stores provider credentials, e.g. device tokens, for a subscriber.
func (c *Client) UpdateSubscriberCredentials(
	ctx context.Context,
	subscriberID string,
	providerID ProviderID,
	credentials map[string]any,
) (*Result, error) {
	if err := requireID("subscriber id", subscriberID); err != nil {
		return nil, err
	}
	if !providerID.IsValid() {
		return nil, fmt.Errorf("%w: unknown provider %q", ErrValidation, providerID)
	}

	return c.do(ctx, request{
		operation: "update_subscriber_credentials",
		method:    http.MethodPut,
		path:      subscriberPath(subscriberID) + credentialsSuffix,
		body: credentialsRequest{
			ProviderID:  providerID.String(),
			Credentials: credentials,
		},
	})
}

func (c *Client) DeleteSubscriber(ctx context.Context, subscriberID string) (*Result, error) {
	if err := requireID("subscriber id", subscriberID); err != nil {
		return nil, err
	}

	return c.do(ctx, request{
		operation: "delete_subscriber",
		method:    http.MethodDelete,
		path:      subscriberPath(subscriberID),
	})
}
