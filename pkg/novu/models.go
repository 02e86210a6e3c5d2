package novu

import (
	"fmt"
	"strings"
)

// Trigger runs one instance of a Novu workflow.
// Subscribers is ignored by BroadcastEvent.
type Trigger struct {
	ID          string
	Subscribers []string
	Payload     map[string]any
	Overrides   map[string]any
}

func (t Trigger) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: trigger id is required", ErrValidation)
	}
	return nil
}

// Subscriber is a Novu notification recipient. Empty optional fields are sent as null.
type Subscriber struct {
	ID        string `json:"subscriberId"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

func (s Subscriber) Validate() error {
	return requireID("subscriber id", s.ID)
}

func requireID(field string, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return nil
}

type triggerRequest struct {
	Name      string         `json:"name"`
	To        []string       `json:"to"`
	Payload   map[string]any `json:"payload"`
	Overrides map[string]any `json:"overrides"`
}

type bulkTriggerRequest struct {
	Events []triggerRequest `json:"events"`
}

type broadcastRequest struct {
	Name      string         `json:"name"`
	Payload   map[string]any `json:"payload"`
	Overrides map[string]any `json:"overrides"`
}

type upsertSubscriberRequest struct {
	SubscriberID string  `json:"subscriberId"`
	Email        *string `json:"email"`
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Phone        *string `json:"phone"`
	Avatar       *string `json:"avatar"`
}

type credentialsRequest struct {
	ProviderID  string         `json:"providerId"`
	Credentials map[string]any `json:"credentials"`
}

func toTriggerRequest(t Trigger) triggerRequest {
	return triggerRequest{
		Name:      t.ID,
		To:        t.Subscribers,
		Payload:   t.Payload,
		Overrides: t.Overrides,
	}
}

func toUpsertSubscriberRequest(s Subscriber) upsertSubscriberRequest {
	return upsertSubscriberRequest{
		SubscriberID: s.ID,
		Email:        nullable(s.Email),
		FirstName:    nullable(s.FirstName),
		LastName:     nullable(s.LastName),
		Phone:        nullable(s.Phone),
		Avatar:       nullable(s.Avatar),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
