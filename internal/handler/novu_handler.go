package handler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/novu-go/pkg/novu"
)

// NovuHandler relays gateway requests to Novu and answers with the normalized result,
// using Novu's status code as the HTTP status.
type NovuHandler struct {
	client novu.API
}

func NewNovuHandler(client novu.API) (*NovuHandler, error) {
	if client == nil {
		return nil, fmt.Errorf("novu client is required")
	}
	return &NovuHandler{client: client}, nil
}

func RegisterNovuRoutes(router fiber.Router, client novu.API) error {
	h, err := NewNovuHandler(client)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/events/trigger", h.TriggerEvent)
	v1.Post("/events/trigger/bulk", h.BulkTrigger)
	v1.Post("/events/trigger/broadcast", h.BroadcastEvent)
	v1.Delete("/events/trigger/:transactionId", h.CancelEvent)
	v1.Get("/subscribers/:subscriberId", h.GetSubscriber)
	v1.Post("/subscribers", h.UpsertSubscriber)
	v1.Put("/subscribers/:subscriberId/credentials", h.UpdateSubscriberCredentials)
	v1.Delete("/subscribers/:subscriberId", h.DeleteSubscriber)

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

type upsertSubscriberRequest struct {
	SubscriberID string `json:"subscriberId"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Avatar       string `json:"avatar"`
}

type credentialsRequest struct {
	ProviderID  string         `json:"providerId"`
	Credentials map[string]any `json:"credentials"`
}

func (h *NovuHandler) TriggerEvent(c *fiber.Ctx) error {
	var req triggerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.client.TriggerEvent(c.UserContext(), req.toTrigger())
	return respond(c, result, err)
}

func (h *NovuHandler) BulkTrigger(c *fiber.Ctx) error {
	var req bulkTriggerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Events) == 0 {
		return toHTTPError(fmt.Errorf("%w: events is required", novu.ErrValidation))
	}

	triggers := make([]novu.Trigger, 0, len(req.Events))
	for _, event := range req.Events {
		triggers = append(triggers, event.toTrigger())
	}

	result, err := h.client.BulkTrigger(c.UserContext(), triggers)
	return respond(c, result, err)
}

func (h *NovuHandler) BroadcastEvent(c *fiber.Ctx) error {
	var req triggerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.client.BroadcastEvent(c.UserContext(), req.toTrigger())
	return respond(c, result, err)
}

func (h *NovuHandler) CancelEvent(c *fiber.Ctx) error {
	transactionID, err := pathParam(c, "transactionId")
	if err != nil {
		return err
	}

	result, err := h.client.CancelEvent(c.UserContext(), transactionID)
	return respond(c, result, err)
}

func (h *NovuHandler) GetSubscriber(c *fiber.Ctx) error {
	subscriberID, err := pathParam(c, "subscriberId")
	if err != nil {
		return err
	}

	result, err := h.client.GetSubscriber(c.UserContext(), subscriberID)
	return respond(c, result, err)
}

func (h *NovuHandler) UpsertSubscriber(c *fiber.Ctx) error {
	var req upsertSubscriberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.client.UpsertSubscriber(c.UserContext(), novu.Subscriber{
		ID:        strings.TrimSpace(req.SubscriberID),
		Email:     strings.TrimSpace(req.Email),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
		Avatar:    strings.TrimSpace(req.Avatar),
	})
	return respond(c, result, err)
}

func (h *NovuHandler) UpdateSubscriberCredentials(c *fiber.Ctx) error {
	subscriberID, err := pathParam(c, "subscriberId")
	if err != nil {
		return err
	}

	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	providerID, err := novu.ParseProviderID(req.ProviderID)
	if err != nil {
		return toHTTPError(err)
	}

	result, err := h.client.UpdateSubscriberCredentials(
		c.UserContext(),
		subscriberID,
		providerID,
		req.Credentials,
	)
	return respond(c, result, err)
}

func (h *NovuHandler) DeleteSubscriber(c *fiber.Ctx) error {
	subscriberID, err := pathParam(c, "subscriberId")
	if err != nil {
		return err
	}

	result, err := h.client.DeleteSubscriber(c.UserContext(), subscriberID)
	return respond(c, result, err)
}

func (r triggerRequest) toTrigger() novu.Trigger {
	return novu.Trigger{
		ID:          strings.TrimSpace(r.Name),
		Subscribers: r.To,
		Payload:     r.Payload,
		Overrides:   r.Overrides,
	}
}

// pathParam returns the decoded route parameter. Fiber keeps params percent-encoded and
// the client escapes ids itself.
func pathParam(c *fiber.Ctx, name string) (string, error) {
	value, err := url.PathUnescape(c.Params(name))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid %s", name))
	}
	return strings.TrimSpace(value), nil
}

func respond(c *fiber.Ctx, result *novu.Result, err error) error {
	if err != nil {
		return toHTTPError(err)
	}
	if result == nil {
		return fiber.NewError(fiber.StatusBadGateway, "novu returned no result")
	}
	return c.Status(result.StatusCode).JSON(result)
}

func toHTTPError(err error) error {
	var reqErr *novu.RequestError
	switch {
	case errors.Is(err, novu.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case novu.IsTimeout(err):
		return fiber.NewError(fiber.StatusGatewayTimeout, err.Error())
	case errors.As(err, &reqErr):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return err
	}
}
