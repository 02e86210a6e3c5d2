package novuctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kursadbilgin/novu-go/pkg/novu"
	"github.com/urfave/cli/v2"
)

func triggerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "workflow trigger identifier", Required: true},
		&cli.StringFlag{Name: "payload", Usage: "JSON object passed to the workflow"},
		&cli.StringFlag{Name: "overrides", Usage: "JSON object of provider overrides"},
	}
}

func triggerCommand() *cli.Command {
	return &cli.Command{
		Name:  "trigger",
		Usage: "trigger a workflow for the given subscribers",
		Flags: append([]cli.Flag{
			&cli.StringSliceFlag{Name: "to", Usage: "subscriber id, repeatable"},
		}, triggerFlags()...),
		Action: withClient(func(c *cli.Context, client novu.API) (*novu.Result, error) {
			trigger, err := triggerFromFlags(c)
			if err != nil {
				return nil, err
			}
			trigger.Subscribers = c.StringSlice("to")
			return client.TriggerEvent(c.Context, trigger)
		}),
	}
}

func broadcastCommand() *cli.Command {
	return &cli.Command{
		Name:  "broadcast",
		Usage: "trigger a workflow for every subscriber",
		Flags: triggerFlags(),
		Action: withClient(func(c *cli.Context, client novu.API) (*novu.Result, error) {
			trigger, err := triggerFromFlags(c)
			if err != nil {
				return nil, err
			}
			return client.BroadcastEvent(c.Context, trigger)
		}),
	}
}

func cancelCommand() *cli.Command {
	return &cli.Command{
		Name:      "cancel",
		Usage:     "cancel a triggered workflow",
		ArgsUsage: "<transaction-id>",
		Action: withClient(func(c *cli.Context, client novu.API) (*novu.Result, error) {
			transactionID, err := requireArg(c, "transaction-id")
			if err != nil {
				return nil, err
			}
			return client.CancelEvent(c.Context, transactionID)
		}),
	}
}

type eventInput struct {
	Name      string         `json:"name"`
	To        []string       `json:"to"`
	Payload   map[string]any `json:"payload"`
	Overrides map[string]any `json:"overrides"`
}

func bulkTriggerCommand() *cli.Command {
	return &cli.Command{
		Name:  "bulk-trigger",
		Usage: "send several triggers in one request",
		Description: "Reads either a JSON array of events or an object with an \"events\" array.\n" +
			"Each event has name, to, payload and overrides.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "path to the events file, - for stdin", Value: "-"},
		},
		Action: withClient(func(c *cli.Context, client novu.API) (*novu.Result, error) {
			raw, err := readInput(c, c.String("file"))
			if err != nil {
				return nil, err
			}

			events, err := parseEvents(raw)
			if err != nil {
				return nil, err
			}

			triggers := make([]novu.Trigger, 0, len(events))
			for _, e := range events {
				triggers = append(triggers, novu.Trigger{
					ID:          e.Name,
					Subscribers: e.To,
					Payload:     e.Payload,
					Overrides:   e.Overrides,
				})
			}
			return client.BulkTrigger(c.Context, triggers)
		}),
	}
}

func triggerFromFlags(c *cli.Context) (novu.Trigger, error) {
	payload, err := parseJSONObject("payload", c.String("payload"))
	if err != nil {
		return novu.Trigger{}, err
	}
	overrides, err := parseJSONObject("overrides", c.String("overrides"))
	if err != nil {
		return novu.Trigger{}, err
	}

	return novu.Trigger{
		ID:        c.String("name"),
		Payload:   payload,
		Overrides: overrides,
	}, nil
}

func readInput(c *cli.Context, path string) ([]byte, error) {
	if path == "" || path == "-" {
		reader := c.App.Reader
		if reader == nil {
			reader = os.Stdin
		}
		return io.ReadAll(reader)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return raw, nil
}

func parseEvents(raw []byte) ([]eventInput, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no events given", novu.ErrValidation)
	}

	var events []eventInput
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &events); err != nil {
			return nil, fmt.Errorf("%w: invalid events: %v", novu.ErrValidation, err)
		}
	} else {
		var wrapped struct {
			Events []eventInput `json:"events"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: invalid events: %v", novu.ErrValidation, err)
		}
		events = wrapped.Events
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("%w: no events given", novu.ErrValidation)
	}
	return events, nil
}
