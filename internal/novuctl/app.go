package novuctl

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kursadbilgin/novu-go/internal/observability"
	"github.com/kursadbilgin/novu-go/pkg/novu"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// NewApp builds the novuctl command tree. Results are printed as JSON on the app's
// writer; only validation and transport failures make a command fail.
func NewApp() *cli.App {
	return &cli.App{
		Name:  "novuctl",
		Usage: "trigger Novu workflows and manage subscribers from the shell",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "api-key",
				Usage:    "Novu API key",
				EnvVars:  []string{"NOVU_API_KEY"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "Novu API base URL",
				EnvVars: []string{"NOVU_API_URL"},
				Value:   novu.DefaultBaseURL,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "warn",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per-request timeout, 0 disables it",
				Value: defaultTimeout,
			},
		},
		Commands: []*cli.Command{
			triggerCommand(),
			bulkTriggerCommand(),
			broadcastCommand(),
			cancelCommand(),
			subscriberCommand(),
		},
	}
}

type runFunc func(c *cli.Context, client novu.API) (*novu.Result, error)

// withClient wires a client from the global flags, runs fn and prints its result.
func withClient(fn runFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		logger, err := observability.NewLogger(c.String("log-level"), "novuctl")
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		client, err := novu.New(
			c.String("api-key"),
			novu.WithBaseURL(c.String("api-url")),
			novu.WithTimeout(c.Duration("timeout")),
			novu.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		result, err := fn(c, client)
		if err != nil {
			logger.Debug("command failed", zap.String("command", c.Command.FullName()), zap.Error(err))
			return err
		}

		return writeResult(c.App.Writer, result)
	}
}

func writeResult(w io.Writer, result *novu.Result) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func parseJSONObject(flag string, raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: --%s must be a JSON object: %v", novu.ErrValidation, flag, err)
	}
	return out, nil
}

func requireArg(c *cli.Context, name string) (string, error) {
	value := strings.TrimSpace(c.Args().First())
	if value == "" {
		return "", fmt.Errorf("%w: %s argument is required", novu.ErrValidation, name)
	}
	return value, nil
}
