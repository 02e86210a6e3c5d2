package novuctl

import (
	"github.com/kursadbilgin/novu-go/pkg/novu"
	"github.com/urfave/cli/v2"
)

func subscriberCommand() *cli.Command {
	return &cli.Command{
		Name:  "subscriber",
		Usage: "manage subscriber profiles",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "fetch a subscriber profile",
				ArgsUsage: "<subscriber-id>",
				Action: withClient(func(c *cli.Context, client novu.API) (*novu.Result, error) {
					subscriberID, err := requireArg(c, "subscriber-id")
					if err != nil {
						return nil, err
					}
					return client.GetSubscriber(c.Context, subscriberID)
				}),
			},
			{
				Name:  "upsert",
				Usage: "create or update a subscriber profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "subscriber id", Required: true},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "first-name"},
					&cli.StringFlag{Name: "last-name"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "avatar", Usage: "profile picture URL"},
				},
				Action: withClient(func(c *cli.Context, client novu.API) (*novu.Result, error) {
					return client.UpsertSubscriber(c.Context, novu.Subscriber{
						ID:        c.String("id"),
						Email:     c.String("email"),
						FirstName: c.String("first-name"),
						LastName:  c.String("last-name"),
						Phone:     c.String("phone"),
						Avatar:    c.String("avatar"),
					})
				}),
			},
			{
				Name:      "credentials",
				Usage:     "store provider credentials such as device tokens",
				ArgsUsage: "<subscriber-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "provider", Usage: "provider id, e.g. fcm", Required: true},
					&cli.StringFlag{Name: "credentials", Usage: "JSON object of provider credentials"},
				},
				Action: withClient(func(c *cli.Context, client novu.API) (*novu.Result, error) {
					subscriberID, err := requireArg(c, "subscriber-id")
					if err != nil {
						return nil, err
					}
					providerID, err := novu.ParseProviderID(c.String("provider"))
					if err != nil {
						return nil, err
					}
					credentials, err := parseJSONObject("credentials", c.String("credentials"))
					if err != nil {
						return nil, err
					}
					return client.UpdateSubscriberCredentials(c.Context, subscriberID, providerID, credentials)
				}),
			},
			{
				Name:      "delete",
				Usage:     "delete a subscriber profile",
				ArgsUsage: "<subscriber-id>",
				Action: withClient(func(c *cli.Context, client novu.API) (*novu.Result, error) {
					subscriberID, err := requireArg(c, "subscriber-id")
					if err != nil {
						return nil, err
					}
					return client.DeleteSubscriber(c.Context, subscriberID)
				}),
			},
		},
	}
}
