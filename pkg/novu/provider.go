package novu

import (
	"fmt"
	"strings"
)

// ProviderID identifies a Novu integration that stores per-subscriber credentials.
type ProviderID string

const (
	ProviderAPN              ProviderID = "apn"
	ProviderExpo             ProviderID = "expo"
	ProviderFCM              ProviderID = "fcm"
	ProviderOneSignal        ProviderID = "one-signal"
	ProviderPushpad          ProviderID = "pushpad"
	ProviderPushWebhook      ProviderID = "push-webhook"
	ProviderSlack            ProviderID = "slack"
	ProviderDiscord          ProviderID = "discord"
	ProviderMSTeams          ProviderID = "msteams"
	ProviderMattermost       ProviderID = "mattermost"
	ProviderRyver            ProviderID = "ryver"
	ProviderZulip            ProviderID = "zulip"
	ProviderGrafanaOnCall    ProviderID = "grafana-on-call"
	ProviderGetStream        ProviderID = "getstream"
	ProviderWhatsAppBusiness ProviderID = "whatsapp-business"
)

// ChannelType is the delivery channel an integration belongs to.
type ChannelType string

const (
	ChannelPush ChannelType = "push"
	ChannelChat ChannelType = "chat"
)

func (c ChannelType) String() string { return string(c) }

var providerChannels = map[ProviderID]ChannelType{
	ProviderAPN:              ChannelPush,
	ProviderExpo:             ChannelPush,
	ProviderFCM:              ChannelPush,
	ProviderOneSignal:        ChannelPush,
	ProviderPushpad:          ChannelPush,
	ProviderPushWebhook:      ChannelPush,
	ProviderSlack:            ChannelChat,
	ProviderDiscord:          ChannelChat,
	ProviderMSTeams:          ChannelChat,
	ProviderMattermost:       ChannelChat,
	ProviderRyver:            ChannelChat,
	ProviderZulip:            ChannelChat,
	ProviderGrafanaOnCall:    ChannelChat,
	ProviderGetStream:        ChannelChat,
	ProviderWhatsAppBusiness: ChannelChat,
}

func (p ProviderID) String() string { return string(p) }

func (p ProviderID) IsValid() bool {
	_, ok := providerChannels[p]
	return ok
}

// Channel returns the channel of a known provider, or "" for unknown ones.
func (p ProviderID) Channel() ChannelType {
	return providerChannels[p]
}

func ParseProviderID(s string) (ProviderID, error) {
	p := ProviderID(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: unknown provider %q", ErrValidation, s)
	}
	return p, nil
}
