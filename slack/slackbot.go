// Package slack exposes the payoff and implied-volatility engine as a Slack
// bot over Socket Mode.
package slack

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/Hari31416/optionalyzer/logging"
)

// Bot owns the Slack client, its Socket Mode connection, and the registered
// command handlers. Commands call the numeric core synchronously, one at a
// time.
type Bot struct {
	client       *slack.Client
	socketClient *socketmode.Client
	handlers     map[string]CommandHandler
	log          zerolog.Logger
}

// NewBot wires a Socket Mode bot. Each handler is registered under
// "/" + Name().
func NewBot(appToken, botToken string, handlers ...CommandHandler) *Bot {
	client := slack.New(
		botToken,
		slack.OptionAppLevelToken(appToken),
	)

	registry := make(map[string]CommandHandler, len(handlers))
	for _, h := range handlers {
		registry["/"+h.Name()] = h
	}

	return &Bot{
		client:       client,
		socketClient: socketmode.New(client),
		handlers:     registry,
		log:          logging.WithComponent("slack"),
	}
}

// Start runs the event loop and blocks until the connection dies.
func (b *Bot) Start() error {
	go func() {
		for evt := range b.socketClient.Events {
			switch evt.Type {
			case socketmode.EventTypeSlashCommand:
				b.socketClient.Ack(*evt.Request)
				b.handle(&evt)
			}
		}
	}()

	return b.socketClient.Run()
}

func (b *Bot) handle(evt *socketmode.Event) {
	data, ok := evt.Data.(slack.SlashCommand)
	if !ok {
		return
	}

	handler, ok := b.handlers[data.Command]
	if !ok {
		b.post(data.ChannelID, fmt.Sprintf("Unknown command %s. Try /help.", data.Command))
		return
	}

	reply, err := handler.Execute(data.Text)
	if err != nil {
		b.log.Warn().Err(err).Str("command", data.Command).Str("args", data.Text).Msg("command failed")
		reply = fmt.Sprintf("%s failed: %v", data.Command, err)
	}
	b.post(data.ChannelID, reply)
}

func (b *Bot) post(channelID, text string) {
	if _, _, err := b.client.PostMessage(channelID, slack.MsgOptionText(text, false)); err != nil {
		b.log.Error().Err(err).Str("channel", channelID).Msg("posting message")
	}
}
