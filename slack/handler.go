package slack

// CommandHandler serves one slash command. Execute receives the raw argument
// text after the command name and returns the reply to post.
type CommandHandler interface {
	Name() string
	Execute(args string) (string, error)
}
