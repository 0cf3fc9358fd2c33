package slack

// HelpHandler serves /help.
type HelpHandler struct{}

func (h *HelpHandler) Name() string { return "help" }

func (h *HelpHandler) Execute(string) (string, error) {
	return "Available commands:\n" +
		"/help - Show this help message\n" +
		"/payoff <portfolio.json> - Payoff summary for a position file\n" +
		"/iv <chain.json> - ATM implied vols for a chain file\n" +
		"/iv <spot> <strike> <expiry> <observed> <kind> - One-shot implied vol", nil
}
