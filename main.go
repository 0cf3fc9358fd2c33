package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/xhhuango/json"

	"github.com/Hari31416/optionalyzer/chain"
	"github.com/Hari31416/optionalyzer/chart"
	"github.com/Hari31416/optionalyzer/config"
	"github.com/Hari31416/optionalyzer/logging"
	"github.com/Hari31416/optionalyzer/options"
	"github.com/Hari31416/optionalyzer/portfolio"
	"github.com/Hari31416/optionalyzer/slack"
)

func main() {
	var (
		configPath    = flag.String("config", "", "directory holding config.yaml")
		portfolioPath = flag.String("portfolio", "", "portfolio position file (JSON)")
		chainPath     = flag.String("chain", "", "option chain file (JSON)")
		outPath       = flag.String("out", "payoff.json", "output file for payoff or IV results")
	)
	flag.Parse()

	// Missing .env is fine; Slack tokens can come from the real environment.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	options.SetRiskFreeRate(cfg.Market.RiskFreeRate)

	switch {
	case cfg.Slack.Enabled:
		runSlack(cfg)
	case *portfolioPath != "":
		runPayoff(cfg, *portfolioPath, *outPath)
	case *chainPath != "":
		runChain(cfg, *chainPath, *outPath)
	default:
		fmt.Fprintln(os.Stderr, "nothing to do: pass -portfolio or -chain, or enable slack in config")
		flag.Usage()
		os.Exit(2)
	}
}

func runPayoff(cfg *config.Config, path, outPath string) {
	p, err := portfolio.LoadJSON(path, cfg.Dates.Layout)
	if err != nil {
		log.Fatal().Err(err).Msg("loading portfolio")
	}
	if err := p.SetLotSize(cfg.Market.LotSize); err != nil {
		log.Fatal().Err(err).Msg("applying lot size")
	}

	payoff, err := p.PayoffCurve(portfolio.PayoffRequest{
		Samples:       cfg.Payoff.Samples,
		RangeFraction: cfg.Payoff.RangeFraction,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("building payoff curve")
	}

	if err := chart.Render(os.Stdout, payoff); err != nil {
		log.Fatal().Err(err).Msg("rendering payoff")
	}
	if err := chart.WriteJSON(outPath, payoff); err != nil {
		log.Fatal().Err(err).Msg("exporting payoff")
	}
	log.Info().Str("file", outPath).Msg("payoff written")
}

func runChain(cfg *config.Config, path, outPath string) {
	ch, err := chain.LoadJSON(path)
	if err != nil {
		log.Fatal().Err(err).Msg("loading chain")
	}

	ivs, err := chain.ImpliedVolatilities(ch, cfg.Market.RiskFreeRate, time.Time{}, cfg.Dates.Layout)
	if err != nil {
		log.Fatal().Err(err).Msg("solving chain implied vols")
	}

	raw, err := json.MarshalIndent(ivs, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("marshaling implied vols")
	}
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		log.Fatal().Err(err).Msg("writing implied vols")
	}
	log.Info().Str("file", outPath).Int("rows", len(ivs)).Msg("implied vols written")
}

func runSlack(cfg *config.Config) {
	appToken := os.Getenv("SLACK_APP_TOKEN")
	botToken := os.Getenv("SLACK_BOT_TOKEN")
	if appToken == "" || botToken == "" {
		log.Fatal().Msg("slack enabled but SLACK_APP_TOKEN or SLACK_BOT_TOKEN is unset")
	}

	bot := slack.NewBot(appToken, botToken,
		&slack.HelpHandler{},
		&slack.PayoffHandler{
			Layout:        cfg.Dates.Layout,
			LotSize:       cfg.Market.LotSize,
			Samples:       cfg.Payoff.Samples,
			RangeFraction: cfg.Payoff.RangeFraction,
		},
		&slack.IVHandler{
			Layout:       cfg.Dates.Layout,
			RiskFreeRate: cfg.Market.RiskFreeRate,
		},
	)

	log.Info().Msg("starting slack bot")
	if err := bot.Start(); err != nil {
		log.Fatal().Err(err).Msg("slack bot stopped")
	}
}
