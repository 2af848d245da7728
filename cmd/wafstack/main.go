package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"wafstack/config"
	"wafstack/logging"
	"wafstack/outputs"
	"wafstack/server"
	"wafstack/stack"
)

// Dependency injection composition root
func main() {
	logLevel := flag.String("loglevel", "info", "sets log level. Can be one of: debug, info, warn, error, fatal, panic.")
	configPath := flag.String("config", "", "path to the YAML configuration file")
	outPath := flag.String("out", "", "if set, write the generated plan JSON to this file instead of stdout")
	listenAddr := flag.String("listen", "", "if set, serve the generation API on this address instead of running one-shot")
	flag.Parse()

	loglevel, _ := zerolog.ParseLevel(*logLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(loglevel).With().Timestamp().Logger()

	if *listenAddr != "" {
		s := server.NewServer(logger)
		logger.Info().Str("addr", *listenAddr).Msg("Serving generation API")
		if err := http.ListenAndServe(*listenAddr, s.Routes()); err != nil {
			logger.Fatal().Err(err).Msg("Error while serving generation API")
		}
		return
	}

	if *configPath == "" {
		logger.Fatal().Msg("Either -config or -listen must be given")
	}

	cfg, err := config.LoadYAML(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while loading configuration")
	}

	plan := stack.Materialize(logger, cfg)
	out := outputs.Aggregate(cfg, plan)
	logging.NewZerologPlanLogger(logger).PlanGenerated(plan, out)

	doc := struct {
		Plan    *stack.Plan     `json:"plan"`
		Outputs outputs.Outputs `json:"outputs"`
	}{plan, out}

	bb, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while marshaling plan document")
	}
	bb = append(bb, '\n')

	if *outPath != "" {
		if err := os.WriteFile(*outPath, bb, 0644); err != nil {
			logger.Fatal().Err(err).Msg("Error while writing plan document")
		}
		return
	}

	if _, err := os.Stdout.Write(bb); err != nil {
		logger.Fatal().Err(err).Msg("Error while writing plan document")
	}
}
