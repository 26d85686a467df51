package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"veil/internal/relayserver"
	"veil/internal/util/privacylog"
)

type config struct {
	Listen        string   `yaml:"listen"`
	MessageTTL    duration `yaml:"message_ttl"`
	SweepInterval duration `yaml:"sweep_interval"`
	RateRPS       float64  `yaml:"rate_rps"`
	RateBurst     int      `yaml:"rate_burst"`
}

// duration accepts "24h" style values in YAML.
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = duration(parsed)
	return nil
}

func defaults() config {
	return config{
		Listen:        ":8080",
		MessageTTL:    duration(24 * time.Hour),
		SweepInterval: duration(time.Minute),
		RateRPS:       20,
		RateBurst:     40,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func main() {
	var (
		configPath = flag.String("config", "", "path to relay.yaml (optional)")
		listen     = flag.String("listen", "", "listen address (overrides config)")
	)
	flag.Parse()

	log := slog.New(privacylog.Wrap(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Error("config", slog.Any("err", err))
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	store := relayserver.NewMemoryStore(time.Duration(cfg.MessageTTL))
	srv := relayserver.New(store, log, relayserver.Options{
		RateRPS:   cfg.RateRPS,
		RateBurst: cfg.RateBurst,
	})

	stop := make(chan struct{})
	defer close(stop)
	go srv.RunSweeper(stop, time.Duration(cfg.SweepInterval))

	log.Info("relay listening", slog.String("addr", cfg.Listen))
	if err := http.ListenAndServe(cfg.Listen, srv); err != nil {
		log.Error("serve", slog.Any("err", err))
		os.Exit(1)
	}
}
