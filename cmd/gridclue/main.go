package main

import (
	"flag"
	"math/rand"
	"os"
	"strconv"
	"time"

	"gridclue/internal/catalog"
	"gridclue/internal/cli"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// envDefault returns the GRIDCLUE_<key> environment value, or fallback when
// it is unset.
func envDefault(key, fallback string) string {
	if v := os.Getenv("GRIDCLUE_" + key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// 1. Environment first (including a local .env), flags override.
	_ = godotenv.Load()

	logLevel := flag.String("loglevel", envDefault("LOG_LEVEL", "info"), "Set logging level (debug, info, warn, error)")
	deckPath := flag.String("deck", envDefault("DECK", ""), "Path to a JSON card deck (default: the classic deck)")
	seed := flag.Int64("seed", 0, "Random seed for dice and dealing (default: current time)")
	debug := flag.Bool("debug", false, "Shorthand for -loglevel debug")
	flag.Parse()

	// 2. Set up top-level dependencies (Logger)
	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if *debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	// 3. Pick the card deck
	deck := catalog.Default()
	if *deckPath != "" {
		deck, err = catalog.Load(*deckPath)
		if err != nil {
			log.Fatalf("Failed to load deck: %v", err)
		}
	}

	// 4. Seed the dice
	if *seed == 0 {
		if env := os.Getenv("GRIDCLUE_SEED"); env != "" {
			if parsed, err := strconv.ParseInt(env, 10, 64); err == nil {
				*seed = parsed
			}
		}
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Debugf("Using random seed %d", *seed)

	// 5. Create the CLI, injecting the logger, and run
	ui := cli.NewCLI(log)
	randSource := rand.New(rand.NewSource(*seed))
	if err := ui.Run(flag.Args(), deck, randSource); err != nil {
		log.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
}
