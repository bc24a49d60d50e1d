// Package main provides the route planner CLI: it reads a Little Navmap
// flight plan, plans the transit and low-level phases, and writes the
// processed plan next to the input file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/rs/zerolog"

	"github.com/lowlevel-nav/planner/internal/geomag"
	"github.com/lowlevel-nav/planner/internal/littlenavmap"
	"github.com/lowlevel-nav/planner/internal/performance"
	"github.com/lowlevel-nav/planner/internal/plan"
	"github.com/lowlevel-nav/planner/internal/routeproc"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// declinationEpoch is the decimal year the magnetic bearings are computed
// for, matching the currency of the embedded performance dataset.
const declinationEpoch = 2025.13

func main() {
	fs := flag.NewFlagSet("planner", flag.ExitOnError)
	var (
		input      = fs.String("input", "", "flight plan file (.lnmpln) to process")
		configPath = fs.String("config", "planner.toml", "processor configuration file")
		verbose    = fs.Bool("verbose", false, "print the processed waypoint table")
		debug      = fs.Bool("debug", false, "enable debug logging")
	)
	fs.Int("entry", 0, "low-level entry waypoint index, 1-based (overrides config)")
	fs.Int("exit", 0, "low-level exit waypoint index, 1-based (overrides config)")
	fs.Float64("transit-airspeed", 0, "transit airspeed in knots (overrides config)")
	fs.Float64("route-airspeed", 0, "low-level airspeed in knots (overrides config)")
	fs.Int("route-alt", 0, "low-level route altitude in feet (overrides config)")
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("PLANNER")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("service", "planner").
		Str("version", Version).
		Logger()

	log.Debug().Str("build_time", BuildTime).Msg("starting planner")

	if *input == "" {
		log.Fatal().Msg("no input file given, use -input")
	}

	cfg, err := routeproc.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	applyOverrides(fs, &cfg)

	file, err := littlenavmap.Read(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read flight plan")
	}
	route := file.Route()
	log.Info().
		Str("input", *input).
		Int("waypoints", len(route)).
		Int("entry", cfg.EntryIndex).
		Int("exit", cfg.ExitIndex).
		Msg("flight plan loaded")

	dataset, err := performance.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load performance dataset")
	}

	processor := routeproc.NewProcessor(routeproc.Options{
		Performance: dataset,
		Declinator:  geomag.NewFixed(geomag.NewModel(), declinationEpoch),
		Logger:      log,
	})
	processed, err := processor.ProcessRoute(route, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("route processing failed")
	}

	file.SetRoute(processed)
	outPath := littlenavmap.ProcessedPath(*input)
	if err := file.Write(outPath); err != nil {
		log.Fatal().Err(err).Msg("failed to write processed plan")
	}
	log.Info().Str("output", outPath).Int("waypoints", len(processed)).Msg("processed plan written")

	if *verbose {
		printTable(processed)
	}
}

// applyOverrides copies any flag the user explicitly set, on the command
// line or through the environment, into the stored configuration. Visit only
// reports flags that were set, so a legitimate zero value such as
// -route-alt 0 still overrides.
func applyOverrides(fs *flag.FlagSet, cfg *routeproc.Config) {
	fs.Visit(func(f *flag.Flag) {
		g, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		switch f.Name {
		case "entry":
			cfg.EntryIndex = g.Get().(int)
		case "exit":
			cfg.ExitIndex = g.Get().(int)
		case "transit-airspeed":
			cfg.TransitSpeedKts = g.Get().(float64)
		case "route-airspeed":
			cfg.RouteSpeedKts = g.Get().(float64)
		case "route-alt":
			cfg.RouteAltFt = g.Get().(int)
		}
	})
}

func printTable(wps []plan.Waypoint) {
	fmt.Printf("\n%-14s | %-26s | %-5s | %s\n", "Name", "Ident", "Alt", "Comment")
	fmt.Println(strings.Repeat("-", 70))
	for _, wp := range wps {
		name := wp.Name
		if name == "" {
			name = "-"
		}
		fmt.Printf("%-14s | %-26s | %5d | %s\n", name, wp.Ident, wp.Pos.Alt, wp.Comment)
	}
}
