package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/config"
	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/logger"
	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/report"
	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/scheduler"
	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/serve"
	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/store"
	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/weather"
)

// Exit codes.
const (
	exitOK        = 0
	exitPipeline  = 1
	exitInputFile = 2
	exitNoCities  = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("weather-data-analyzer", flag.ContinueOnError)
	format := fs.String("format", report.FormatJSON, "output format: json or csv")
	outPath := fs.String("out", "", "output file path (defaults to weather_output.json or weather_output.csv)")
	every := fs.Duration("every", 0, "re-run the pipeline on this interval (0 runs once and exits)")
	serveAddr := fs.String("serve", "", "serve the latest report over HTTP on this address (e.g. :8080)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: weather-data-analyzer <file> [flags]\n\n")
		fmt.Fprintf(fs.Output(), "Reads city names (one per line) and fetches current weather for each.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitInputFile
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitInputFile
	}
	if *format != report.FormatJSON && *format != report.FormatCSV {
		logger.Errorf("invalid format %q: must be json or csv", *format)
		return exitInputFile
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return exitPipeline
	}

	cityFile := fs.Arg(0)
	cities, err := readCityNames(cityFile)
	if err != nil {
		logger.Errorf("could not read file %s: %v", cityFile, err)
		return exitInputFile
	}
	if len(cities) == 0 {
		logger.Errorf("the file %s was read, but no cities were found; please add city names to the file", cityFile)
		return exitNoCities
	}

	path := *outPath
	if path == "" {
		if *format == report.FormatCSV {
			path = cfg.CSVOutput
		} else {
			path = cfg.JSONOutput
		}
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	client := weather.NewClient(httpClient, cfg)
	writer := &report.Writer{Format: *format, Path: path}
	pipeline := weather.NewPipeline(client, writer, cfg.CityPause)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One-shot mode: run the pipeline once and map the outcome to an exit code.
	if *every == 0 && *serveAddr == "" {
		if _, err := pipeline.Run(ctx, cities); err != nil {
			logger.Errorf("something went wrong: %v", err)
			return exitPipeline
		}
		return exitOK
	}

	// Long-running modes: keep the latest report in the store and re-run on
	// a schedule; optionally expose the store over HTTP.
	reports := store.NewReportStore(96)
	job := func() {
		rep, err := pipeline.Run(ctx, cities)
		if err != nil {
			logger.Errorf("pipeline run failed: %v", err)
			return
		}
		reports.Save(rep)
	}
	job()

	interval := *every
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	sched := scheduler.New(interval, job)
	if err := sched.Start(); err != nil {
		logger.Errorf("failed to start scheduler: %v", err)
		return exitPipeline
	}
	defer sched.Stop()

	if *serveAddr != "" {
		srv := serve.New(reports)
		go func() {
			if err := srv.Listen(*serveAddr); err != nil {
				logger.Errorf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("error during shutdown: %v", err)
		}
		return exitOK
	}

	<-ctx.Done()
	return exitOK
}

// readCityNames reads one city name per line, skipping blank lines.
func readCityNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cities []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		city := strings.TrimSpace(scanner.Text())
		if city == "" {
			continue
		}
		cities = append(cities, city)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cities, nil
}
