package main

// Interactive console for the incremental search engine. Each line typed is
// fed through the debounce / epoch pipeline exactly as a client keystroke
// stream would be; selecting a suggestion runs the dependent weather fetch.

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sprintingbug/agricheck/internal/config"
	"github.com/sprintingbug/agricheck/internal/geocode"
	"github.com/sprintingbug/agricheck/internal/search"
	"github.com/sprintingbug/agricheck/internal/weather"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Upstream.APIKey == "" {
		logger.Fatal("UPSTREAM_API_KEY must be set")
	}

	controller := search.NewController(
		geocode.NewClient(cfg.Upstream, cfg.Search.SuggestLimit),
		weather.NewClient(cfg.Upstream),
		cfg.Search,
		logger,
	)
	defer controller.Close()

	controller.SetOnChange(printState)
	controller.Start()

	fmt.Println("Type a place name to search. Commands: :select <n>, :submit <key>, :refresh, :quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == ":quit":
			return
		case line == ":refresh":
			controller.OnRefresh()
		case strings.HasPrefix(line, ":select "):
			n, err := strconv.Atoi(strings.TrimPrefix(line, ":select "))
			state := controller.Snapshot()
			if err != nil || n < 1 || n > len(state.Suggestions) {
				fmt.Println("no such suggestion")
				continue
			}
			controller.OnSuggestionSelected(state.Suggestions[n-1])
		case strings.HasPrefix(line, ":submit "):
			controller.OnSearchSubmitted(strings.TrimPrefix(line, ":submit "))
		default:
			controller.OnTextChanged(line)
		}
	}
}

func printState(state search.State) {
	if state.SuggestionsVisible {
		for i, record := range state.Suggestions {
			fmt.Printf("  %d. %s\n", i+1, record.DisplayLabel())
		}
	}

	switch state.Primary.Status {
	case search.PrimaryLoading:
		fmt.Printf("[%s] loading...\n", state.PrimaryKey)
	case search.PrimaryReady:
		r := state.Primary.Report
		fmt.Printf("[%s] %.1f°C, %.0f%% humidity, %s\n", r.Location, r.TempC, r.HumidityPct, r.Description)
	case search.PrimaryFailed:
		fmt.Printf("[%s] failed: %s (:refresh to retry)\n", state.PrimaryKey, state.Primary.Err)
	}
}
