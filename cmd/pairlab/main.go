package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/yourusername/pairs-trade-lab/pkg/backtest"
)

const (
	appName    = "PairLab"
	appVersion = "1.0.0"
)

var (
	// Command line flags
	configFile = flag.String("config", "./config/pairlab.yaml", "Configuration file path")
	mode       = flag.String("mode", "", "Beta mode: static or dynamic (overrides config)")
	window     = flag.Int("window", -1, "Rolling window (overrides config)")
	outputDir  = flag.String("output", "", "Output directory (overrides config)")
	version    = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Print help and exit")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("%s version %s\n", appName, appVersion)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	printBanner()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("loading configuration", zap.String("path", *configFile))
	config, err := backtest.LoadConfig(*configFile)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// Override with command line flags
	if *mode != "" {
		config.Analysis.Mode = *mode
	}
	if *window >= 0 {
		config.Analysis.Window = *window
	}
	if *outputDir != "" {
		config.Output.ResultDir = *outputDir
	}
	if *mode != "" || *window >= 0 {
		if err := config.Validate(); err != nil {
			logger.Fatal("invalid config after overrides", zap.Error(err))
		}
	}

	printConfigSummary(config)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := backtest.NewRunner(config, logger)
	result, err := runner.Run(ctx)
	if err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}

	if config.Output.GenerateReport {
		reportGen := backtest.NewReportGenerator(config, result, logger)
		if err := reportGen.GenerateMarkdown(); err != nil {
			logger.Error("failed to generate markdown report", zap.Error(err))
		}
		if err := reportGen.GenerateJSON(); err != nil {
			logger.Error("failed to generate JSON report", zap.Error(err))
		}
		if err := reportGen.SavePositions(); err != nil {
			logger.Error("failed to save positions", zap.Error(err))
		}
	}

	if config.Publish.Addr != "" {
		publisher, err := backtest.NewResultPublisher(config.Publish, result.Name, logger)
		if err != nil {
			logger.Error("failed to connect publisher", zap.Error(err))
		} else {
			defer publisher.Close()
			if err := publisher.Publish(result); err != nil {
				logger.Error("failed to publish result", zap.Error(err))
			}
		}
	}

	logger.Info("run completed",
		zap.String("name", result.Name),
		zap.Int("trades", result.Stats.Trades),
		zap.String("total_pnl", result.Stats.TotalPnL.String()))
}

func printBanner() {
	fmt.Println("========================================")
	fmt.Printf("%s v%s\n", appName, appVersion)
	fmt.Println("Pairs Trading Analytics")
	fmt.Println("========================================")
}

func printHelp() {
	fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("\nExamples:")
	fmt.Println("  # Run with config defaults")
	fmt.Println("  ./pairlab -config config/pairlab.yaml")
	fmt.Println()
	fmt.Println("  # Dynamic beta with a 30-bar window")
	fmt.Println("  ./pairlab -config config/pairlab.yaml -mode dynamic -window 30")
	fmt.Println()
}

func printConfigSummary(config *backtest.Config) {
	params := config.ThresholdParams()
	fmt.Println("\n========================================")
	fmt.Println("Configuration Summary")
	fmt.Println("========================================")
	fmt.Printf("Run Name:          %s\n", config.Analysis.Name)
	fmt.Printf("Pair:              %s / %s\n", config.Analysis.Data.SymbolX, config.Analysis.Data.SymbolY)
	fmt.Printf("Beta Mode:         %s\n", config.Analysis.Mode)
	fmt.Printf("Rolling Window:    %d\n", config.Window())
	fmt.Printf("Data Source:       %s\n", config.Analysis.Data.SourceType)
	if config.Analysis.Data.SourceType == "csv" {
		fmt.Printf("Data Path:         %s\n", config.Analysis.Data.DataPath)
	} else {
		fmt.Printf("ClickHouse:        %s (%s.%s)\n",
			config.Analysis.Data.ClickHouse.Addr,
			config.Analysis.Data.ClickHouse.Database,
			config.Analysis.Data.ClickHouse.Table)
	}
	fmt.Printf("Entry/Exit/Stop:   %.2f / %.2f / %.2f\n",
		params.EntryThreshold, params.ExitThreshold, params.StopLoss)
	fmt.Printf("Initial Capital:   %.2f\n", config.Strategy.InitialCapital)
	fmt.Printf("Output Directory:  %s\n", config.Output.ResultDir)
	fmt.Println("========================================")
	fmt.Println()
}
