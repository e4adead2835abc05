// backsim - event-driven bar backtester for intraday equity strategies.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"backsim/internal/engine"
	"backsim/internal/marketdata"
	"backsim/internal/repository"
	"backsim/strategies"
	"backsim/types"

	"github.com/spf13/cobra"
)

var (
	configPath string
	csvFile    string
	dbURL      string
	ticker     string
	startDate  string
	endDate    string
	outputDir  string
	showProg   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "backsim",
		Short: "Bar-by-bar strategy backtester",
		Long: `backsim replays historical bars through a signal generator and an
order simulator, tracking positions, costs and PnL, and prints a
performance report at the end of the run.`,
		RunE:          runBacktest,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to YAML config file")
	rootCmd.Flags().StringVar(&csvFile, "csv", "", "Bar CSV file (overrides data.csv_file)")
	rootCmd.Flags().StringVar(&dbURL, "db-url", "", "Postgres URL; load bars from the bars table instead of CSV")
	rootCmd.Flags().StringVar(&ticker, "ticker", "", "Ticker to load when using --db-url")
	rootCmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD) when using --db-url")
	rootCmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD) when using --db-url")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for trade/equity CSV reports (overrides reporting.output_dir)")
	rootCmd.Flags().BoolVar(&showProg, "progress", true, "Show a progress bar during the run")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if csvFile != "" {
		cfg.Data.CSVFile = csvFile
	}
	if outputDir != "" {
		cfg.Reporting.OutputDir = outputDir
	}

	bars, err := loadBars(cmd, cfg)
	if err != nil {
		return err
	}

	decisionBars, err := marketdata.Resample(bars, types.Interval(cfg.Data.Timeframe))
	if err != nil {
		return err
	}

	gen, err := strategies.New(cfg.Strategy)
	if err != nil {
		return err
	}

	runner, err := engine.NewRunner(decisionBars, bars, gen, cfg)
	if err != nil {
		return err
	}
	if showProg {
		runner.ShowProgress()
	}

	res, err := runner.Run()
	if err != nil {
		return err
	}

	engine.PrintReport(res)
	return writeReports(cfg, res)
}

func loadBars(cmd *cobra.Command, cfg *engine.Config) ([]types.Bar, error) {
	if dbURL == "" {
		if cfg.Data.CSVFile == "" {
			return nil, fmt.Errorf("no bar source: set data.csv_file or pass --csv or --db-url")
		}
		return marketdata.LoadCSV(cfg.Data.CSVFile, cfg.Data.SpreadPct)
	}

	if ticker == "" {
		return nil, fmt.Errorf("--ticker is required with --db-url")
	}
	start, err := parseDate(startDate, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("parse --start: %w", err)
	}
	end, err := parseDate(endDate, time.Now())
	if err != nil {
		return nil, fmt.Errorf("parse --end: %w", err)
	}

	db, err := repository.NewDatabase(dbURL)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.GetBars(ticker, start, end, cmd.Context())
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", s)
}

func writeReports(cfg *engine.Config, res *engine.Result) error {
	if cfg.Reporting.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.Reporting.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	name := cfg.Reporting.ReportName
	if name == "" {
		name = "backtest"
	}
	tradesPath := filepath.Join(cfg.Reporting.OutputDir, name+"_trades.csv")
	if err := engine.WriteTradesCSVFile(tradesPath, res.Trades); err != nil {
		return err
	}
	equityPath := filepath.Join(cfg.Reporting.OutputDir, name+"_equity.csv")
	if err := engine.WriteEquityCSVFile(equityPath, res.Equity); err != nil {
		return err
	}
	fmt.Printf("Reports written to %s\n", cfg.Reporting.OutputDir)
	return nil
}
