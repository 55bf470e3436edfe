package main

import (
	"flag"
	"fmt"
	"os"

	"doanhso/internal/cli"
	"doanhso/internal/core"
	"doanhso/internal/extract"
	"doanhso/internal/grid/xlsx"
	applog "doanhso/internal/log"
)

// doanhso-report sums the sales of a time window straight from an .xlsx
// export, without going through the web UI.
func main() {
	var (
		file  = flag.String("file", "", "path to the .xlsx sales export")
		date  = flag.String("date", "", "date to report on (DD/MM/YYYY); optional when the export covers a single date")
		start = flag.String("start", "", "window start, inclusive (HH:mm)")
		end   = flag.String("end", "", "window end, exclusive (HH:mm)")
	)
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if *file == "" || *start == "" || *end == "" {
		fmt.Fprintln(os.Stderr, "usage: doanhso-report -file report.xlsx -start HH:mm -end HH:mm [-date DD/MM/YYYY]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("Failed to open workbook", applog.FieldError, err)
		os.Exit(1)
	}
	defer f.Close()

	grid, err := xlsx.Decode(f)
	if err != nil {
		logger.Error("Failed to decode workbook", applog.FieldError, err, applog.FieldFilename, *file)
		os.Exit(1)
	}

	snap, err := extract.New(cfg.Labels()).Extract(grid)
	if err != nil {
		logger.Error("Failed to extract transactions", applog.FieldError, err, applog.FieldFilename, *file)
		os.Exit(1)
	}

	target := *date
	if target == "" {
		single, ok := snap.SingleDate()
		if !ok {
			logger.Error("Export covers multiple dates, pass -date to pick one", applog.FieldDates, snap.Dates)
			os.Exit(1)
		}
		target = single
	}

	total, err := core.SumWindow(snap.Transactions, target, *start, *end)
	if err != nil {
		logger.Error("Failed to sum window", applog.FieldError, err)
		os.Exit(1)
	}

	fmt.Printf("%s %s-%s: %.0f VND\n", target, *start, *end, total)
}
