// Command emf-export downloads one open data export to disk, the same file a browser
// would save from the dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"emfmonitor/backend/libs/logging"
	"emfmonitor/backend/services/dashboard/internal/clients"
	"emfmonitor/backend/services/dashboard/internal/config"
	"emfmonitor/backend/services/dashboard/internal/gateway"
	"emfmonitor/backend/services/dashboard/internal/models"
)

func main() {
	var (
		format   = flag.String("format", "json", "export format: json, csv or xlsx")
		dataType = flag.String("data-type", "", "data set: measurements, continuous or campaign")
		region   = flag.String("region", "", "region filter")
		from     = flag.String("from", "", "start date (YYYY-MM-DD or RFC 3339)")
		to       = flag.String("to", "", "end date (YYYY-MM-DD or RFC 3339)")
		level    = flag.String("level", "", "level filter: low, medium, high")
		out      = flag.String("out", ".", "output directory")
	)
	flag.Parse()

	if err := run(*format, *out, url.Values{
		"dataType": {*dataType},
		"region":   {*region},
		"from":     {*from},
		"to":       {*to},
		"level":    {*level},
	}); err != nil {
		fmt.Fprintln(os.Stderr, "emf-export:", err)
		os.Exit(1)
	}
}

func run(rawFormat, outDir string, query url.Values) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	format, err := models.ParseExportFormat(rawFormat)
	if err != nil {
		return err
	}
	filters, err := models.FiltersFromQuery(query)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger("emf-export")
	if err != nil {
		return err
	}
	defer logger.Sync()

	gw, err := gateway.New(gateway.Options{
		UseSynthetic: cfg.Source.UseSynthetic,
		BaseURL:      cfg.Source.APIURL,
		HTTPClient:   clients.NewDefaultHTTPClient(cfg.HTTPTimeout()),
		Seed:         cfg.Source.Seed,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	sink := &gateway.DirSink{Dir: outDir}
	gw.ExportData(ctx, format, filters, sink)
	if sink.Saved == "" {
		return gateway.ErrNothingSaved
	}
	logger.Info("export saved", zap.String("path", sink.Saved), zap.String("source", cfg.SourceName()))
	fmt.Println(sink.Saved)
	return nil
}
