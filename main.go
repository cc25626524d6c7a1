// Command nav.report analyzes recorded player-movement telemetry. It
// loads a nav.json session, computes movement statistics and attention
// clusters, prints a report, and can export heatmap data, archive runs to
// sqlite, serve results over HTTP, and re-run the pipeline whenever the
// telemetry file changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/nav.report/internal/api"
	"github.com/banshee-data/nav.report/internal/config"
	"github.com/banshee-data/nav.report/internal/db"
	"github.com/banshee-data/nav.report/internal/fsutil"
	"github.com/banshee-data/nav.report/internal/heatmap"
	"github.com/banshee-data/nav.report/internal/nav"
	"github.com/banshee-data/nav.report/internal/navlog"
	"github.com/banshee-data/nav.report/internal/report"
	"github.com/banshee-data/nav.report/internal/units"
	"github.com/banshee-data/nav.report/internal/version"
	"github.com/banshee-data/nav.report/internal/watch"
)

var (
	navFile       = flag.String("file", "nav.json", "Navigation JSON file")
	configPath    = flag.String("config", "", "Optional analyzer config JSON file")
	unitsFlag     = flag.String("units", "", "Speed units for the report (ups, mph, kmph, kph)")
	exportHeatmap = flag.Bool("export-heatmap", false, "Export heatmap data after each analysis")
	heatmapOut    = flag.String("heatmap-out", "heatmap_data.json", "Heatmap export path")
	speedPlot     = flag.String("speed-plot", "", "Write a speed-over-time PNG to this path")
	watchFlag     = flag.Bool("watch", false, "Watch for file changes and re-run the analysis")
	listen        = flag.String("listen", "", "Optional HTTP listen address (e.g. :8080)")
	dbFile        = flag.String("db", "", "Optional sqlite archive for analysis runs")
	showVersion   = flag.Bool("version", false, "Print version and exit")
)

// pipeline bundles everything one analysis run needs. All state is
// rebuilt from the file on every invocation; only the result store and
// the archive carry anything across runs.
type pipeline struct {
	fsys      fsutil.FileSystem
	cfg       *config.AnalyzerConfig
	store     *api.ResultStore
	archive   *db.DB // nil when -db is unset
	formatter *report.Formatter
}

// run executes one full analysis pass: load, analyze, report, export.
// Load failures are returned; an insufficient-data analysis is a
// reportable outcome, not an error.
func (p *pipeline) run() error {
	navLog, err := navlog.Load(p.fsys, *navFile)
	if err != nil {
		return err
	}

	params := nav.ClusterParams{
		Radius:         p.cfg.GetClusterRadius(),
		DwellIncrement: p.cfg.GetDwellIncrement(),
		TopK:           p.cfg.GetTopK(),
	}

	result, analysisErr := nav.Analyze(
		navLog.Positions,
		navLog.Statistics.MinBounds,
		navLog.Statistics.MaxBounds,
		params,
	)
	p.store.Set(navLog, result, analysisErr)

	if err := p.formatter.Write(os.Stdout, navLog, result, analysisErr); err != nil {
		log.Printf("failed to write report: %v", err)
	}

	if result != nil && p.archive != nil {
		runID, err := p.archive.RecordAnalysis(*navFile, navLog, result)
		if err != nil {
			log.Printf("failed to archive run: %v", err)
		} else {
			log.Printf("archived analysis run %s", runID)
		}
	}

	if *exportHeatmap {
		if err := heatmap.ExportJSON(p.fsys, navLog, *heatmapOut); err != nil {
			log.Printf("failed to export heatmap: %v", err)
		} else {
			log.Printf("heatmap data exported to %s", *heatmapOut)
		}
	}

	if *speedPlot != "" {
		if err := report.WriteSpeedPlot(navLog.Positions, *speedPlot); err != nil {
			log.Printf("failed to write speed plot: %v", err)
		} else {
			log.Printf("speed plot written to %s", *speedPlot)
		}
	}

	return nil
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg := config.EmptyAnalyzerConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAnalyzerConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	speedUnits := cfg.GetUnits()
	if *unitsFlag != "" {
		if !units.IsValid(*unitsFlag) {
			log.Fatalf("invalid units %q, expected one of %s", *unitsFlag, units.GetValidUnitsString())
		}
		speedUnits = *unitsFlag
	}

	var archive *db.DB
	if *dbFile != "" {
		var err error
		archive, err = db.NewDB(*dbFile)
		if err != nil {
			log.Fatalf("failed to open archive database: %v", err)
		}
		defer archive.Close()
	}

	p := &pipeline{
		fsys:      fsutil.OSFileSystem{},
		cfg:       cfg,
		store:     api.NewResultStore(),
		archive:   archive,
		formatter: report.NewFormatter(speedUnits),
	}

	if err := p.run(); err != nil {
		// In watch mode a missing or half-written file is expected; the
		// next poll will pick it up. One-shot runs have nothing to wait for.
		if !*watchFlag {
			log.Fatalf("analysis failed: %v", err)
		}
		log.Printf("analysis failed, waiting for file changes: %v", err)
	}

	if !*watchFlag && *listen == "" {
		return
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *watchFlag {
		watcher := watch.New(p.fsys, *navFile, cfg.GetPollInterval(), func() {
			if err := p.run(); err != nil {
				log.Printf("analysis failed: %v", err)
			}
		})

		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Printf("watching %s for changes", *navFile)
			if err := watcher.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("watcher terminated: %v", err)
			}
			log.Print("watch routine terminated")
		}()
	}

	if *listen != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()

			mux := http.NewServeMux()
			apiMux := api.NewServer(p.store, archive, speedUnits).ServeMux()
			mux.Handle("/api/", http.StripPrefix("/api", apiMux))
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintln(w, version.String())
				fmt.Fprintln(w, "endpoints: /api/analysis /api/report /api/heatmap /api/runs")
			})

			server := &http.Server{
				Addr:    *listen,
				Handler: mux,
			}

			go func() {
				log.Printf("HTTP server listening on %s", *listen)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}()

			<-ctx.Done()
			log.Println("shutting down HTTP server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Printf("HTTP server shutdown error: %v", err)
			}
		}()
	}

	wg.Wait()
}
