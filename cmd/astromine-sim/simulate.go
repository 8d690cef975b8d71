package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"astromine-sim/internal/admin"
	"astromine-sim/internal/catalog"
	"astromine-sim/internal/logging"
	"astromine-sim/internal/sim"
)

var (
	simPrintOnly  bool
	simConfigPath string
	simSchemaPath string
	simTick       time.Duration
	simLogFile    string
	simStateFile  string
	simTUI        bool
	simAdminAddr  string
	simDebug      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the real-time mining ship simulator",
	Long:  "simulate starts the ship simulator, replays any offline gap, and emits event, snapshot and failure rows.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(simDebug)
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
		defer cancel()

		cat, err := catalog.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}

		writer, snapWriter, failWriter, cleanup, err := newWriters(cat, simPrintOnly, simLogFile, simTUI)
		if err != nil {
			return err
		}
		defer cleanup()

		shipID := os.Getenv("SHIP_ID")
		if shipID == "" {
			shipID = "ship-01"
		}

		tickInterval := simTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		simulator := sim.NewSimulator(shipID, cat, writer, snapWriter, failWriter, tickInterval)
		if simStateFile != "" {
			if err := simulator.RestoreStateFile(simStateFile); err != nil {
				return err
			}
		}
		if rows := simulator.CatchUp(time.Now()); len(rows) > 0 {
			log.Info("offline catch-up replayed", "events", len(rows))
		}

		srv := admin.NewServer(simulator)
		go func() {
			log.Info("admin UI listening", "addr", simAdminAddr)
			if err := srv.Start(simAdminAddr); err != nil && err != http.ErrServerClosed {
				log.Error("admin server failed", "error", err)
			}
		}()

		go simulator.Run(ctx)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		cancel()
		if simStateFile != "" {
			if err := simulator.SaveStateFile(simStateFile); err != nil {
				log.Error("state save failed", "error", err)
			}
		}
		log.Info("ship simulation stopped")
		return nil
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print events to STDOUT instead of writing to DB")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/catalog.yaml", "Path to catalog configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/catalog.cue", "Path to CUE schema file")
	simulateCmd.Flags().DurationVar(&simTick, "tick", time.Second, "Simulation tick interval (e.g. 500ms, 2s)")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export event/snapshot/failure logs (JSONL)")
	simulateCmd.Flags().StringVar(&simStateFile, "state-file", "", "Path to persist ship state between runs")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render the simulation in a terminal UI")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin-addr", ":8080", "Listen address for the admin UI")
	simulateCmd.Flags().BoolVar(&simDebug, "debug", false, "Enable debug logging")
}
