package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"astromine-sim/internal/events"
)

// GreptimeDBWriter writes simulation rows to GreptimeDB via the ingester client
type GreptimeDBWriter struct {
	client        *greptime.Client
	eventTable    string
	snapshotTable string
	failureTable  string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer. The endpoint is
// host:port for the gRPC ingest port; a bare host defaults to 4001. Tables
// are created automatically on first ingest.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		host, portStr = endpoint, "4001"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid greptimedb port %q: %w", portStr, err)
	}

	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client:        client,
		eventTable:    events.EventTableName,
		snapshotTable: events.SnapshotTableName,
		failureTable:  events.FailureTableName,
	}, nil
}

// Write inserts a single event row.
func (w *GreptimeDBWriter) Write(row events.EventRow) error {
	return w.WriteBatch([]events.EventRow{row})
}

// WriteBatch inserts multiple event rows.
func (w *GreptimeDBWriter) WriteBatch(rows []events.EventRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.eventTable)
	if err != nil {
		return err
	}
	if err := errors.Join(
		tbl.AddTagColumn("ship_id", types.STRING),
		tbl.AddFieldColumn("id", types.INT64),
		tbl.AddFieldColumn("message", types.STRING),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	); err != nil {
		return err
	}
	for _, r := range rows {
		if err := tbl.AddRow(r.ShipID, r.ID, r.Message, r.Time()); err != nil {
			return err
		}
	}
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] event write failed: %v", err)
		return err
	}
	return nil
}

// WriteSnapshot inserts a runtime snapshot row. The nested maps travel as one
// JSON field; the scalar columns stay queryable.
func (w *GreptimeDBWriter) WriteSnapshot(row events.SnapshotRow) error {
	tbl, err := table.New(w.snapshotTable)
	if err != nil {
		return err
	}
	if err := errors.Join(
		tbl.AddTagColumn("ship_id", types.STRING),
		tbl.AddTagColumn("sector_id", types.STRING),
		tbl.AddFieldColumn("credits", types.FLOAT64),
		tbl.AddFieldColumn("energy", types.FLOAT64),
		tbl.AddFieldColumn("max_energy", types.FLOAT64),
		tbl.AddFieldColumn("charging", types.BOOLEAN),
		tbl.AddFieldColumn("world_remaining", types.INT64),
		tbl.AddFieldColumn("failure_count", types.INT64),
		tbl.AddFieldColumn("state", types.STRING),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	); err != nil {
		return err
	}
	if err := tbl.AddRow(
		row.ShipID,
		row.SectorID,
		row.Credits,
		row.Energy,
		row.MaxEnergy,
		row.Charging,
		int64(row.WorldRemaining),
		int64(row.FailureCount),
		snapshotJSON(row),
		row.Timestamp,
	); err != nil {
		return err
	}
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] snapshot write failed: %v", err)
		return err
	}
	return nil
}

func snapshotJSON(row events.SnapshotRow) string {
	data, err := json.Marshal(row)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// WriteFailure inserts a single failure report row.
func (w *GreptimeDBWriter) WriteFailure(row events.FailureReportRow) error {
	return w.WriteFailures([]events.FailureReportRow{row})
}

// WriteFailures inserts multiple failure report rows.
func (w *GreptimeDBWriter) WriteFailures(rows []events.FailureReportRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.failureTable)
	if err != nil {
		return err
	}
	if err := errors.Join(
		tbl.AddTagColumn("ship_id", types.STRING),
		tbl.AddTagColumn("reason", types.STRING),
		tbl.AddFieldColumn("repair_count", types.INT64),
		tbl.AddFieldColumn("credits_penalty", types.FLOAT64),
		tbl.AddFieldColumn("energy_penalty", types.FLOAT64),
		tbl.AddFieldColumn("had_material_shortage", types.BOOLEAN),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	); err != nil {
		return err
	}
	for _, r := range rows {
		if err := tbl.AddRow(
			r.ShipID,
			r.Reason,
			int64(r.RepairCount),
			r.CreditsPenalty,
			r.EnergyPenalty,
			r.HadMaterialShortage,
			time.UnixMilli(r.TimestampMS).UTC(),
		); err != nil {
			return err
		}
	}
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] failure write failed: %v", err)
		return err
	}
	return nil
}
