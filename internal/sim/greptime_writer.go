package sim

import (
	"context"
	"log/slog"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"antsim/internal/telemetry"
)

// GreptimeDBWriter writes state and event rows to GreptimeDB via the
// ingester client.
type GreptimeDBWriter struct {
	client greptime.Client
	db     string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer and auto-creates the
// tables if needed.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	ctx := ingesterContext.NewContext(context.Background())
	client, err := greptime.NewClient(ctx, &greptime.Config{
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, err
	}

	stateDDL := `
CREATE TABLE IF NOT EXISTS ` + telemetry.StateTableName + ` (
  colony_id STRING TAG,
  tick BIGINT,
  sim_time DOUBLE,
  population BIGINT,
  storage DOUBLE,
  eggs BIGINT,
  larvae BIGINT,
  pupae BIGINT,
  generation BIGINT,
  deaths BIGINT,
  corpses BIGINT,
  corpses_collected BIGINT,
  termites BIGINT,
  food_nodes BIGINT,
  pheromones BIGINT,
  weather STRING,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='30d')
`
	if _, err := client.SQL(ctx, stateDDL); err != nil {
		return nil, err
	}

	eventDDL := `
CREATE TABLE IF NOT EXISTS ` + telemetry.EventTableName + ` (
  colony_id STRING TAG,
  event_type STRING TAG,
  entity_id STRING,
  detail STRING,
  x DOUBLE,
  y DOUBLE,
  value DOUBLE,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='30d')
`
	if _, err := client.SQL(ctx, eventDDL); err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{client: client, db: database}, nil
}

// WriteState inserts a single state row.
func (w *GreptimeDBWriter) WriteState(row telemetry.ColonyStateRow) error {
	return w.WriteStates([]telemetry.ColonyStateRow{row})
}

// WriteStates inserts multiple state rows.
func (w *GreptimeDBWriter) WriteStates(rows []telemetry.ColonyStateRow) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := ingesterContext.NewContext(context.Background())

	tbl := table.New(telemetry.StateTableName)
	tbl.AddTagColumn("colony_id", types.StringType, 0)
	tbl.AddFieldColumn("tick", types.Int64Type)
	tbl.AddFieldColumn("sim_time", types.Float64Type)
	tbl.AddFieldColumn("population", types.Int64Type)
	tbl.AddFieldColumn("storage", types.Float64Type)
	tbl.AddFieldColumn("eggs", types.Int64Type)
	tbl.AddFieldColumn("larvae", types.Int64Type)
	tbl.AddFieldColumn("pupae", types.Int64Type)
	tbl.AddFieldColumn("generation", types.Int64Type)
	tbl.AddFieldColumn("deaths", types.Int64Type)
	tbl.AddFieldColumn("corpses", types.Int64Type)
	tbl.AddFieldColumn("corpses_collected", types.Int64Type)
	tbl.AddFieldColumn("termites", types.Int64Type)
	tbl.AddFieldColumn("food_nodes", types.Int64Type)
	tbl.AddFieldColumn("pheromones", types.Int64Type)
	tbl.AddFieldColumn("weather", types.StringType)
	tbl.SetTimeIndex("ts", types.TimestampType)

	for _, r := range rows {
		tbl.AppendTagValue("colony_id", r.ColonyID)
		tbl.AppendFieldValue("tick", r.Tick)
		tbl.AppendFieldValue("sim_time", r.SimTime)
		tbl.AppendFieldValue("population", int64(r.Population))
		tbl.AppendFieldValue("storage", r.Storage)
		tbl.AppendFieldValue("eggs", int64(r.Eggs))
		tbl.AppendFieldValue("larvae", int64(r.Larvae))
		tbl.AppendFieldValue("pupae", int64(r.Pupae))
		tbl.AppendFieldValue("generation", int64(r.Generation))
		tbl.AppendFieldValue("deaths", int64(r.Deaths))
		tbl.AppendFieldValue("corpses", int64(r.Corpses))
		tbl.AppendFieldValue("corpses_collected", int64(r.Collected))
		tbl.AppendFieldValue("termites", int64(r.Termites))
		tbl.AppendFieldValue("food_nodes", int64(r.FoodNodes))
		tbl.AppendFieldValue("pheromones", int64(r.Pheromones))
		tbl.AppendFieldValue("weather", r.Weather)
		tbl.AppendTimeIndex(r.Timestamp)
	}

	if err := w.client.Write(ctx, w.db, []*table.Table{tbl}); err != nil {
		slog.Error("greptime state write failed", "err", err)
		return err
	}
	return nil
}

// WriteEvent inserts a single event row.
func (w *GreptimeDBWriter) WriteEvent(ev telemetry.SimEventRow) error {
	return w.WriteEvents([]telemetry.SimEventRow{ev})
}

// WriteEvents inserts multiple event rows.
func (w *GreptimeDBWriter) WriteEvents(rows []telemetry.SimEventRow) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := ingesterContext.NewContext(context.Background())

	tbl := table.New(telemetry.EventTableName)
	tbl.AddTagColumn("colony_id", types.StringType, 0)
	tbl.AddTagColumn("event_type", types.StringType, 0)
	tbl.AddFieldColumn("entity_id", types.StringType)
	tbl.AddFieldColumn("detail", types.StringType)
	tbl.AddFieldColumn("x", types.Float64Type)
	tbl.AddFieldColumn("y", types.Float64Type)
	tbl.AddFieldColumn("value", types.Float64Type)
	tbl.SetTimeIndex("ts", types.TimestampType)

	for _, ev := range rows {
		tbl.AppendTagValue("colony_id", ev.ColonyID)
		tbl.AppendTagValue("event_type", ev.Type)
		tbl.AppendFieldValue("entity_id", ev.EntityID)
		tbl.AppendFieldValue("detail", ev.Detail)
		tbl.AppendFieldValue("x", ev.X)
		tbl.AppendFieldValue("y", ev.Y)
		tbl.AppendFieldValue("value", ev.Value)
		tbl.AppendTimeIndex(ev.Timestamp)
	}

	if err := w.client.Write(ctx, w.db, []*table.Table{tbl}); err != nil {
		slog.Error("greptime event write failed", "err", err)
		return err
	}
	return nil
}
