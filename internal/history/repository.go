//go:build !tinygo

package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/Moshkopp/LuxTempMeter/internal/types"
)

//go:embed sql/insert-reading.sql
var insertReadingSQL string

//go:embed sql/get-latest-readings.sql
var getLatestReadingsSQL string

//go:embed sql/get-missed-total.sql
var getMissedTotalSQL string

// tsLayout has a fixed width so timestamps sort as text.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Repository interface {
	InsertReading(t types.Telemetry) error
	LatestReadings(stationID string, limit int) ([]types.Telemetry, error)
	MissedTotal(stationID string) (int, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) InsertReading(t types.Telemetry) error {
	var seq sql.NullInt64
	if t.Sequence != nil {
		seq = sql.NullInt64{Int64: int64(*t.Sequence), Valid: true}
	}
	_, err := r.db.Exec(insertReadingSQL,
		t.StationID,
		t.Timestamp.UTC().Format(tsLayout),
		seq,
		t.Missed,
		t.RSSI,
		nullFloat(t.Illuminance),
		nullFloat(t.Temperature),
		nullFloat(t.Humidity),
		nullFloat(t.Pressure),
		nullFloat(t.Battery),
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// LatestReadings returns up to limit readings, newest first.
func (r *repositoryImpl) LatestReadings(stationID string, limit int) ([]types.Telemetry, error) {
	rows, err := r.db.Query(getLatestReadingsSQL, stationID, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close latest readings rows", "error", err)
		}
	}()

	var out []types.Telemetry
	for rows.Next() {
		var (
			t                      types.Telemetry
			ts                     string
			seq                    sql.NullInt64
			lux, temp, hum, p, bat sql.NullFloat64
		)
		if err := rows.Scan(&t.StationID, &ts, &seq, &t.Missed, &t.RSSI, &lux, &temp, &hum, &p, &bat); err != nil {
			return nil, err
		}
		t.Timestamp, err = time.Parse(tsLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parse ts %q: %w", ts, err)
		}
		if seq.Valid {
			v := int(seq.Int64)
			t.Sequence = &v
		}
		t.Illuminance = floatPtr(lux)
		t.Temperature = floatPtr(temp)
		t.Humidity = floatPtr(hum)
		t.Pressure = floatPtr(p)
		t.Battery = floatPtr(bat)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) MissedTotal(stationID string) (int, error) {
	var n int
	err := r.db.QueryRow(getMissedTotalSQL, stationID).Scan(&n)
	return n, err
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
