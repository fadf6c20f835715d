package telemetry

import (
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/milk9111/spacebattle/battle"
	"github.com/milk9111/spacebattle/ecs/system"
	"github.com/rs/zerolog"
)

// InfluxSink writes periodic population and event totals to InfluxDB
// through the client's non-blocking write API.
type InfluxSink struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPI
	logger zerolog.Logger
}

func NewInfluxSink(url, token, org, bucket string, logger zerolog.Logger) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)
	s := &InfluxSink{
		client: client,
		writer: client.WriteAPI(org, bucket),
		logger: logger.With().Str("bucket", bucket).Logger(),
	}

	errorsCh := s.writer.Errors()
	go func() {
		for err := range errorsCh {
			s.logger.Error().Err(err).Msg("Error sending data to InfluxDB")
		}
	}()

	s.logger.Info().Str("url", url).Msg("InfluxDB writer initialized")
	return s
}

// Write queues one population point per kind and team plus a totals point.
func (s *InfluxSink) Write(scenario string, at time.Time, simTime float64, pop map[battle.PopulationKey]int, totals system.Counters) {
	for _, p := range Points(scenario, at, simTime, pop, totals) {
		s.writer.WritePoint(p)
	}
}

// Close flushes pending points and releases the client.
func (s *InfluxSink) Close() {
	s.writer.Flush()
	s.client.Close()
}

// Points builds the line protocol points written by InfluxSink.
func Points(scenario string, at time.Time, simTime float64, pop map[battle.PopulationKey]int, totals system.Counters) []*influxdb2_write.Point {
	points := make([]*influxdb2_write.Point, 0, len(pop)+1)
	for key, n := range pop {
		points = append(points, influxdb2.NewPoint("population",
			map[string]string{
				"scenario": scenario,
				"kind":     key.Kind.String(),
				"team":     key.Team.String(),
			},
			map[string]interface{}{
				"count":    n,
				"sim_time": simTime,
			},
			at,
		))
	}
	points = append(points, influxdb2.NewPoint("events",
		map[string]string{"scenario": scenario},
		map[string]interface{}{
			"spawned":  totals.Spawned,
			"fired":    totals.Fired,
			"hits":     totals.Hits,
			"expired":  totals.Expired,
			"sim_time": simTime,
		},
		at,
	))
	return points
}
