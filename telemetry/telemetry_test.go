package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/milk9111/spacebattle/battle"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/ecs/system"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestMetricsPopulation(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	m.Add(system.Counters{Spawned: 3, Fired: 2})
	m.Add(system.Counters{})

	pop := map[battle.PopulationKey]int{
		{Kind: battle.KindShip, Team: component.TeamRed}:  10,
		{Kind: battle.KindLaser, Team: component.TeamRed}: 4,
	}
	m.ObservePopulation(pop)
	pop[battle.PopulationKey{Kind: battle.KindShip, Team: component.TeamRed}] = 99
	assert.Equal(t, 10, m.Population()[battle.PopulationKey{Kind: battle.KindShip, Team: component.TeamRed}])

	m.ObservePopulation(map[battle.PopulationKey]int{{Kind: battle.KindShip, Team: component.TeamBlue}: 1})
	assert.Len(t, m.Population(), 1, "previous counts are replaced")
}

func TestPoints(t *testing.T) {
	at := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	pop := map[battle.PopulationKey]int{
		{Kind: battle.KindShip, Team: component.TeamBlue}: 7,
	}
	points := Points("battle", at, 12.5, pop, system.Counters{Spawned: 9, Fired: 4, Hits: 2, Expired: 1})
	require.Len(t, points, 2)

	population := influxdb2_write.PointToLineProtocol(points[0], time.Second)
	assert.True(t, strings.HasPrefix(population, "population,"), population)
	assert.Contains(t, population, "kind=ship")
	assert.Contains(t, population, "scenario=battle")
	assert.Contains(t, population, "team=blue")
	assert.Contains(t, population, "count=7i")
	assert.Contains(t, population, "sim_time=12.5")

	events := influxdb2_write.PointToLineProtocol(points[1], time.Second)
	assert.True(t, strings.HasPrefix(events, "events,scenario=battle "), events)
	assert.Contains(t, events, "hits=2i")
	assert.Contains(t, events, "spawned=9i")
}

func TestInfluxSinkWrites(t *testing.T) {
	var (
		mu    sync.Mutex
		lines []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v2/write" {
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			lines = append(lines, strings.Split(strings.TrimSpace(string(body)), "\n")...)
			mu.Unlock()
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket", zerolog.Nop())
	sink.Write("skirmish", time.Now(), 1, map[battle.PopulationKey]int{
		{Kind: battle.KindShip, Team: component.TeamGreen}: 5,
	}, system.Counters{})
	sink.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, lines, 2)
	assert.Contains(t, strings.Join(lines, "\n"), "team=green")
}
