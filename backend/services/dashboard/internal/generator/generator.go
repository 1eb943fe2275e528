package generator

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"emfmonitor/backend/services/dashboard/internal/derive"
	"emfmonitor/backend/services/dashboard/internal/models"
)

const (
	maxSeriesHours    = 24 * 90
	routePointsCount  = 50
	defaultSeriesDays = 30
)

// Config describes the synthetic data source.
type Config struct {
	// Seed makes every output reproducible. Zero picks a seed from the clock.
	Seed int64
	// Now is the reference instant for relative timestamps. Defaults to time.Now.
	Now func() time.Time
}

// City is a named anchor coordinate.
type City struct {
	Name string
	Lat  float64
	Lng  float64
}

// Cities hosting fixed monitoring stations.
var Cities = []City{
	{Name: "Belgrade", Lat: 44.787197, Lng: 20.457273},
	{Name: "Novi Sad", Lat: 45.267136, Lng: 19.833549},
	{Name: "Niš", Lat: 43.320904, Lng: 21.895761},
	{Name: "Kragujevac", Lat: 44.012794, Lng: 20.926010},
	{Name: "Subotica", Lat: 46.100376, Lng: 19.667587},
	{Name: "Zrenjanin", Lat: 45.381432, Lng: 20.385647},
	{Name: "Pančevo", Lat: 44.870461, Lng: 20.644131},
	{Name: "Čačak", Lat: 43.891598, Lng: 20.349762},
	{Name: "Kraljevo", Lat: 43.724088, Lng: 20.687652},
	{Name: "Leskovac", Lat: 42.998932, Lng: 21.944761},
}

// Regions where campaigns take place; the first five cities.
var Regions = Cities[:5]

// Generator synthesizes stand-in data. Each call derives its own random stream from the
// seed, so a Generator is safe for concurrent use and repeated calls agree.
type Generator struct {
	seed int64
	now  func() time.Time
}

// New creates a generator.
func New(cfg Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Generator{seed: seed, now: now}
}

func (g *Generator) stream(salt string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(salt))
	return rand.New(rand.NewSource(g.seed ^ int64(h.Sum64())))
}

// MeasurementPoints returns count points scattered around Belgrade within the last 30 days.
func (g *Generator) MeasurementPoints(count int) []models.MeasurementPoint {
	rnd := g.stream("points")
	now := g.now().UTC()
	center := Cities[0]

	points := make([]models.MeasurementPoint, count)
	for i := range points {
		lat := center.Lat + (rnd.Float64()-0.5)*0.2
		lng := center.Lng + (rnd.Float64()-0.5)*0.2
		age := time.Duration(rnd.Float64() * float64(30*24*time.Hour))

		points[i] = derive.RelevelPoint(models.MeasurementPoint{
			ID: models.IntID(int64(i + 1)),
			Location: models.Location{
				Lat:     lat,
				Lng:     lng,
				Address: fmt.Sprintf("Sample Location %d", i+1),
			},
			Value:     randomValue(rnd),
			Unit:      models.UnitVPerM,
			Timestamp: now.Add(-age).Truncate(time.Second),
		})
	}
	return points
}

// TimeSeries returns hourly readings of one sensor between from and to, ascending.
// The reading of a given hour is the same regardless of the requested window.
func (g *Generator) TimeSeries(sensorID models.ID, from, to time.Time) []models.SensorReading {
	from = from.UTC().Truncate(time.Hour)
	to = to.UTC()
	if !from.Before(to) {
		return []models.SensorReading{}
	}
	if to.Sub(from) > maxSeriesHours*time.Hour {
		from = to.Add(-maxSeriesHours * time.Hour).Truncate(time.Hour)
	}

	salt := g.stream("series:" + sensorID.String()).Uint64()
	base := g.stream("series-base:"+sensorID.String()).Float64()*4.5 + 0.5

	readings := make([]models.SensorReading, 0, int(to.Sub(from)/time.Hour)+1)
	for ts := from; !ts.After(to); ts = ts.Add(time.Hour) {
		hour := float64(ts.Hour())
		jitter := noise(salt, uint64(ts.Unix()/3600)) - 0.5
		value := math.Max(0.1, base+math.Sin(hour/3.82)*1.5+jitter)
		readings = append(readings, models.SensorReading{
			Timestamp: ts,
			Value:     derive.Round2(value),
			Unit:      models.UnitVPerM,
		})
	}
	return readings
}

// RecentSeries returns the last days of hourly readings ending now.
func (g *Generator) RecentSeries(sensorID models.ID, days int) []models.SensorReading {
	if days <= 0 {
		days = defaultSeriesDays
	}
	now := g.now().UTC()
	return g.TimeSeries(sensorID, now.AddDate(0, 0, -days), now)
}

// Stations returns up to count fixed stations, one per city.
func (g *Generator) Stations(count int) []models.Station {
	if count > len(Cities) {
		count = len(Cities)
	}
	if count < 0 {
		count = 0
	}
	rnd := g.stream("stations")
	now := g.now().UTC()

	stations := make([]models.Station, count)
	for i := range stations {
		city := Cities[i]
		status := models.StationActive
		lat := city.Lat + (rnd.Float64()-0.5)*0.01
		lng := city.Lng + (rnd.Float64()-0.5)*0.01
		if rnd.Float64() <= 0.1 {
			status = models.StationMaintenance
		}
		installed := now.Add(-time.Duration(rnd.Float64() * float64(3*365*24*time.Hour)))

		stations[i] = models.Station{
			ID:   models.IntID(int64(i + 1)),
			Name: city.Name + " Monitoring Station",
			Location: models.Location{
				Lat:     lat,
				Lng:     lng,
				Address: city.Name + ", Serbia",
			},
			Status:      status,
			InstallDate: installed.Format(models.DateLayout),
		}
	}
	return stations
}

// Campaigns returns campaigns 1..count.
func (g *Generator) Campaigns(count int) []models.Campaign {
	campaigns := make([]models.Campaign, 0, count)
	for i := 1; i <= count; i++ {
		campaigns = append(campaigns, g.Campaign(int64(i)))
	}
	return campaigns
}

// Campaign returns the campaign with the given number. The same number always yields the
// same campaign for a given seed and day.
func (g *Generator) Campaign(n int64) models.Campaign {
	rnd := g.stream(fmt.Sprintf("campaign:%d", n))
	now := g.now().UTC()

	date := now.AddDate(0, 0, -rnd.Intn(365))
	duration := rnd.Intn(5) + 1
	region := Regions[rnd.Intn(len(Regions))]

	durationLabel := fmt.Sprintf("%d day", duration)
	if duration > 1 {
		durationLabel += "s"
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, time.UTC)
	points := routePoints(rnd, region, start, routePointsCount)

	return derive.RecomputeStats(models.Campaign{
		ID:       models.IntID(n),
		Name:     fmt.Sprintf("%s Area Campaign %d", region.Name, n),
		Region:   region.Name,
		Date:     date.Format(models.DateLayout),
		Duration: durationLabel,
		Points:   points,
	})
}

// routePoints walks away from the region anchor in small steps, one reading every 30 seconds.
func routePoints(rnd *rand.Rand, region City, start time.Time, count int) []models.MeasurementPoint {
	lat, lng := region.Lat, region.Lng
	points := make([]models.MeasurementPoint, count)
	for i := range points {
		lat += (rnd.Float64() - 0.5) * 0.005
		lng += (rnd.Float64() - 0.5) * 0.005
		points[i] = models.MeasurementPoint{
			ID:        models.IntID(int64(i + 1)),
			Location:  models.Location{Lat: lat, Lng: lng},
			Value:     randomValue(rnd),
			Unit:      models.UnitVPerM,
			Timestamp: start.Add(time.Duration(i) * 30 * time.Second),
		}
	}
	return points
}

// randomValue is uniform in [0.1, 10) V/m with two decimals.
func randomValue(rnd *rand.Rand) float64 {
	return derive.Round2(rnd.Float64()*9.9 + 0.1)
}

// noise hashes (salt, n) to [0, 1) with splitmix64.
func noise(salt, n uint64) float64 {
	z := salt + n*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return float64(z>>11) / float64(1<<53)
}
