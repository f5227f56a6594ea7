package utils

import "time"

// Stats tracks throughput and population of a running simulation
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time

	samples int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records that generation was reached elapsed after the previous
// sample. Generations skipped between samples count toward the rate.
func (s *Stats) Update(generation int, population int, elapsed time.Duration) {
	advanced := generation - s.TotalGenerations
	s.TotalGenerations = generation
	if advanced > 0 && elapsed > 0 {
		s.GenerationsPerSecond = float64(advanced) / elapsed.Seconds()
	}

	// moving average, weighted by the samples actually seen
	if s.samples == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = s.AveragePopulation*0.9 + float64(population)*0.1
	}
	s.samples++
}

// Runtime is the time since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
