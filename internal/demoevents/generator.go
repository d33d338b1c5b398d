package demoevents

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/aindrila22/calendar/pkg/logger"
)

// Constants for random generation.
const (
	daySpreadDivisor = 90 // events land within a ~3 month window
	allDayDivisor    = 3  // roughly one in three events is all-day
)

// Title pool the generator draws from. The index suffix keeps derived IDs
// unique even when two events land on the same day.
var titlePool = []string{
	"Standup",
	"Design review",
	"1:1",
	"Sprint planning",
	"Retro",
	"Dentist",
	"Lunch with Sam",
	"Gym",
	"Release cut",
	"On-call handover",
}

// getRandomInt returns a random int in [0, n) using crypto/rand.
func getRandomInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// generateEvents creates the specified number of demo events spread across
// the coming weeks.
func generateEvents(ctx context.Context, config *Config, stats *Stats) ([]DemoEvent, error) {
	logger.Get().Info(ctx, "generating demo events", logger.Int("numEvents", config.NumEvents))

	base := time.Now().UTC()
	events := make([]DemoEvent, config.NumEvents)
	for i := range events {
		events[i] = generateSingleEvent(i, base)
	}

	stats.EventsGenerated = len(events)
	logger.Get().Info(ctx, "generated demo events", logger.Int("count", len(events)))
	return events, nil
}

// generateSingleEvent creates one demo event with a unique title.
func generateSingleEvent(index int, base time.Time) DemoEvent {
	day := base.AddDate(0, 0, int(getRandomInt(daySpreadDivisor)))
	title := titlePool[index%len(titlePool)] + " #" + strconv.Itoa(index)

	return DemoEvent{
		Date:   day.Format("2006-01-02"),
		Title:  title,
		AllDay: getRandomInt(allDayDivisor) == 0,
	}
}
