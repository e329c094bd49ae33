package synthetic

import (
	"fmt"
	"math/rand"
	"time"
)

// DefaultCount is the number of records generated when the caller does not
// ask for a specific batch size.
const DefaultCount = 30

// MaxCount caps a single generation request.
const MaxCount = 1000

var genderTexts = []string{"Male", "Female", "M", "F", "Unknown"}

// Generator produces messy synthetic vitals batches. It is seedable so tests
// and the seed command get reproducible output.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// NewDefault returns a time-seeded generator for server use.
func NewDefault() *Generator {
	return NewGenerator(time.Now().UnixNano())
}

// Generate produces n raw records with deliberate quality problems:
// absent heart rates, physiologically impossible heart rates, missing ages,
// and inconsistent gender encodings.
func (g *Generator) Generate(n int) []RawRecord {
	if n <= 0 {
		return []RawRecord{}
	}

	records := make([]RawRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, RawRecord{
			SubjectID:  fmt.Sprintf("SUBJ-%03d", g.rng.Intn(1000)),
			AgeYears:   g.age(),
			GenderText: genderTexts[g.rng.Intn(len(genderTexts))],
			HeartRate:  g.heartRate(),
			VisitDate:  g.visitDate(),
		})
	}
	return records
}

// heartRate is plausible 70% of the time, implausibly high 20% of the time,
// and absent 10% of the time.
func (g *Generator) heartRate() *float64 {
	roll := g.rng.Float64()
	switch {
	case roll < 0.7:
		hr := float64(55 + g.rng.Intn(120-55+1))
		return &hr
	case roll < 0.9:
		hr := float64(350 + g.rng.Intn(1800-350+1))
		return &hr
	default:
		return nil
	}
}

// age is missing half the time, otherwise uniform in [18, 85].
func (g *Generator) age() *int {
	if g.rng.Intn(2) == 0 {
		return nil
	}
	age := 18 + g.rng.Intn(85-18+1)
	return &age
}

// visitDate picks a day in the current decade, up to today.
func (g *Generator) visitDate() string {
	now := g.now().UTC()
	decadeStart := time.Date(now.Year()-now.Year()%10, time.January, 1, 0, 0, 0, 0, time.UTC)
	span := int(now.Sub(decadeStart).Hours() / 24)
	if span < 1 {
		span = 1
	}
	day := decadeStart.AddDate(0, 0, g.rng.Intn(span))
	return day.Format("2006-01-02")
}
