package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cropcare/internal/client/models"
	"github.com/dmitrijs2005/cropcare/internal/common"
)

const defaultRequestTimeout = 15 * time.Second

// Recommend collects a soil sample and prints the backend's crop ranking.
func (a *App) Recommend(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNoActiveSession
	}
	if a.Mode() == ModeOffline {
		printlnFn("Recommendation service looks offline, trying anyway...")
	}

	var sample models.SoilSample
	numbers := []struct {
		label string
		dst   *float64
	}{
		{"Nitrogen (N)", &sample.Nitrogen},
		{"Phosphorus (P)", &sample.Phosphorus},
		{"Potassium (K)", &sample.Potassium},
		{"Temperature (°C)", &sample.Temperature},
		{"Humidity (%)", &sample.Humidity},
		{"pH", &sample.PH},
		{"Rainfall (mm)", &sample.Rainfall},
	}
	for _, n := range numbers {
		s, err := getSimpleText(a.reader, "Enter "+n.label, a.out)
		if err != nil {
			return err
		}
		v, err := ParseNumber(n.label, s)
		if err != nil {
			return err
		}
		*n.dst = v
	}

	soil, err := getSimpleText(a.reader, fmt.Sprintf("Enter soil type (%s)", strings.Join(models.SoilTypes, ", ")), a.out)
	if err != nil {
		return err
	}
	sample.SoilType = canonicalSoilType(soil)

	ctx, cancel := context.WithTimeout(ctx, a.requestTimeout())
	defer cancel()

	rec, err := a.recommender.Recommend(ctx, sample)
	if err != nil {
		return err
	}
	a.setMode(ModeOnline)

	printlnFn(formatRecommendation(rec))
	return nil
}

func (a *App) requestTimeout() time.Duration {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return defaultRequestTimeout
	}
	return a.config.RequestTimeout
}

// canonicalSoilType maps "loam" or "LOAM" onto "Loam"; unknown input is
// returned trimmed so validation can report it.
func canonicalSoilType(s string) string {
	s = strings.TrimSpace(s)
	for _, t := range models.SoilTypes {
		if strings.EqualFold(t, s) {
			return t
		}
	}
	return s
}
