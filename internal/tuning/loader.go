package tuning

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wonny/drip/internal/contracts"
)

// Load reads a tunables YAML file. An empty path returns the defaults.
// KnownFields(true): 오타/미사용 필드 발견 시 즉시 실패
func Load(path string) (*Tuning, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode tuning file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate tuning file: %w", err)
	}

	return cfg, nil
}

// Validate checks structural invariants of a tuning set
func Validate(t *Tuning) error {
	if len(t.Bands) == 0 {
		return fmt.Errorf("bands must not be empty")
	}

	prev := t.Bands[0].MinScore
	for i, band := range t.Bands {
		if !band.Frequency.Valid() {
			return fmt.Errorf("band %d: unknown frequency %q", i, band.Frequency)
		}
		if band.AmountFactor <= 0 {
			return fmt.Errorf("band %d: amount_factor must be positive", i)
		}
		if i > 0 && band.MinScore >= prev {
			return fmt.Errorf("band %d: min_score must be strictly descending", i)
		}
		prev = band.MinScore
	}
	if t.Bands[len(t.Bands)-1].MinScore != 0 {
		return fmt.Errorf("last band must cover score 0")
	}

	cadences := []contracts.Cadence{
		contracts.CadenceDaily,
		contracts.CadenceWeekly,
		contracts.CadenceBiweekly,
		contracts.CadenceMonthly,
	}
	for _, cadence := range cadences {
		if n, ok := t.Events[cadence]; !ok || n <= 0 {
			return fmt.Errorf("events_per_month for %s must be positive", cadence)
		}
	}

	if t.Buffer.UsageCapRatio < 0 || t.Buffer.UsageCapRatio > 1 {
		return fmt.Errorf("buffer usage_cap_ratio must be in [0,1]")
	}
	if t.Buffer.ExtremeReleaseRatio < 0 || t.Buffer.ExtremeReleaseRatio > 1 {
		return fmt.Errorf("buffer extreme_release_ratio must be in [0,1]")
	}
	if t.ScoreHistoryCap < 5 {
		return fmt.Errorf("score_history_cap must be at least 5")
	}

	return nil
}
