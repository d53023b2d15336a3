// Package recommend sizes a solar system for a location and consumption
// profile, with an LLM fallback when the consumption cannot be derived.
package recommend

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrMissingInput          = errors.New("provide either consumption number or usage description")
	ErrConsumptionOutOfRange = errors.New("electricity_kwh_per_month must be between 100 and 5000")
)

// Monthly consumption bounds. Sizing math divides by the consumption, so
// zero and negative values must never reach it.
const (
	MinMonthlyKWh = 100
	MaxMonthlyKWh = 5000
)

// Query is the recommendation request. Exactly one of the monthly
// consumption or the usage prompt must be set.
type Query struct {
	Location               string `json:"location" binding:"required,min=3"`
	ElectricityKWhPerMonth *int   `json:"electricity_kwh_per_month" binding:"omitempty,gte=100,lte=5000"`
	UsagePrompt            string `json:"usage_prompt" binding:"omitempty,min=10"`
}

// Metric is one named figure of the recommendation.
type Metric struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Value       interface{} `json:"value"`
	Unit        string      `json:"unit"`
}

// Recommendation is the sizing result presented to the user.
type Recommendation struct {
	Summary string   `json:"summary"`
	Metrics []Metric `json:"metrics"`
}

// TextCompleter is the slice of the LLM client the engine needs.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Engine orchestrates geocoding, irradiance lookup, sizing and the LLM
// assists. Results are cached in Redis keyed by a hash of the inputs.
type Engine struct {
	solar    *SolarClient
	llm      TextCompleter
	cache    *redis.Client
	cacheTTL time.Duration
}

func NewEngine(solar *SolarClient, llm TextCompleter, cache *redis.Client, cacheTTL time.Duration) *Engine {
	return &Engine{
		solar:    solar,
		llm:      llm,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (e *Engine) Recommend(ctx context.Context, query Query) (*Recommendation, error) {
	if query.ElectricityKWhPerMonth == nil && strings.TrimSpace(query.UsagePrompt) == "" {
		return nil, ErrMissingInput
	}
	// The HTTP layer enforces the same bounds; this guard covers direct
	// callers before anything divides by the consumption.
	if query.ElectricityKWhPerMonth != nil {
		if kwh := *query.ElectricityKWhPerMonth; kwh < MinMonthlyKWh || kwh > MaxMonthlyKWh {
			return nil, ErrConsumptionOutOfRange
		}
	}

	key := cacheKey(query)
	if cached := e.cacheGet(ctx, key); cached != nil {
		return cached, nil
	}

	lat, lon, err := e.solar.Geocode(ctx, query.Location)
	if err != nil {
		return nil, err
	}

	var dailyKWh float64
	switch {
	case query.ElectricityKWhPerMonth != nil:
		dailyKWh = float64(*query.ElectricityKWhPerMonth) / 30
	default:
		estimated, ok := e.estimateConsumption(ctx, query.UsagePrompt)
		if !ok {
			rec, err := e.llmRecommendation(ctx, query.Location, query.UsagePrompt)
			if err != nil {
				return nil, err
			}
			e.cachePut(ctx, key, rec)
			return rec, nil
		}
		dailyKWh = estimated
	}

	solarHours, err := e.solar.AverageDailySunHours(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	// An all-zero irradiance series would put Inf into the sizing.
	if solarHours <= 0 {
		return nil, ErrSolarUnavailable
	}

	rec := buildRecommendation(query, dailyKWh, solarHours)
	e.cachePut(ctx, key, rec)
	return rec, nil
}

func buildRecommendation(query Query, dailyKWh, solarHours float64) *Recommendation {
	calc := CalculateSizing(round2(dailyKWh), solarHours)

	monthlyKWh := dailyKWh * 30
	if query.ElectricityKWhPerMonth != nil {
		monthlyKWh = float64(*query.ElectricityKWhPerMonth)
	}
	averageTariff := Tariff(monthlyKWh) / monthlyKWh

	dailySavings := round2(dailyKWh * averageTariff)
	systemCost := float64(int(calc.SystemKW*CostPerKW + 0.5))
	paybackYears := round1(systemCost / (dailySavings * 365))

	metrics := []Metric{
		{Name: "daily_consumption", Description: "Estimated daily electricity usage", Value: round2(dailyKWh), Unit: "kWh"},
		{Name: "solar_hours", Description: "Average daily peak sun hours", Value: solarHours, Unit: "hours"},
		{Name: "system_size", Description: "Recommended solar system size", Value: calc.SystemKW, Unit: "kW"},
		{Name: "solar_panels", Description: fmt.Sprintf("%dW panels required", PanelWattage), Value: calc.Panels, Unit: "panels"},
		{Name: "inverter_size", Description: "Recommended inverter capacity", Value: calc.InverterKW, Unit: "kW"},
		{Name: "battery_storage", Description: "Recommended battery backup", Value: calc.BatteryKWh, Unit: "kWh"},
		{Name: "system_type", Description: "Suggested solar system configuration", Value: "On-Grid with Battery Backup", Unit: ""},
		{Name: "panel_type", Description: "Recommended solar panel type", Value: fmt.Sprintf("%dW Monocrystalline", PanelWattage), Unit: ""},
		{Name: "backup_hours", Description: "Battery backup duration", Value: DailyBackupHours, Unit: "hours"},
		{Name: "payback_period", Description: "Estimated return on investment duration", Value: paybackYears, Unit: "years"},
	}

	return &Recommendation{
		Summary: fmt.Sprintf("%vkW Solar System Recommendation", calc.SystemKW),
		Metrics: metrics,
	}
}

var numericOnly = regexp.MustCompile(`[^\d.]`)

// estimateConsumption asks the LLM to pull a daily kWh figure out of the
// free-text description. A failed call or a non-numeric answer is not an
// error; the caller falls back to a pure-LLM recommendation.
func (e *Engine) estimateConsumption(ctx context.Context, prompt string) (float64, bool) {
	response, err := e.llm.Complete(ctx,
		"Extract numerical daily electricity consumption in kWh from this text, "+
			"return ONLY a number. Example: 8.5\nText: "+prompt)
	if err != nil {
		log.Println("[RECOMMEND] [ERROR] consumption extraction failed:", err)
		return 0, false
	}

	cleaned := numericOnly.ReplaceAllString(strings.TrimSpace(response), "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func (e *Engine) llmRecommendation(ctx context.Context, location, usagePrompt string) (*Recommendation, error) {
	prompt := fmt.Sprintf(
		"Location: %s\nUser Description: %s\n\n"+
			"Based on this information, generate a plain-language solar system recommendation. "+
			"Assume the location has moderate solar irradiance. Estimate daily consumption if possible, "+
			"and describe system size, panel type, inverter, and battery in simple terms. Keep it under 150 words.",
		location, usagePrompt)

	text, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm recommendation failed: %w", err)
	}

	return &Recommendation{
		Summary: "AI-based Solar Suggestion",
		Metrics: []Metric{{
			Name:        "llm_summary",
			Description: "AI-generated system recommendation",
			Value:       strings.TrimSpace(text),
			Unit:        "",
		}},
	}, nil
}

func cacheKey(query Query) string {
	canonical, _ := json.Marshal(query)
	sum := md5.Sum(canonical)
	return "recommend:" + hex.EncodeToString(sum[:])
}

func (e *Engine) cacheGet(ctx context.Context, key string) *Recommendation {
	if e.cache == nil {
		return nil
	}
	raw, err := e.cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var rec Recommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil
	}
	return &rec
}

func (e *Engine) cachePut(ctx context.Context, key string, rec *Recommendation) {
	if e.cache == nil {
		return
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, key, raw, e.cacheTTL).Err(); err != nil {
		log.Println("[RECOMMEND] [ERROR] cache write failed:", err)
	}
}
