// Package prediction turns a pet's death date into a recommended burial date
// using a pre-trained regressor of the days between death and burial.
package prediction

import (
	"fmt"
	"math"
	"time"

	"burialpredict/internal/validation"
)

// Client-facing messages.
const (
	MsgFutureDeathDate = "Pet death date cannot be in the future."
)

// Latest burial date we can still format as YYYY-MM-DD.
var maxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Regressor predicts the number of days between death and burial.
// Implementations must be safe for concurrent use.
type Regressor interface {
	Predict(features []float64) (float64, error)
}

// Recommendation is the outcome of a single prediction.
type Recommendation struct {
	DeathDate            time.Time
	PredictedDaysBetween int
	BurialDate           time.Time
}

// BurialWeekday returns the English weekday name of the burial date.
func (r *Recommendation) BurialWeekday() string {
	return r.BurialDate.Weekday().String()
}

// Service computes burial recommendations. It holds no mutable state.
type Service struct {
	model Regressor
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a service around a loaded model.
func NewService(model Regressor, opts ...Option) *Service {
	s := &Service{
		model: model,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the server's current local date.
func (s *Service) Today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Recommend validates a raw death date and predicts the burial date.
// Bad input is reported as a validation.Error; anything else is internal.
func (s *Service) Recommend(rawDeathDate string) (*Recommendation, error) {
	deathDate, err := ParseDate(rawDeathDate)
	if err != nil {
		return nil, validation.Errorf("Invalid 'deathDate': %q", rawDeathDate)
	}

	if deathDate.After(s.Today()) {
		return nil, &validation.Error{Message: MsgFutureDeathDate}
	}

	return s.recommend(deathDate)
}

// recommend runs the model for an already validated death date.
func (s *Service) recommend(deathDate time.Time) (*Recommendation, error) {
	features := NewFeatureVector(deathDate)

	predicted, err := s.model.Predict(features.Values())
	if err != nil {
		return nil, fmt.Errorf("predict days between: %w", err)
	}

	days, err := roundDays(predicted)
	if err != nil {
		return nil, err
	}

	burialDate := deathDate.AddDate(0, 0, days)
	if burialDate.Year() < 1 || burialDate.After(maxDate) {
		return nil, fmt.Errorf("burial date out of range: %d days after %s", days, FormatDate(deathDate))
	}

	return &Recommendation{
		DeathDate:            deathDate,
		PredictedDaysBetween: days,
		BurialDate:           burialDate,
	}, nil
}

// roundDays rounds half to even.
func roundDays(predicted float64) (int, error) {
	if math.IsNaN(predicted) || math.IsInf(predicted, 0) {
		return 0, fmt.Errorf("model returned non-finite prediction %v", predicted)
	}

	rounded := math.RoundToEven(predicted)
	// Four million days spans the whole year 1..9999 range.
	if math.Abs(rounded) > 4_000_000 {
		return 0, fmt.Errorf("predicted day offset %v out of range", predicted)
	}
	return int(rounded), nil
}
