package prediction

import "time"

// FeatureNames is the column order the regressor was trained on.
var FeatureNames = []string{"Death Month", "Burial Weekday", "Burial Month"}

// FeatureVector is the single row passed to the model.
type FeatureVector struct {
	DeathMonth int
	// BurialWeekday is a fixed placeholder; the burial weekday is an output,
	// not something known at prediction time.
	BurialWeekday int
	// BurialMonth assumes burial happens in the month of death.
	BurialMonth int
}

// NewFeatureVector builds the features for a death date.
func NewFeatureVector(deathDate time.Time) FeatureVector {
	month := int(deathDate.Month())
	return FeatureVector{
		DeathMonth:    month,
		BurialWeekday: 0,
		BurialMonth:   month,
	}
}

// Values returns the features in FeatureNames order.
func (f FeatureVector) Values() []float64 {
	return []float64{
		float64(f.DeathMonth),
		float64(f.BurialWeekday),
		float64(f.BurialMonth),
	}
}
