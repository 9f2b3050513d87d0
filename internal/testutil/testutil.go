// Package testutil provides test utilities and helpers.
package testutil

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"burialpredict/internal/model"
)

// FeatureNames mirrors prediction.FeatureNames without importing it, so the
// prediction package's own tests can use this package.
var FeatureNames = []string{"Death Month", "Burial Weekday", "Burial Month"}

// FakeRegressor returns a fixed prediction and records the features it saw.
type FakeRegressor struct {
	Value float64
	Err   error
	Panic any

	mu    sync.Mutex
	calls [][]float64
}

// Predict implements prediction.Regressor.
func (f *FakeRegressor) Predict(features []float64) (float64, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]float64(nil), features...))
	f.mu.Unlock()

	if f.Panic != nil {
		panic(f.Panic)
	}
	return f.Value, f.Err
}

// Calls returns the feature rows passed to Predict so far.
func (f *FakeRegressor) Calls() [][]float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]float64(nil), f.calls...)
}

// MonthlyRegressor returns Days[month] for the Death Month feature.
type MonthlyRegressor struct {
	Days map[int]float64
}

// Predict implements prediction.Regressor.
func (m MonthlyRegressor) Predict(features []float64) (float64, error) {
	return m.Days[int(features[0])], nil
}

// FixedClock returns a clock pinned to the given local date at noon.
func FixedClock(year int, month time.Month, day int) func() time.Time {
	t := time.Date(year, month, day, 12, 0, 0, 0, time.Local)
	return func() time.Time { return t }
}

// SeasonalTree predicts winter for months <= 2, spring for months 3..6 and
// summer otherwise.
func SeasonalTree(winter, spring, summer float64) model.Tree {
	return model.Tree{Nodes: []model.Node{
		{Feature: 0, Threshold: 2.5, Left: 1, Right: 2},
		{Feature: -2, Threshold: -2, Left: model.LeafChild, Right: model.LeafChild, Value: winter},
		{Feature: 0, Threshold: 6.5, Left: 3, Right: 4},
		{Feature: -2, Threshold: -2, Left: model.LeafChild, Right: model.LeafChild, Value: spring},
		{Feature: -2, Threshold: -2, Left: model.LeafChild, Right: model.LeafChild, Value: summer},
	}}
}

// WriteArtifact saves a random forest artifact with the standard feature
// names under t.TempDir and returns its path.
func WriteArtifact(t *testing.T, trees ...model.Tree) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "RandomForestRegressor.json")
	artifact := model.Artifact{
		ModelType:    model.TypeRandomForest,
		FeatureNames: FeatureNames,
		Trees:        trees,
	}
	if err := model.Save(path, artifact); err != nil {
		t.Fatalf("failed to write model artifact: %v", err)
	}
	return path
}
