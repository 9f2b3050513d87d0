package prediction

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"burialpredict/internal/model"
	"burialpredict/internal/testutil"
	"burialpredict/internal/validation"
)

func newTestService(m Regressor) *Service {
	return NewService(m, WithClock(testutil.FixedClock(2024, time.June, 1)))
}

func TestRecommendMarchScenario(t *testing.T) {
	fake := &testutil.FakeRegressor{Value: 3.4}
	svc := newTestService(fake)

	rec, err := svc.Recommend("2024-03-15")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if got := FormatDate(rec.DeathDate); got != "2024-03-15" {
		t.Errorf("DeathDate = %s, want 2024-03-15", got)
	}
	if rec.PredictedDaysBetween != 3 {
		t.Errorf("PredictedDaysBetween = %d, want 3", rec.PredictedDaysBetween)
	}
	if got := FormatDate(rec.BurialDate); got != "2024-03-18" {
		t.Errorf("BurialDate = %s, want 2024-03-18", got)
	}
	if rec.BurialWeekday() != "Monday" {
		t.Errorf("BurialWeekday() = %s, want Monday", rec.BurialWeekday())
	}

	calls := fake.Calls()
	if len(calls) != 1 {
		t.Fatalf("model called %d times, want 1", len(calls))
	}
	want := []float64{3, 0, 3}
	for i := range want {
		if calls[0][i] != want[i] {
			t.Errorf("features = %v, want %v", calls[0], want)
			break
		}
	}
}

func TestRecommendNormalisesInputFormat(t *testing.T) {
	svc := newTestService(&testutil.FakeRegressor{Value: 2})

	inputs := []string{
		"2024-03-15",
		" 2024-03-15 ",
		"03/15/2024",
		"2024/03/15",
		"March 15, 2024",
		"15 March 2024",
		"2024-03-15 10:30:00",
		"2024-03-15T23:59:59Z",
		"2024-03-15T01:00:00+09:00",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			rec, err := svc.Recommend(input)
			if err != nil {
				t.Fatalf("Recommend(%q) error = %v", input, err)
			}
			if got := FormatDate(rec.DeathDate); got != "2024-03-15" {
				t.Errorf("Recommend(%q) DeathDate = %s, want 2024-03-15", input, got)
			}
			if got := FormatDate(rec.BurialDate); got != "2024-03-17" {
				t.Errorf("Recommend(%q) BurialDate = %s, want 2024-03-17", input, got)
			}
		})
	}
}

func TestRecommendFutureBoundary(t *testing.T) {
	svc := newTestService(&testutil.FakeRegressor{Value: 1})

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "yesterday", input: "2024-05-31"},
		{name: "today", input: "2024-06-01"},
		{name: "today with late time", input: "2024-06-01 23:59:59"},
		{name: "tomorrow", input: "2024-06-02", wantErr: true},
		{name: "next year", input: "2025-01-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Recommend(tt.input)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Recommend(%q) error = %v", tt.input, err)
				}
				return
			}
			if !validation.IsValidationError(err) {
				t.Fatalf("Recommend(%q) error = %v, want validation error", tt.input, err)
			}
			if err.Error() != MsgFutureDeathDate {
				t.Errorf("Recommend(%q) error = %q, want %q", tt.input, err.Error(), MsgFutureDeathDate)
			}
		})
	}
}

func TestRecommendMalformedDate(t *testing.T) {
	fake := &testutil.FakeRegressor{Value: 1}
	svc := newTestService(fake)

	for _, input := range []string{"not-a-date", "", "2024-13-45", "2024-02-30"} {
		t.Run(input, func(t *testing.T) {
			_, err := svc.Recommend(input)
			if !validation.IsValidationError(err) {
				t.Fatalf("Recommend(%q) error = %v, want validation error", input, err)
			}
			if !strings.HasPrefix(err.Error(), "Invalid 'deathDate'") {
				t.Errorf("Recommend(%q) error = %q", input, err.Error())
			}
		})
	}

	if len(fake.Calls()) != 0 {
		t.Error("model must not be called for malformed input")
	}
}

func TestRecommendRounding(t *testing.T) {
	tests := []struct {
		predicted float64
		want      int
	}{
		{predicted: 3.4, want: 3},
		{predicted: 3.6, want: 4},
		{predicted: 2.5, want: 2},
		{predicted: 3.5, want: 4},
		{predicted: 0.5, want: 0},
		{predicted: -0.4, want: 0},
		{predicted: -1.5, want: -2},
	}

	for _, tt := range tests {
		svc := newTestService(&testutil.FakeRegressor{Value: tt.predicted})
		rec, err := svc.Recommend("2024-01-10")
		if err != nil {
			t.Fatalf("Recommend() with prediction %v error = %v", tt.predicted, err)
		}
		if rec.PredictedDaysBetween != tt.want {
			t.Errorf("prediction %v rounded to %d, want %d", tt.predicted, rec.PredictedDaysBetween, tt.want)
		}
		if days := int(rec.BurialDate.Sub(rec.DeathDate).Hours() / 24); days != rec.PredictedDaysBetween {
			t.Errorf("burial date is %d days after death, want %d", days, rec.PredictedDaysBetween)
		}
	}
}

func TestRecommendWeekdays(t *testing.T) {
	// 2024-01-01 is a Monday.
	tests := []struct {
		days int
		want string
	}{
		{0, "Monday"},
		{1, "Tuesday"},
		{5, "Saturday"},
		{6, "Sunday"},
		{31, "Thursday"},
	}

	for _, tt := range tests {
		svc := newTestService(&testutil.FakeRegressor{Value: float64(tt.days)})
		rec, err := svc.Recommend("2024-01-01")
		if err != nil {
			t.Fatal(err)
		}
		if rec.BurialWeekday() != tt.want {
			t.Errorf("%s is %s, want %s", FormatDate(rec.BurialDate), rec.BurialWeekday(), tt.want)
		}
	}
}

func TestRecommendCrossesMonthAndLeapDay(t *testing.T) {
	svc := newTestService(&testutil.FakeRegressor{Value: 2})

	rec, err := svc.Recommend("2024-02-28")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatDate(rec.BurialDate); got != "2024-03-01" {
		t.Errorf("BurialDate = %s, want 2024-03-01", got)
	}
}

func TestRecommendModelFailures(t *testing.T) {
	boom := errors.New("estimator not fitted")

	tests := []struct {
		name  string
		model Regressor
	}{
		{name: "model error", model: &testutil.FakeRegressor{Err: boom}},
		{name: "NaN", model: &testutil.FakeRegressor{Value: math.NaN()}},
		{name: "infinite", model: &testutil.FakeRegressor{Value: math.Inf(1)}},
		{name: "absurd offset", model: &testutil.FakeRegressor{Value: 1e12}},
		{name: "past year 9999", model: &testutil.FakeRegressor{Value: 3_000_000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(tt.model).Recommend("2024-03-15")
			if err == nil {
				t.Fatal("Recommend() should fail")
			}
			if validation.IsValidationError(err) {
				t.Errorf("model failure reported as client error: %v", err)
			}
		})
	}

	_, err := newTestService(&testutil.FakeRegressor{Err: boom}).Recommend("2024-03-15")
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want it to wrap %v", err, boom)
	}
}

func TestRecommendWithLoadedForest(t *testing.T) {
	forest, err := model.Load(testutil.WriteArtifact(t,
		testutil.SeasonalTree(5, 3, 2),
		testutil.SeasonalTree(5, 4, 2),
	))
	if err != nil {
		t.Fatal(err)
	}
	if err := forest.CheckFeatures(FeatureNames); err != nil {
		t.Fatalf("artifact does not match feature order: %v", err)
	}

	svc := newTestService(forest)

	tests := []struct {
		input      string
		wantDays   int
		wantBurial string
	}{
		{input: "2024-01-20", wantDays: 5, wantBurial: "2024-01-25"},
		// mean 3.5 rounds to 4
		{input: "2024-04-10", wantDays: 4, wantBurial: "2024-04-14"},
		{input: "2023-08-30", wantDays: 2, wantBurial: "2023-09-01"},
	}

	for _, tt := range tests {
		rec, err := svc.Recommend(tt.input)
		if err != nil {
			t.Fatalf("Recommend(%q) error = %v", tt.input, err)
		}
		if rec.PredictedDaysBetween != tt.wantDays || FormatDate(rec.BurialDate) != tt.wantBurial {
			t.Errorf("Recommend(%q) = %d days, %s; want %d days, %s",
				tt.input, rec.PredictedDaysBetween, FormatDate(rec.BurialDate), tt.wantDays, tt.wantBurial)
		}
	}
}

func TestFeatureVector(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		fv := NewFeatureVector(time.Date(2023, month, 10, 0, 0, 0, 0, time.UTC))
		values := fv.Values()
		if len(values) != len(FeatureNames) {
			t.Fatalf("Values() has %d entries, want %d", len(values), len(FeatureNames))
		}
		if values[0] != float64(month) || values[1] != 0 || values[2] != float64(month) {
			t.Errorf("month %d: Values() = %v", month, values)
		}
	}

	for i, name := range testutil.FeatureNames {
		if FeatureNames[i] != name {
			t.Errorf("testutil.FeatureNames drifted from FeatureNames at %d: %q != %q", i, name, FeatureNames[i])
		}
	}
}

func TestTodayUsesLocalDate(t *testing.T) {
	late := time.Date(2024, time.June, 1, 23, 30, 0, 0, time.Local)
	svc := NewService(&testutil.FakeRegressor{}, WithClock(func() time.Time { return late }))

	if got := FormatDate(svc.Today()); got != "2024-06-01" {
		t.Errorf("Today() = %s, want 2024-06-01", got)
	}
}
