package spoilage

import (
	"math"
	"testing"
	"time"

	"coldchain/internal/models"
)

func reading(temp, hum, vib float64) models.TelemetryReading {
	return models.TelemetryReading{
		Temperature: temp,
		Humidity:    hum,
		Vibration:   vib,
		Distance:    200,
		Timestamp:   time.Now().UTC(),
	}
}

func TestPredict_Baseline(t *testing.T) {
	// Ideal temperature, pivot humidity, impact-free shipping: no penalty
	// factors, full base shelf life.
	for _, vib := range []float64{0, 0.2, 0.5} {
		got := Predict(reading(4, 60, vib), models.ProductProfile{ProductType: models.ProductTomato})
		if got.DaysLeft != 7.0 {
			t.Fatalf("vibration %.1f: expected 7.0 days, got %v", vib, got.DaysLeft)
		}
		if got.Status != models.StatusNormal {
			t.Fatalf("expected NORMAL at baseline, got %s", got.Status)
		}
	}
}

func TestPredict_TemperatureMonotonicity(t *testing.T) {
	prev := Predict(reading(4, 60, 0.2), models.ProductProfile{}).DaysLeft
	for temp := 5.0; temp <= 40; temp += 5 {
		cur := Predict(reading(temp, 60, 0.2), models.ProductProfile{}).DaysLeft
		if cur >= prev {
			t.Fatalf("days left should strictly decrease above ideal: %.3f at %.0f°C vs %.3f", cur, temp, prev)
		}
		prev = cur
	}

	prev = Predict(reading(4, 60, 0.2), models.ProductProfile{}).DaysLeft
	for temp := 3.0; temp >= -10; temp -= 3 {
		cur := Predict(reading(temp, 60, 0.2), models.ProductProfile{}).DaysLeft
		if cur <= prev {
			t.Fatalf("days left should strictly increase below ideal: %.3f at %.0f°C vs %.3f", cur, temp, prev)
		}
		prev = cur
	}
}

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		days float64
		want string
	}{
		{1.999, models.StatusCritical},
		{2.0, models.StatusWarning},
		{4.999, models.StatusWarning},
		{5.0, models.StatusNormal},
		{0, models.StatusCritical},
		{7, models.StatusNormal},
	}
	for _, tc := range cases {
		if got := Classify(tc.days); got != tc.want {
			t.Fatalf("Classify(%v) = %s, want %s", tc.days, got, tc.want)
		}
	}
}

func TestPredict_EndToEndCriticalScenario(t *testing.T) {
	// T=25 → tempFactor 2^2.1, vibration 0.8 → 1.5, humidity 80 → 1.2.
	got := Predict(reading(25, 80, 0.8), models.ProductProfile{})

	want := 7.0 / (math.Pow(2, 2.1) * 1.5 * 1.2)
	if math.Abs(got.DaysLeft-want) > 1e-9 {
		t.Fatalf("expected %.6f days, got %.6f", want, got.DaysLeft)
	}
	if math.Abs(got.DaysLeft-0.906) > 0.01 {
		t.Fatalf("expected ≈0.906 days, got %.4f", got.DaysLeft)
	}
	if got.Status != models.StatusCritical {
		t.Fatalf("expected CRITICAL, got %s", got.Status)
	}
}

func TestPredict_ShelfLifeFactorScalesBase(t *testing.T) {
	r := reading(4, 60, 0.2)
	unscaled := Predict(r, models.ProductProfile{ProductType: models.ProductTomato})
	hardy := Predict(r, models.ProductProfile{ProductType: models.ProductWheat, ShelfLifeFactor: 4})
	if hardy.DaysLeft != unscaled.DaysLeft*4 {
		t.Fatalf("expected 4x shelf life, got %v vs %v", hardy.DaysLeft, unscaled.DaysLeft)
	}
	// Zero factor means unscaled, not zero shelf life.
	if got := Predict(r, models.ProductProfile{}); got.DaysLeft != unscaled.DaysLeft {
		t.Fatalf("zero factor should be unscaled, got %v", got.DaysLeft)
	}
}

func TestPredict_NeverNegative(t *testing.T) {
	got := Predict(reading(60, 100, 2.0), models.ProductProfile{})
	if got.DaysLeft < 0 {
		t.Fatalf("days left must be clamped at 0, got %v", got.DaysLeft)
	}
	if got.Status != models.StatusCritical {
		t.Fatalf("expected CRITICAL, got %s", got.Status)
	}
}

func TestValidateReading(t *testing.T) {
	cases := []struct {
		name string
		r    models.TelemetryReading
		want error
	}{
		{"ok", reading(4, 60, 0.2), nil},
		{"nan temperature", reading(math.NaN(), 60, 0.2), ErrNonFinite},
		{"inf humidity", reading(4, math.Inf(1), 0.2), ErrNonFinite},
		{"humidity high", reading(4, 101, 0.2), ErrHumidityRange},
		{"humidity negative", reading(4, -1, 0.2), ErrHumidityRange},
		{"vibration negative", reading(4, 60, -0.1), ErrNegativeVibration},
	}
	for _, tc := range cases {
		if got := ValidateReading(tc.r); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}

	bad := reading(4, 60, 0.2)
	bad.Distance = -5
	if got := ValidateReading(bad); got != ErrNegativeDistance {
		t.Fatalf("negative distance: got %v", got)
	}
}
