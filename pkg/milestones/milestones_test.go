package milestones

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	t.Run("reports every threshold at or below the ratio", func(t *testing.T) {
		t.Parallel()

		crossed, updated := Evaluate(0.6, DefaultThresholds, nil)
		assert.Equal(t, []float64{0.25, 0.5}, crossed)
		assert.Equal(t, []float64{0.25, 0.5}, updated)
	})

	t.Run("exact threshold counts as crossed", func(t *testing.T) {
		t.Parallel()

		crossed, _ := Evaluate(0.5, DefaultThresholds, nil)
		assert.Equal(t, []float64{0.25, 0.5}, crossed)
	})

	t.Run("idempotent once reported", func(t *testing.T) {
		t.Parallel()

		first, updated := Evaluate(0.8, DefaultThresholds, nil)
		assert.Equal(t, []float64{0.25, 0.5, 0.75}, first)

		again, final := Evaluate(0.8, DefaultThresholds, updated)
		assert.Empty(t, again)
		assert.Equal(t, updated, final)
	})

	t.Run("monotonic as the reader advances", func(t *testing.T) {
		t.Parallel()

		reported, updated := Evaluate(0.3, DefaultThresholds, nil)
		assert.Equal(t, []float64{0.25}, reported)

		crossed, final := Evaluate(1.0, DefaultThresholds, updated)
		assert.Equal(t, []float64{0.5, 0.75, 1.0}, crossed)
		assert.Equal(t, []float64{0.25, 0.5, 0.75, 1.0}, final)
	})

	t.Run("updated set is the union of reported and crossings", func(t *testing.T) {
		t.Parallel()

		crossed, updated := Evaluate(0.75, DefaultThresholds, []float64{0.25})
		assert.Equal(t, []float64{0.5, 0.75}, crossed)
		assert.Equal(t, []float64{0.25, 0.5, 0.75}, updated)
	})

	t.Run("clamps out-of-range ratios", func(t *testing.T) {
		t.Parallel()

		crossed, _ := Evaluate(-0.5, DefaultThresholds, nil)
		assert.Empty(t, crossed)

		crossed, _ = Evaluate(1.7, DefaultThresholds, nil)
		assert.Equal(t, []float64{0.25, 0.5, 0.75, 1.0}, crossed)
	})

	t.Run("empty threshold set", func(t *testing.T) {
		t.Parallel()

		crossed, updated := Evaluate(0.9, nil, nil)
		assert.Empty(t, crossed)
		assert.Empty(t, updated)
	})

	t.Run("unsorted thresholds come back ascending", func(t *testing.T) {
		t.Parallel()

		crossed, _ := Evaluate(1.0, []float64{0.75, 0.25, 0.5}, nil)
		assert.Equal(t, []float64{0.25, 0.5, 0.75}, crossed)
	})
}

func TestRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.25, Ratio(1, 4))
	assert.Equal(t, 1.0, Ratio(4, 4))
	assert.Equal(t, 0.0, Ratio(3, 0))
	assert.Equal(t, 0.0, Ratio(-2, 4))
	assert.Equal(t, 1.0, Ratio(9, 4))
}
