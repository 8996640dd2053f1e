package scores

import (
	"testing"

	"github.com/boxtrackhq/boxtrack-backend/internal/features/movements"
)

func TestIsBetterTimeComparesLow(t *testing.T) {
	if !IsBetter(movements.ScoreTypeTime, 180, 200) {
		t.Fatal("a faster time is better")
	}
	if IsBetter(movements.ScoreTypeTime, 220, 200) {
		t.Fatal("a slower time is not better")
	}
}

func TestIsBetterWeightAndRepsCompareHigh(t *testing.T) {
	if !IsBetter(movements.ScoreTypeWeight, 110, 100) {
		t.Fatal("a heavier lift is better")
	}
	if IsBetter(movements.ScoreTypeWeight, 90, 100) {
		t.Fatal("a lighter lift is not better")
	}
	if !IsBetter(movements.ScoreTypeReps, 25, 20) {
		t.Fatal("more reps are better")
	}
}

func TestIsBetterTiesAreNotImprovements(t *testing.T) {
	if IsBetter(movements.ScoreTypeTime, 200, 200) {
		t.Fatal("equal time is not an improvement")
	}
	if IsBetter(movements.ScoreTypeWeight, 100, 100) {
		t.Fatal("equal weight is not an improvement")
	}
}
