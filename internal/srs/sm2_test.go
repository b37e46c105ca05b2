package srs

import (
	"math"
	"testing"
	"time"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestReview_Intervals(t *testing.T) {
	c := NewCard("l", "w", now)
	if !c.Due(now) {
		t.Fatal("new card should be due")
	}
	wantIntervals := []int{1, 6, 17}
	for i, want := range wantIntervals {
		c = Review(c, 5, now)
		if c.Interval != want {
			t.Errorf("review %d: interval %d, want %d", i+1, c.Interval, want)
		}
		if c.Repetitions != i+1 {
			t.Errorf("review %d: repetitions %d, want %d", i+1, c.Repetitions, i+1)
		}
	}
	if !c.NextReview.Equal(now.AddDate(0, 0, 17)) {
		t.Errorf("NextReview %v", c.NextReview)
	}
	if c.Due(now) {
		t.Error("card should not be due right after review")
	}
}

func TestReview_EaseFactor(t *testing.T) {
	tests := []struct {
		quality int
		want    float64
	}{
		{5, 2.6},
		{4, 2.5},
		{3, 2.36},
		{2, 2.18},
		{0, 1.7},
	}
	for _, tt := range tests {
		got := Review(NewCard("l", "w", now), tt.quality, now).EaseFactor
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("quality %d: ease %v, want %v", tt.quality, got, tt.want)
		}
	}
}

func TestReview_LapseResets(t *testing.T) {
	c := NewCard("l", "w", now)
	for i := 0; i < 3; i++ {
		c = Review(c, 5, now)
	}
	c = Review(c, 1, now)
	if c.Interval != 1 || c.Repetitions != 0 {
		t.Errorf("after lapse interval %d repetitions %d, want 1 0", c.Interval, c.Repetitions)
	}
}

func TestReview_EaseFloor(t *testing.T) {
	c := NewCard("l", "w", now)
	for i := 0; i < 10; i++ {
		c = Review(c, 0, now)
	}
	if c.EaseFactor != MinEaseFactor {
		t.Errorf("ease %v, want floor %v", c.EaseFactor, MinEaseFactor)
	}
}

func TestReview_ClampsQuality(t *testing.T) {
	high := Review(NewCard("l", "w", now), 9, now)
	five := Review(NewCard("l", "w", now), 5, now)
	if high != five {
		t.Errorf("quality 9 = %+v, want same as 5", high)
	}
}

func TestQuality(t *testing.T) {
	tests := []struct {
		success       bool
		hints, length int
		want          int
	}{
		{true, 0, 5, 5},
		{true, 1, 5, 4},
		{true, 2, 10, 4},
		{true, 3, 10, 3},
		{true, 5, 10, 3},
		{true, 6, 10, 2},
		{true, 4, 5, 2},
		{false, 5, 5, 1},
	}
	for _, tt := range tests {
		if got := Quality(tt.success, tt.hints, tt.length); got != tt.want {
			t.Errorf("Quality(%v, %d, %d) = %d, want %d", tt.success, tt.hints, tt.length, got, tt.want)
		}
	}
}
