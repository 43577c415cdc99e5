package date

import (
	"slices"
	"testing"
)

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}

	h.Append(d1, "overwritten")
	if v, _ := h.Get(d1); v != "overwritten" || h.Len() != 2 {
		t.Errorf("Append(d1) again = %q (len %d) want %q (len 2)", v, h.Len(), "overwritten")
	}
}

func TestFirstFrom(t *testing.T) {
	var h History[int]
	h.Append(New(2020, 12, 31), 1)
	h.Append(New(2021, 1, 4), 2)
	h.Append(New(2021, 1, 5), 3)

	day, v, ok := h.FirstFrom(New(2021, 1, 1))
	if !ok || day != New(2021, 1, 4) || v != 2 {
		t.Errorf("FirstFrom(2021-01-01) = %v, %v, %v want 2021-01-04, 2, true", day, v, ok)
	}
	if _, _, ok := h.FirstFrom(New(2021, 1, 6)); ok {
		t.Errorf("FirstFrom(2021-01-06) found a value, want none")
	}
}

func TestDays(t *testing.T) {
	var a, b History[int]
	a.Append(New(2021, 1, 1), 0).Append(New(2021, 1, 3), 0)
	b.Append(New(2021, 1, 2), 0).Append(New(2021, 1, 3), 0)

	got := slices.Collect(Days(&a, &b))
	want := []Date{New(2021, 1, 1), New(2021, 1, 2), New(2021, 1, 3)}
	if !slices.Equal(got, want) {
		t.Errorf("Days() = %v want %v", got, want)
	}
}
