// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"
	"time"
)

func TestQueryString(t *testing.T) {
	day := time.Date(2025, 1, 2, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{"no window", Query{Base: `ti:"ANNS"`}, `ti:"ANNS"`},
		{
			"day window",
			DayQuery(`ti:"ANNS" OR abs:"ANNS"`, day),
			`(ti:"ANNS" OR abs:"ANNS") AND submittedDate:[20250102000000 TO 20250102235959]`,
		},
		{
			"half window ignored",
			Query{Base: "all:graph", From: day},
			"all:graph",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayQueryNormalizesToUTCDay(t *testing.T) {
	q := DayQuery("x", time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC))
	if !q.From.Equal(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("From = %v", q.From)
	}
	if !q.To.Equal(time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("To = %v", q.To)
	}
	if !q.HasWindow() {
		t.Error("HasWindow() = false, want true")
	}
}

func TestLastPage(t *testing.T) {
	tests := []struct {
		n, size int
		want    bool
	}{
		{0, 100, true},
		{99, 100, true},
		{100, 100, false},
		{1, 1, false},
	}
	for _, tt := range tests {
		if got := LastPage(tt.n, tt.size); got != tt.want {
			t.Errorf("LastPage(%d, %d) = %v, want %v", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestPageNext(t *testing.T) {
	p := Page{Query: Query{Base: "x"}, Start: 100, Size: 100, Order: Ascending}
	next := p.Next(100)
	if next.Start != 200 {
		t.Errorf("Next().Start = %d, want 200", next.Start)
	}
	if p.Start != 100 {
		t.Error("Next must not modify the receiver")
	}
}
