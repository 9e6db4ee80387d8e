package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestQuickSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		people       int
		tipPercent   float64
		wantErr      bool
		validateFunc func(t *testing.T, r QuickSplitResult)
	}{
		{
			name:       "even split with tip",
			total:      100,
			people:     2,
			tipPercent: 10,
			validateFunc: func(t *testing.T, r QuickSplitResult) {
				if !r.Tip.Equal(decimal.NewFromInt(10)) {
					t.Errorf("tip = %s, want 10", r.Tip)
				}
				if !r.GrandTotal.Equal(decimal.NewFromInt(110)) {
					t.Errorf("grand total = %s, want 110", r.GrandTotal)
				}
				for i, s := range r.Shares {
					if !s.Equal(decimal.NewFromInt(55)) {
						t.Errorf("share %d = %s, want 55", i, s)
					}
				}
			},
		},
		{
			name:       "leftover cents go to the first share",
			total:      100,
			people:     3,
			tipPercent: 0,
			validateFunc: func(t *testing.T, r QuickSplitResult) {
				// 100 / 3 = 33.33 each, one cent left over
				want := []string{"33.34", "33.33", "33.33"}
				sum := decimal.Zero
				for i, s := range r.Shares {
					if s.StringFixed(2) != want[i] {
						t.Errorf("share %d = %s, want %s", i, s.StringFixed(2), want[i])
					}
					sum = sum.Add(s)
				}
				if !sum.Equal(r.GrandTotal) {
					t.Errorf("shares sum to %s, want %s", sum, r.GrandTotal)
				}
			},
		},
		{
			name:       "single person pays everything",
			total:      42.5,
			people:     1,
			tipPercent: 15,
			validateFunc: func(t *testing.T, r QuickSplitResult) {
				if r.Shares[0].StringFixed(2) != "48.88" {
					t.Errorf("share = %s, want 48.88", r.Shares[0].StringFixed(2))
				}
			},
		},
		{
			name:    "zero people should error",
			total:   10,
			people:  0,
			wantErr: true,
		},
		{
			name:   "largest party is allowed",
			total:  100,
			people: MaxQuickSplitPeople,
			validateFunc: func(t *testing.T, r QuickSplitResult) {
				if len(r.Shares) != MaxQuickSplitPeople {
					t.Errorf("got %d shares, want %d", len(r.Shares), MaxQuickSplitPeople)
				}
			},
		},
		{
			name:    "too many people should error",
			total:   100,
			people:  MaxQuickSplitPeople + 1,
			wantErr: true,
		},
		{
			name:    "huge party should error",
			total:   100,
			people:  2147483647,
			wantErr: true,
		},
		{
			name:    "negative total should error",
			total:   -1,
			people:  2,
			wantErr: true,
		},
		{
			name:       "negative tip should error",
			total:      10,
			people:     2,
			tipPercent: -5,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := QuickSplit(tt.total, tt.people, tt.tipPercent)
			if (err != nil) != tt.wantErr {
				t.Errorf("QuickSplit() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.validateFunc != nil {
				tt.validateFunc(t, r)
			}
		})
	}
}
