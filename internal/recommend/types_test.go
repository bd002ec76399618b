// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package recommend

import (
	"reflect"
	"testing"
)

func TestPair_OrderInsensitive(t *testing.T) {
	if Pair("A", "B") != Pair("B", "A") {
		t.Errorf("Pair(A,B) != Pair(B,A)")
	}

	counts := ItemsetCounts{}
	counts[Pair("B", "A")]++
	counts[Pair("A", "B")]++
	if got := counts[Pair("A", "B")]; got != 2 {
		t.Errorf("counts[{A,B}] = %d, want 2", got)
	}
}

func TestItemset_Size(t *testing.T) {
	tests := []struct {
		name string
		set  Itemset
		want int
	}{
		{"singleton", Singleton("A"), 1},
		{"pair", Pair("A", "B"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Size(); got != tt.want {
				t.Errorf("%s.Size() = %d, want %d", tt.set, got, tt.want)
			}
		})
	}
}

func TestItemset_Items(t *testing.T) {
	tests := []struct {
		name string
		set  Itemset
		want []string
	}{
		{"singleton", Singleton("X"), []string{"X"}},
		{"pair sorted", Pair("Z", "M"), []string{"M", "Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Items(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s.Items() = %v, want %v", tt.set, got, tt.want)
			}
		})
	}
}

func TestItemset_ContainsAndOther(t *testing.T) {
	p := Pair("A", "B")

	tests := []struct {
		name         string
		item         string
		wantContains bool
		wantOther    string
	}{
		{"first member", "A", true, "B"},
		{"second member", "B", true, "A"},
		{"non member", "C", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.item); got != tt.wantContains {
				t.Errorf("Contains(%q) = %v, want %v", tt.item, got, tt.wantContains)
			}
			if got := p.Other(tt.item); got != tt.wantOther {
				t.Errorf("Other(%q) = %q, want %q", tt.item, got, tt.wantOther)
			}
		})
	}

	if got := Singleton("A").Other("A"); got != "" {
		t.Errorf("Singleton.Other() = %q, want empty", got)
	}
	if Singleton("A").Contains("") {
		t.Error("Singleton(A).Contains(\"\") = true, want false")
	}
}

func TestItemset_String(t *testing.T) {
	if got := Pair("b", "a").String(); got != "{a,b}" {
		t.Errorf("String() = %q, want {a,b}", got)
	}
	if got := Singleton("a").String(); got != "{a}" {
		t.Errorf("String() = %q, want {a}", got)
	}
}
