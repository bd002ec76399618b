// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package algorithms

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/copurchase/internal/recommend"
)

func TestGroupTransactions(t *testing.T) {
	tests := []struct {
		name   string
		events []recommend.Event
		want   recommend.Transactions
	}{
		{
			name:   "empty input",
			events: nil,
			want:   recommend.Transactions{},
		},
		{
			name: "groups by session keeping order",
			events: []recommend.Event{
				{SessionID: "s1", ItemID: "B"},
				{SessionID: "s2", ItemID: "C"},
				{SessionID: "s1", ItemID: "A"},
			},
			want: recommend.Transactions{
				"s1": {"B", "A"},
				"s2": {"C"},
			},
		},
		{
			name: "keeps duplicates",
			events: []recommend.Event{
				{SessionID: "s1", ItemID: "A"},
				{SessionID: "s1", ItemID: "A"},
				{SessionID: "s1", ItemID: "B"},
			},
			want: recommend.Transactions{
				"s1": {"A", "A", "B"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GroupTransactions(tt.events)
			if err != nil {
				t.Fatalf("GroupTransactions() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GroupTransactions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupTransactions_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		events    []recommend.Event
		wantIndex int
		wantField string
	}{
		{
			name:      "missing session id",
			events:    []recommend.Event{{SessionID: "s1", ItemID: "A"}, {ItemID: "B"}},
			wantIndex: 1,
			wantField: "session_id",
		},
		{
			name:      "missing item id",
			events:    []recommend.Event{{SessionID: "s1"}},
			wantIndex: 0,
			wantField: "content_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GroupTransactions(tt.events)
			if got != nil {
				t.Errorf("GroupTransactions() = %v, want nil", got)
			}

			var ve *recommend.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("GroupTransactions() error = %v, want *ValidationError", err)
			}
			if ve.Index != tt.wantIndex || ve.Field != tt.wantField {
				t.Errorf("ValidationError = {%d %q}, want {%d %q}", ve.Index, ve.Field, tt.wantIndex, tt.wantField)
			}
		})
	}
}

func TestGroupTransactions_FieldNamesMatchJSON(t *testing.T) {
	eventType := reflect.TypeOf(recommend.Event{})

	tests := []struct {
		structField string
		event       recommend.Event
	}{
		{"SessionID", recommend.Event{ItemID: "A"}},
		{"ItemID", recommend.Event{SessionID: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.structField, func(t *testing.T) {
			f, ok := eventType.FieldByName(tt.structField)
			if !ok {
				t.Fatalf("Event has no field %s", tt.structField)
			}
			if tag := f.Tag.Get("validate"); tag != "" {
				t.Errorf("%s carries validate tag %q; events are checked by GroupTransactions", tt.structField, tag)
			}

			_, err := GroupTransactions([]recommend.Event{tt.event})
			var ve *recommend.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("GroupTransactions() error = %v, want *ValidationError", err)
			}
			if want := f.Tag.Get("json"); ve.Field != want {
				t.Errorf("ValidationError.Field = %q, want %q", ve.Field, want)
			}
		})
	}
}
