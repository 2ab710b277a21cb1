// This file tests the positional DANMU_MSG decoder.
package event

import (
	"encoding/json"
	"errors"
	"testing"
)

// danmakuEnvelope marshals an info array into a DANMU_MSG payload.
func danmakuEnvelope(t *testing.T, info []any) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"cmd": "DANMU_MSG", "info": info})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return payload
}

// TestDecodeDanmaku verifies the positional layout: text, sender block,
// badge pair and guard level all end up on the event.
func TestDecodeDanmaku(t *testing.T) {
	info := []any{
		[]any{0, 1, 25}, // display settings, unused
		"hello room",
		[]any{12345, "Alice", 1},
		[]any{21, "FanClub", 67890, "Anchor"},
		0, 0, 0,
		3,
	}

	ev, err := Decode("DANMU_MSG", danmakuEnvelope(t, info))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	d, ok := ev.(Danmaku)
	if !ok {
		t.Fatalf("Decode = %T, want Danmaku", ev)
	}
	if d.Username != "Alice" || d.Text != "hello room" {
		t.Fatalf("danmaku = %+v", d)
	}
	if !d.Privileged {
		t.Error("privilege flag lost")
	}
	if d.Rank != GuardGovernor {
		t.Errorf("Rank = %v, want governor", d.Rank)
	}
	if d.Badge == nil || d.Badge.Label != "FanClub" || d.Badge.Level != 21 {
		t.Errorf("Badge = %+v", d.Badge)
	}
}

// TestDecodeDanmakuNoBadge verifies an empty badge array means no
// badge rather than an error.
func TestDecodeDanmakuNoBadge(t *testing.T) {
	info := []any{0, "hi", []any{1, "Bob", 0}, []any{}, 0, 0, 0, 0}

	ev, err := Decode("DANMU_MSG", danmakuEnvelope(t, info))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	d := ev.(Danmaku)
	if d.Badge != nil {
		t.Errorf("Badge = %+v, want nil", d.Badge)
	}
	if d.Privileged {
		t.Error("privilege flag invented")
	}
	if d.Rank != GuardNone {
		t.Errorf("Rank = %v, want none", d.Rank)
	}
}

// TestDecodeDanmakuBadgeHalf verifies a badge with only one element is
// malformed, not a badge with defaults.
func TestDecodeDanmakuBadgeHalf(t *testing.T) {
	info := []any{0, "hi", []any{1, "Bob", 0}, []any{9}, 0, 0, 0, 0}

	if _, err := Decode("DANMU_MSG", danmakuEnvelope(t, info)); !errors.Is(err, ErrDeserialize) {
		t.Fatalf("Decode error = %v, want ErrDeserialize", err)
	}
}

// TestDecodeDanmakuTruncatedInfo verifies an info array shorter than
// the guard-level index is rejected.
func TestDecodeDanmakuTruncatedInfo(t *testing.T) {
	info := []any{0, "hi", []any{1, "Bob", 0}, []any{}}

	if _, err := Decode("DANMU_MSG", danmakuEnvelope(t, info)); !errors.Is(err, ErrDeserialize) {
		t.Fatalf("Decode error = %v, want ErrDeserialize", err)
	}
}

// TestDecodeDanmakuWrongTypes verifies each positional slot enforces
// its type.
func TestDecodeDanmakuWrongTypes(t *testing.T) {
	cases := []struct {
		name string
		info []any
	}{
		{"text is a number", []any{0, 42, []any{1, "Bob", 0}, []any{}, 0, 0, 0, 0}},
		{"text is null", []any{0, nil, []any{1, "Bob", 0}, []any{}, 0, 0, 0, 0}},
		{"sender block is a string", []any{0, "hi", "Bob", []any{}, 0, 0, 0, 0}},
		{"sender block too short", []any{0, "hi", []any{1, "Bob"}, []any{}, 0, 0, 0, 0}},
		{"username is a number", []any{0, "hi", []any{1, 99, 0}, []any{}, 0, 0, 0, 0}},
		{"badge is null", []any{0, "hi", []any{1, "Bob", 0}, nil, 0, 0, 0, 0}},
		{"badge level is a string", []any{0, "hi", []any{1, "Bob", 0}, []any{"9", "Club"}, 0, 0, 0, 0}},
		{"guard level is a string", []any{0, "hi", []any{1, "Bob", 0}, []any{}, 0, 0, 0, "3"}},
		{"guard level is null", []any{0, "hi", []any{1, "Bob", 0}, []any{}, 0, 0, 0, nil}},
		{"guard level out of range", []any{0, "hi", []any{1, "Bob", 0}, []any{}, 0, 0, 0, 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode("DANMU_MSG", danmakuEnvelope(t, tc.info)); !errors.Is(err, ErrDeserialize) {
				t.Fatalf("error = %v, want ErrDeserialize", err)
			}
		})
	}
}

// TestDecodeDanmakuGuardRanks verifies each wire guard level maps to
// its rank.
func TestDecodeDanmakuGuardRanks(t *testing.T) {
	want := map[int]GuardRank{0: GuardNone, 1: GuardCaptain, 2: GuardCommander, 3: GuardGovernor}
	for level, rank := range want {
		info := []any{0, "hi", []any{1, "Bob", 0}, []any{}, 0, 0, 0, level}
		ev, err := Decode("DANMU_MSG", danmakuEnvelope(t, info))
		if err != nil {
			t.Fatalf("Decode(level=%d) failed: %v", level, err)
		}
		if got := ev.(Danmaku).Rank; got != rank {
			t.Errorf("level %d = %v, want %v", level, got, rank)
		}
	}
}
