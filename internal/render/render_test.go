// Tests for the event renderer, run with color disabled so the
// expected lines are plain text.

package render

import (
	"bytes"
	"testing"

	"github.com/fatih/color"

	"danwatch/internal/core/event"
)

// plainRender renders one event with colors off and returns the output.
func plainRender(t *testing.T, ev event.Event) string {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var buf bytes.Buffer
	New(&buf).Handle(ev)
	return buf.String()
}

func TestRenderLines(t *testing.T) {
	badge := &event.FanBadge{Label: "FanClub", Level: 21}
	cases := []struct {
		name string
		ev   event.Event
		want string
	}{
		{"live start", event.LiveStart{}, " * Live started\n"},
		{"live stop", event.LiveStop{}, " * Live ended\n"},
		{"welcome", event.Welcome{Username: "Alice"}, " * Alice entered the room\n"},
		{"welcome guard", event.WelcomeGuard{Username: "Bob", Rank: event.GuardCaptain}, " * Bob entered the room\n"},
		{"warning", event.Warning{Text: "watch it"}, " * Moderator warning watch it\n"},
		{"cut off", event.LiveCutOff{Text: "rule violation"}, " * Stream cut off rule violation\n"},
		{"danmaku", event.Danmaku{Username: "Alice", Text: "hello"}, "Alice\n : hello\n"},
		{"danmaku with badge", event.Danmaku{Username: "Alice", Text: "hi", Badge: badge}, "[FanClub 21] Alice\n : hi\n"},
		{"gift", event.GiftSent{Username: "Carol", Count: 3, GiftName: "Rose"}, " * Carol sent 3 x Rose\n"},
		{"super chat", event.SuperChat{Username: "Dan", Price: 30, Text: "keep going"}, "($ 30.00) <Dan> keep going\n"},
		{"interact enter", event.Interact{Username: "Eve", Kind: event.InteractEnter}, " * Eve entered the room\n"},
		{"interact follow", event.Interact{Username: "Eve", Kind: event.InteractFollow}, " * Eve followed the streamer\n"},
		{"interact share", event.Interact{Username: "Eve", Kind: event.InteractShare}, " * Eve shared the room\n"},
		{"guard purchase", event.GuardPurchase{Username: "Frank", Rank: event.GuardGovernor, Months: 12}, " * Frank became a Governor (12 months)\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := plainRender(t, tc.ev)
			if got != tc.want {
				t.Fatalf("rendered %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderColorsUsernameByRank(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = old })

	var buf bytes.Buffer
	New(&buf).Handle(event.WelcomeGuard{Username: "Bob", Rank: event.GuardGovernor})
	out := buf.String()
	want := hiYellow.Sprint("Bob")
	if !bytes.Contains([]byte(out), []byte(want)) {
		t.Fatalf("output %q does not contain governor-colored name %q", out, want)
	}
}

func TestBadgeLabelTiers(t *testing.T) {
	cases := []struct {
		level uint32
		color *color.Color
	}{
		{1, badgeTiers[0]},
		{4, badgeTiers[0]},
		{5, badgeTiers[1]},
		{21, badgeTiers[5]},
		{40, badgeTiers[9]},
	}
	old := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = old })

	for _, tc := range cases {
		got := badgeLabel(event.FanBadge{Label: "x", Level: tc.level})
		if want := tc.color.Sprint("x"); got != want {
			t.Fatalf("level %d: badge label %q, want %q", tc.level, got, want)
		}
	}
	if got := badgeLabel(event.FanBadge{Label: "x", Level: 41}); got != "x" {
		t.Fatalf("level 41: badge label %q, want unstyled %q", got, "x")
	}
	if got := badgeLabel(event.FanBadge{Label: "x", Level: 0}); got != "x" {
		t.Fatalf("level 0: badge label %q, want unstyled %q", got, "x")
	}
}
