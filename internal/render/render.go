// This file renders room events as colored terminal lines, one
// consumer-facing line per event.

package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"danwatch/internal/core/event"
)

var (
	hiGreen   = color.New(color.FgHiGreen)
	hiBlue    = color.New(color.FgHiBlue)
	hiMagenta = color.New(color.FgHiMagenta)
	hiYellow  = color.New(color.FgHiYellow)
	hiRed     = color.New(color.FgHiRed)
)

// badgeTiers holds the fan badge colors, four levels per tier.
var badgeTiers = []*color.Color{
	color.New(color.FgGreen),
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgRed),
	color.New(color.FgYellow),
	color.New(color.FgHiGreen),
	color.New(color.FgHiBlue),
	color.New(color.FgHiMagenta),
	color.New(color.FgHiRed),
	color.New(color.FgHiYellow),
}

// Renderer writes room events as human-readable lines.
type Renderer struct {
	out io.Writer
}

// New returns a renderer writing to out. Color output is controlled
// globally through color.NoColor.
func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Handle renders one event. It is the consumer callback wired into a
// feed session.
func (r *Renderer) Handle(ev event.Event) {
	switch e := ev.(type) {
	case event.LiveStart:
		fmt.Fprintf(r.out, " * %s\n", hiGreen.Sprint("Live started"))
	case event.LiveStop:
		fmt.Fprintf(r.out, " * %s\n", hiRed.Sprint("Live ended"))
	case event.Welcome:
		fmt.Fprintf(r.out, " * %s entered the room\n", userColor(e.Username, e.Privileged, event.GuardNone))
	case event.WelcomeGuard:
		fmt.Fprintf(r.out, " * %s entered the room\n", userColor(e.Username, false, e.Rank))
	case event.Warning:
		fmt.Fprintf(r.out, " * %s %s\n", hiRed.Sprint("Moderator warning"), hiRed.Sprint(e.Text))
	case event.LiveCutOff:
		fmt.Fprintf(r.out, " * %s %s\n", hiRed.Sprint("Stream cut off"), hiRed.Sprint(e.Text))
	case event.Danmaku:
		prefix := ""
		if e.Badge != nil {
			prefix = fmt.Sprintf("[%s %d] ", badgeLabel(*e.Badge), e.Badge.Level)
		}
		fmt.Fprintf(r.out, "%s%s\n : %s\n", prefix, userColor(e.Username, e.Privileged, e.Rank), e.Text)
	case event.GiftSent:
		fmt.Fprintf(r.out, " * %s sent %s x %s\n",
			hiGreen.Sprint(e.Username), hiYellow.Sprint(e.Count), hiMagenta.Sprint(e.GiftName))
	case event.SuperChat:
		fmt.Fprintf(r.out, "(%s) <%s> %s\n",
			hiYellow.Sprintf("$ %.2f", e.Price), hiGreen.Sprint(e.Username), hiYellow.Sprint(e.Text))
	case event.Interact:
		fmt.Fprintf(r.out, " * %s %s\n", hiGreen.Sprint(e.Username), interactPhrase(e.Kind))
	case event.GuardPurchase:
		fmt.Fprintf(r.out, " * %s became a %s (%s months)\n",
			rankColor(e.Rank).Sprint(e.Username),
			rankColor(e.Rank).Sprint(rankTitle(e.Rank)),
			hiYellow.Sprint(e.Months))
	}
}

// userColor paints a username: privileged users red, others by their
// guard rank.
func userColor(name string, privileged bool, rank event.GuardRank) string {
	if privileged {
		return hiRed.Sprint(name)
	}
	return rankColor(rank).Sprint(name)
}

// rankColor maps a guard rank to its display color.
func rankColor(rank event.GuardRank) *color.Color {
	switch rank {
	case event.GuardCaptain:
		return hiBlue
	case event.GuardCommander:
		return hiMagenta
	case event.GuardGovernor:
		return hiYellow
	default:
		return hiGreen
	}
}

// rankTitle names a guard rank for display.
func rankTitle(rank event.GuardRank) string {
	switch rank {
	case event.GuardCommander:
		return "Commander"
	case event.GuardGovernor:
		return "Governor"
	default:
		return "Captain"
	}
}

// badgeLabel paints a badge label by its level tier. Levels outside
// 1..40 render unstyled.
func badgeLabel(badge event.FanBadge) string {
	if badge.Level < 1 || badge.Level > 40 {
		return badge.Label
	}
	return badgeTiers[(badge.Level-1)/4].Sprint(badge.Label)
}

// interactPhrase describes an interaction kind.
func interactPhrase(kind event.InteractKind) string {
	switch kind {
	case event.InteractFollow:
		return "followed the streamer"
	case event.InteractShare:
		return "shared the room"
	case event.InteractSpecialFollow:
		return "special followed the streamer"
	case event.InteractMutualFollow:
		return "followed the streamer back"
	default:
		return "entered the room"
	}
}
