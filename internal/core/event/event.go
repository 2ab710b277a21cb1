// This file defines the typed room events delivered by the feed and
// the closed value sets they carry.

package event

import "fmt"

// Event is one decoded room event. The set of implementations is
// closed; consumers switch on the concrete type.
type Event interface {
	// Name returns a stable lowercase identifier for the event kind,
	// used for logs and metric labels.
	Name() string
	event()
}

// GuardRank is a paid membership tier, ordered by numeric value.
type GuardRank uint8

// Guard ranks as they appear on the wire.
const (
	GuardNone      GuardRank = 0
	GuardCaptain   GuardRank = 1
	GuardCommander GuardRank = 2
	GuardGovernor  GuardRank = 3
)

// String returns the tier name.
func (r GuardRank) String() string {
	switch r {
	case GuardNone:
		return "none"
	case GuardCaptain:
		return "captain"
	case GuardCommander:
		return "commander"
	case GuardGovernor:
		return "governor"
	default:
		return fmt.Sprintf("guard(%d)", uint8(r))
	}
}

// InteractKind distinguishes the lightweight interaction events.
type InteractKind int

// Interaction kinds as they appear on the wire.
const (
	InteractEnter         InteractKind = 1
	InteractFollow        InteractKind = 2
	InteractShare         InteractKind = 3
	InteractSpecialFollow InteractKind = 4
	InteractMutualFollow  InteractKind = 5
)

// String returns the interaction name.
func (k InteractKind) String() string {
	switch k {
	case InteractEnter:
		return "enter"
	case InteractFollow:
		return "follow"
	case InteractShare:
		return "share"
	case InteractSpecialFollow:
		return "special_follow"
	case InteractMutualFollow:
		return "mutual_follow"
	default:
		return fmt.Sprintf("interact(%d)", int(k))
	}
}

// FanBadge is the room loyalty badge worn by a chatting viewer.
type FanBadge struct {
	Label string
	Level uint32
}

// LiveStart signals the room went live.
type LiveStart struct{}

// LiveStop signals the room went back to the preparing screen.
type LiveStop struct{}

// Welcome announces a viewer entering the room.
type Welcome struct {
	Username   string
	Privileged bool
}

// WelcomeGuard announces a guard member entering the room.
type WelcomeGuard struct {
	Username string
	Rank     GuardRank
}

// Warning is a moderation notice shown to the room.
type Warning struct {
	Text string
}

// LiveCutOff signals the stream was cut by moderation.
type LiveCutOff struct {
	Text string
}

// Danmaku is one chat message.
type Danmaku struct {
	Username   string
	Text       string
	Privileged bool
	Rank       GuardRank // GuardNone when the sender holds no guard
	Badge      *FanBadge // nil when the sender wears no badge
}

// GiftSent reports a gift delivery.
type GiftSent struct {
	Username string
	Count    uint32
	GiftName string
}

// SuperChat is a paid highlighted message.
type SuperChat struct {
	Username string
	Price    float64
	Text     string
}

// Interact reports a lightweight viewer interaction.
type Interact struct {
	Username string
	Kind     InteractKind
}

// GuardPurchase reports a guard membership purchase.
type GuardPurchase struct {
	Username string
	Rank     GuardRank
	Months   uint32
}

// Name implements Event.
func (LiveStart) Name() string { return "live_start" }

// Name implements Event.
func (LiveStop) Name() string { return "live_stop" }

// Name implements Event.
func (Welcome) Name() string { return "welcome" }

// Name implements Event.
func (WelcomeGuard) Name() string { return "welcome_guard" }

// Name implements Event.
func (Warning) Name() string { return "warning" }

// Name implements Event.
func (LiveCutOff) Name() string { return "cut_off" }

// Name implements Event.
func (Danmaku) Name() string { return "danmaku" }

// Name implements Event.
func (GiftSent) Name() string { return "gift" }

// Name implements Event.
func (SuperChat) Name() string { return "super_chat" }

// Name implements Event.
func (Interact) Name() string { return "interact" }

// Name implements Event.
func (GuardPurchase) Name() string { return "guard_purchase" }

// event implements Event.
func (LiveStart) event() {}

// event implements Event.
func (LiveStop) event() {}

// event implements Event.
func (Welcome) event() {}

// event implements Event.
func (WelcomeGuard) event() {}

// event implements Event.
func (Warning) event() {}

// event implements Event.
func (LiveCutOff) event() {}

// event implements Event.
func (Danmaku) event() {}

// event implements Event.
func (GiftSent) event() {}

// event implements Event.
func (SuperChat) event() {}

// event implements Event.
func (Interact) event() {}

// event implements Event.
func (GuardPurchase) event() {}
