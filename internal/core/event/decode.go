// This file decodes room message envelopes into typed events. Known
// commands decode strictly: a missing or mistyped field is an error,
// never a default.

package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDeserialize marks a known command whose payload does not carry
// the fields its event requires.
var ErrDeserialize = errors.New("malformed event payload")

// NotSupportedError reports a command this client has no decoder for.
// The feed drops the message and keeps running.
type NotSupportedError struct {
	Cmd string
}

// Error implements the error interface.
func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("unsupported command %q", e.Cmd)
}

// Decode turns one room message into its typed event. payload is the
// full JSON object the command arrived as.
func Decode(cmd string, payload []byte) (Event, error) {
	switch cmd {
	case "LIVE":
		return LiveStart{}, nil
	case "PREPARING":
		return LiveStop{}, nil
	case "WELCOME":
		return decodeWelcome(payload)
	case "WELCOME_GUARD":
		return decodeWelcomeGuard(payload)
	case "WARNING":
		return decodeNotice(payload, func(text string) Event { return Warning{Text: text} })
	case "CUT_OFF":
		return decodeNotice(payload, func(text string) Event { return LiveCutOff{Text: text} })
	case "DANMU_MSG":
		return decodeDanmaku(payload)
	case "SEND_GIFT":
		return decodeGift(payload)
	case "SUPER_CHAT_MESSAGE":
		return decodeSuperChat(payload)
	case "INTERACT_WORD":
		return decodeInteract(payload)
	case "GUARD_BUY":
		return decodeGuardPurchase(payload)
	default:
		return nil, &NotSupportedError{Cmd: cmd}
	}
}

// rankFrom maps a wire guard level to its rank. Zero is not valid
// here; commands that allow "no guard" handle zero before calling.
func rankFrom(level int) (GuardRank, error) {
	if level < int(GuardCaptain) || level > int(GuardGovernor) {
		return GuardNone, fmt.Errorf("%w: guard level %d out of range", ErrDeserialize, level)
	}
	return GuardRank(level), nil
}

// decodeWelcome reads a viewer entry announcement.
func decodeWelcome(payload []byte) (Event, error) {
	var msg struct {
		Data *struct {
			Uname   *string `json:"uname"`
			IsAdmin *bool   `json:"is_admin"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if msg.Data == nil || msg.Data.Uname == nil || msg.Data.IsAdmin == nil {
		return nil, fmt.Errorf("%w: WELCOME is missing fields", ErrDeserialize)
	}
	return Welcome{Username: *msg.Data.Uname, Privileged: *msg.Data.IsAdmin}, nil
}

// decodeWelcomeGuard reads a guard entry announcement.
func decodeWelcomeGuard(payload []byte) (Event, error) {
	var msg struct {
		Data *struct {
			Username   *string `json:"username"`
			GuardLevel *int    `json:"guard_level"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if msg.Data == nil || msg.Data.Username == nil || msg.Data.GuardLevel == nil {
		return nil, fmt.Errorf("%w: WELCOME_GUARD is missing fields", ErrDeserialize)
	}
	rank, err := rankFrom(*msg.Data.GuardLevel)
	if err != nil {
		return nil, err
	}
	return WelcomeGuard{Username: *msg.Data.Username, Rank: rank}, nil
}

// decodeNotice reads the moderation commands that carry a bare msg
// string at the top level of the envelope.
func decodeNotice(payload []byte, wrap func(string) Event) (Event, error) {
	var msg struct {
		Msg *string `json:"msg"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if msg.Msg == nil {
		return nil, fmt.Errorf("%w: notice is missing msg", ErrDeserialize)
	}
	return wrap(*msg.Msg), nil
}

// decodeGift reads a gift delivery.
func decodeGift(payload []byte) (Event, error) {
	var msg struct {
		Data *struct {
			Uname    *string `json:"uname"`
			Num      *uint32 `json:"num"`
			GiftName *string `json:"giftName"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if msg.Data == nil || msg.Data.Uname == nil || msg.Data.Num == nil || msg.Data.GiftName == nil {
		return nil, fmt.Errorf("%w: SEND_GIFT is missing fields", ErrDeserialize)
	}
	return GiftSent{Username: *msg.Data.Uname, Count: *msg.Data.Num, GiftName: *msg.Data.GiftName}, nil
}

// decodeSuperChat reads a paid highlighted message.
func decodeSuperChat(payload []byte) (Event, error) {
	var msg struct {
		Data *struct {
			Price    *float64 `json:"price"`
			Message  *string  `json:"message"`
			UserInfo *struct {
				Uname *string `json:"uname"`
			} `json:"user_info"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	d := msg.Data
	if d == nil || d.Price == nil || d.Message == nil || d.UserInfo == nil || d.UserInfo.Uname == nil {
		return nil, fmt.Errorf("%w: SUPER_CHAT_MESSAGE is missing fields", ErrDeserialize)
	}
	return SuperChat{Username: *d.UserInfo.Uname, Price: *d.Price, Text: *d.Message}, nil
}

// decodeInteract reads a lightweight interaction.
func decodeInteract(payload []byte) (Event, error) {
	var msg struct {
		Data *struct {
			Uname   *string `json:"uname"`
			MsgType *int    `json:"msg_type"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if msg.Data == nil || msg.Data.Uname == nil || msg.Data.MsgType == nil {
		return nil, fmt.Errorf("%w: INTERACT_WORD is missing fields", ErrDeserialize)
	}
	kind := InteractKind(*msg.Data.MsgType)
	if kind < InteractEnter || kind > InteractMutualFollow {
		return nil, fmt.Errorf("%w: interact type %d out of range", ErrDeserialize, *msg.Data.MsgType)
	}
	return Interact{Username: *msg.Data.Uname, Kind: kind}, nil
}

// decodeGuardPurchase reads a guard membership purchase.
func decodeGuardPurchase(payload []byte) (Event, error) {
	var msg struct {
		Data *struct {
			Username   *string `json:"username"`
			GuardLevel *int    `json:"guard_level"`
			Num        *uint32 `json:"num"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if msg.Data == nil || msg.Data.Username == nil || msg.Data.GuardLevel == nil || msg.Data.Num == nil {
		return nil, fmt.Errorf("%w: GUARD_BUY is missing fields", ErrDeserialize)
	}
	rank, err := rankFrom(*msg.Data.GuardLevel)
	if err != nil {
		return nil, err
	}
	return GuardPurchase{Username: *msg.Data.Username, Rank: rank, Months: *msg.Data.Num}, nil
}
