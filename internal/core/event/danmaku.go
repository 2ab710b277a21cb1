// This file decodes the positional DANMU_MSG payload. Chat messages
// arrive as a bare JSON array instead of named fields, so every value
// is picked out by index and checked by type.

package event

import (
	"encoding/json"
	"fmt"
)

// decodeDanmaku reads a chat message from its positional info array.
// Layout: info[1] text, info[2][1] username, info[2][2] privilege
// flag, info[3] fan badge pair, info[7] guard level.
func decodeDanmaku(payload []byte) (Event, error) {
	var msg struct {
		Info []json.RawMessage `json:"info"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if len(msg.Info) < 8 {
		return nil, fmt.Errorf("%w: DANMU_MSG info has %d elements", ErrDeserialize, len(msg.Info))
	}

	text, err := asString(msg.Info[1])
	if err != nil {
		return nil, err
	}
	user, err := asArray(msg.Info[2])
	if err != nil {
		return nil, err
	}
	if len(user) < 3 {
		return nil, fmt.Errorf("%w: DANMU_MSG user block has %d elements", ErrDeserialize, len(user))
	}
	username, err := asString(user[1])
	if err != nil {
		return nil, err
	}
	admin, err := asNumber(user[2])
	if err != nil {
		return nil, err
	}
	badge, err := badgeFrom(msg.Info[3])
	if err != nil {
		return nil, err
	}
	level, err := asNumber(msg.Info[7])
	if err != nil {
		return nil, err
	}
	rank := GuardNone
	if level != 0 {
		rank, err = rankFrom(int(level))
		if err != nil {
			return nil, err
		}
	}

	return Danmaku{
		Username:   username,
		Text:       text,
		Privileged: admin != 0,
		Rank:       rank,
		Badge:      badge,
	}, nil
}

// badgeFrom reads the optional fan badge pair. An empty array means no
// badge; a present badge needs both its level and label.
func badgeFrom(raw json.RawMessage) (*FanBadge, error) {
	pair, err := asArray(raw)
	if err != nil {
		return nil, err
	}
	if len(pair) == 0 {
		return nil, nil
	}
	if len(pair) < 2 {
		return nil, fmt.Errorf("%w: fan badge has %d elements", ErrDeserialize, len(pair))
	}
	level, err := asNumber(pair[0])
	if err != nil {
		return nil, err
	}
	label, err := asString(pair[1])
	if err != nil {
		return nil, err
	}
	return &FanBadge{Label: label, Level: uint32(level)}, nil
}

// asString unmarshals an element that must be a JSON string. Null is
// not a string.
func asString(raw json.RawMessage) (string, error) {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if s == nil {
		return "", fmt.Errorf("%w: expected a JSON string", ErrDeserialize)
	}
	return *s, nil
}

// asNumber unmarshals an element that must be a JSON number. Null is
// not a number.
func asNumber(raw json.RawMessage) (float64, error) {
	var n *float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if n == nil {
		return 0, fmt.Errorf("%w: expected a JSON number", ErrDeserialize)
	}
	return *n, nil
}

// asArray unmarshals an element that must be a JSON array. Null is
// rejected along with every other non-array value.
func asArray(raw json.RawMessage) ([]json.RawMessage, error) {
	var a []json.RawMessage
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrDeserialize)
	}
	return a, nil
}
