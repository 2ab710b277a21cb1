// This file tests decoding of the named-field room commands.
package event

import (
	"errors"
	"testing"
)

// TestDecodeLifecycleCommands verifies the bare lifecycle commands map
// to their events without reading any payload fields.
func TestDecodeLifecycleCommands(t *testing.T) {
	ev, err := Decode("LIVE", []byte(`{"cmd":"LIVE","roomid":1029}`))
	if err != nil {
		t.Fatalf("Decode(LIVE) failed: %v", err)
	}
	if _, ok := ev.(LiveStart); !ok {
		t.Fatalf("Decode(LIVE) = %T, want LiveStart", ev)
	}

	ev, err = Decode("PREPARING", []byte(`{"cmd":"PREPARING"}`))
	if err != nil {
		t.Fatalf("Decode(PREPARING) failed: %v", err)
	}
	if _, ok := ev.(LiveStop); !ok {
		t.Fatalf("Decode(PREPARING) = %T, want LiveStop", ev)
	}
}

// TestDecodeGift verifies the gift fields land on the event.
func TestDecodeGift(t *testing.T) {
	payload := []byte(`{"cmd":"SEND_GIFT","data":{"uname":"Alice","num":3,"giftName":"Rose"}}`)

	ev, err := Decode("SEND_GIFT", payload)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	gift, ok := ev.(GiftSent)
	if !ok {
		t.Fatalf("Decode = %T, want GiftSent", ev)
	}
	if gift.Username != "Alice" || gift.Count != 3 || gift.GiftName != "Rose" {
		t.Fatalf("gift = %+v", gift)
	}
}

// TestDecodeGiftMissingField verifies an absent field is an error, not
// a zero value.
func TestDecodeGiftMissingField(t *testing.T) {
	payload := []byte(`{"cmd":"SEND_GIFT","data":{"uname":"Alice","giftName":"Rose"}}`)

	if _, err := Decode("SEND_GIFT", payload); !errors.Is(err, ErrDeserialize) {
		t.Fatalf("Decode error = %v, want ErrDeserialize", err)
	}
}

// TestDecodeGiftWrongFieldType verifies a mistyped field is an error.
func TestDecodeGiftWrongFieldType(t *testing.T) {
	payload := []byte(`{"cmd":"SEND_GIFT","data":{"uname":"Alice","num":"three","giftName":"Rose"}}`)

	if _, err := Decode("SEND_GIFT", payload); !errors.Is(err, ErrDeserialize) {
		t.Fatalf("Decode error = %v, want ErrDeserialize", err)
	}
}

// TestDecodeWelcome verifies viewer entries, with and without the
// privilege flag set.
func TestDecodeWelcome(t *testing.T) {
	ev, err := Decode("WELCOME", []byte(`{"cmd":"WELCOME","data":{"uname":"Bob","is_admin":false}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	w, ok := ev.(Welcome)
	if !ok {
		t.Fatalf("Decode = %T, want Welcome", ev)
	}
	if w.Username != "Bob" || w.Privileged {
		t.Fatalf("welcome = %+v", w)
	}

	ev, err = Decode("WELCOME", []byte(`{"cmd":"WELCOME","data":{"uname":"Mod","is_admin":true}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if w := ev.(Welcome); !w.Privileged {
		t.Fatalf("privileged flag lost: %+v", w)
	}
}

// TestDecodeWelcomeGuard verifies guard entries carry their rank.
func TestDecodeWelcomeGuard(t *testing.T) {
	ev, err := Decode("WELCOME_GUARD", []byte(`{"cmd":"WELCOME_GUARD","data":{"username":"Eve","guard_level":2}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	wg, ok := ev.(WelcomeGuard)
	if !ok {
		t.Fatalf("Decode = %T, want WelcomeGuard", ev)
	}
	if wg.Username != "Eve" || wg.Rank != GuardCommander {
		t.Fatalf("welcome guard = %+v", wg)
	}
}

// TestDecodeWelcomeGuardRankBounds verifies guard levels outside 1..3
// are rejected where a rank is mandatory.
func TestDecodeWelcomeGuardRankBounds(t *testing.T) {
	for _, level := range []string{"0", "4", "-1"} {
		payload := []byte(`{"cmd":"WELCOME_GUARD","data":{"username":"Eve","guard_level":` + level + `}}`)
		if _, err := Decode("WELCOME_GUARD", payload); !errors.Is(err, ErrDeserialize) {
			t.Errorf("guard_level %s error = %v, want ErrDeserialize", level, err)
		}
	}
}

// TestDecodeNotices verifies the moderation commands read their msg
// from the envelope top level, not from data.
func TestDecodeNotices(t *testing.T) {
	ev, err := Decode("WARNING", []byte(`{"cmd":"WARNING","msg":"behave"}`))
	if err != nil {
		t.Fatalf("Decode(WARNING) failed: %v", err)
	}
	if w, ok := ev.(Warning); !ok || w.Text != "behave" {
		t.Fatalf("Decode(WARNING) = %#v", ev)
	}

	ev, err = Decode("CUT_OFF", []byte(`{"cmd":"CUT_OFF","msg":"stream ended"}`))
	if err != nil {
		t.Fatalf("Decode(CUT_OFF) failed: %v", err)
	}
	if c, ok := ev.(LiveCutOff); !ok || c.Text != "stream ended" {
		t.Fatalf("Decode(CUT_OFF) = %#v", ev)
	}

	if _, err := Decode("WARNING", []byte(`{"cmd":"WARNING"}`)); !errors.Is(err, ErrDeserialize) {
		t.Fatalf("missing msg error = %v, want ErrDeserialize", err)
	}
}

// TestDecodeSuperChat verifies the paid message fields, including the
// nested sender block.
func TestDecodeSuperChat(t *testing.T) {
	payload := []byte(`{"cmd":"SUPER_CHAT_MESSAGE","data":{"price":30,"message":"hello","user_info":{"uname":"Carol"}}}`)

	ev, err := Decode("SUPER_CHAT_MESSAGE", payload)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	sc, ok := ev.(SuperChat)
	if !ok {
		t.Fatalf("Decode = %T, want SuperChat", ev)
	}
	if sc.Username != "Carol" || sc.Price != 30 || sc.Text != "hello" {
		t.Fatalf("super chat = %+v", sc)
	}

	missing := []byte(`{"cmd":"SUPER_CHAT_MESSAGE","data":{"price":30,"message":"hello"}}`)
	if _, err := Decode("SUPER_CHAT_MESSAGE", missing); !errors.Is(err, ErrDeserialize) {
		t.Fatalf("missing user_info error = %v, want ErrDeserialize", err)
	}
}

// TestDecodeInteract verifies every interaction kind and the bounds on
// the wire value.
func TestDecodeInteract(t *testing.T) {
	kinds := map[string]InteractKind{
		"1": InteractEnter,
		"2": InteractFollow,
		"3": InteractShare,
		"4": InteractSpecialFollow,
		"5": InteractMutualFollow,
	}
	for wire, want := range kinds {
		payload := []byte(`{"cmd":"INTERACT_WORD","data":{"uname":"Dan","msg_type":` + wire + `}}`)
		ev, err := Decode("INTERACT_WORD", payload)
		if err != nil {
			t.Fatalf("Decode(msg_type=%s) failed: %v", wire, err)
		}
		iv, ok := ev.(Interact)
		if !ok || iv.Kind != want || iv.Username != "Dan" {
			t.Errorf("msg_type %s = %#v, want kind %v", wire, ev, want)
		}
	}

	for _, wire := range []string{"0", "6"} {
		payload := []byte(`{"cmd":"INTERACT_WORD","data":{"uname":"Dan","msg_type":` + wire + `}}`)
		if _, err := Decode("INTERACT_WORD", payload); !errors.Is(err, ErrDeserialize) {
			t.Errorf("msg_type %s error = %v, want ErrDeserialize", wire, err)
		}
	}
}

// TestDecodeGuardPurchase verifies the purchase fields.
func TestDecodeGuardPurchase(t *testing.T) {
	payload := []byte(`{"cmd":"GUARD_BUY","data":{"username":"Frank","guard_level":3,"num":12}}`)

	ev, err := Decode("GUARD_BUY", payload)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	gp, ok := ev.(GuardPurchase)
	if !ok {
		t.Fatalf("Decode = %T, want GuardPurchase", ev)
	}
	if gp.Username != "Frank" || gp.Rank != GuardGovernor || gp.Months != 12 {
		t.Fatalf("guard purchase = %+v", gp)
	}
}

// TestDecodeUnknownCommand verifies an unknown command reports which
// command it was and is not confused with a malformed payload.
func TestDecodeUnknownCommand(t *testing.T) {
	_, err := Decode("STOP_LIVE_ROOM_LIST", []byte(`{"cmd":"STOP_LIVE_ROOM_LIST","data":{}}`))

	var notSupported *NotSupportedError
	if !errors.As(err, &notSupported) {
		t.Fatalf("Decode error = %v, want NotSupportedError", err)
	}
	if notSupported.Cmd != "STOP_LIVE_ROOM_LIST" {
		t.Errorf("reported cmd = %q", notSupported.Cmd)
	}
	if errors.Is(err, ErrDeserialize) {
		t.Error("unknown command must not double as a deserialize error")
	}
}
