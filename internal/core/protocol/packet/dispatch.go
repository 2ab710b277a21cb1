// This file routes a parsed packet to what it means for a session: a
// handshake ack, a popularity report or a batch of room messages.

package packet

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDeserialize marks a packet body that does not carry what its
// operation promises.
var ErrDeserialize = errors.New("malformed packet payload")

// UnsupportedOperationError reports a packet whose operation code this
// client does not handle. The feed keeps running when one arrives.
type UnsupportedOperationError struct {
	Op Operation
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation %s", e.Op)
}

// OutcomeKind tags what a dispatched packet amounted to.
type OutcomeKind int

// Dispatch outcomes.
const (
	OutcomeCertificateAccepted OutcomeKind = iota
	OutcomeHeartbeatAccepted
	OutcomeMessages
)

// Envelope is one room message: its command string and the full JSON
// object it arrived as.
type Envelope struct {
	Cmd     string
	Payload json.RawMessage
}

// Outcome is the result of dispatching one inbound packet. Popularity
// is set for heartbeat acks and Envelopes for message packets.
// Malformed counts message entries whose body was not a JSON object
// with a cmd string; those are dropped without failing the packet.
type Outcome struct {
	Kind       OutcomeKind
	Popularity uint32
	Envelopes  []Envelope
	Malformed  int
}

// Dispatch interprets one inbound packet from its header and entries.
func Dispatch(h Header, entries []Entry) (Outcome, error) {
	switch h.Operation {
	case OpCertificateAck:
		return Outcome{Kind: OutcomeCertificateAccepted}, nil
	case OpHeartbeatAck:
		if len(entries) == 0 || len(entries[0].Body) < 4 {
			return Outcome{}, fmt.Errorf("%w: heartbeat ack body is too short", ErrDeserialize)
		}
		return Outcome{
			Kind:       OutcomeHeartbeatAccepted,
			Popularity: binary.BigEndian.Uint32(entries[0].Body[:4]),
		}, nil
	case OpMessage:
		out := Outcome{Kind: OutcomeMessages}
		for _, e := range entries {
			var probe struct {
				Cmd string `json:"cmd"`
			}
			if err := json.Unmarshal(e.Body, &probe); err != nil || probe.Cmd == "" {
				out.Malformed++
				continue
			}
			out.Envelopes = append(out.Envelopes, Envelope{Cmd: probe.Cmd, Payload: json.RawMessage(e.Body)})
		}
		return out, nil
	default:
		return Outcome{}, &UnsupportedOperationError{Op: h.Operation}
	}
}
