// This file defines the feed packet header layout, body encodings and
// operation codes.

package packet

import "fmt"

// HeaderSize is the fixed size of a packet header in bytes.
const HeaderSize = 16

// ProtocolVersion is the packet protocol version requested in the
// certificate body.
const ProtocolVersion = 2

// Encoding describes how a packet body is encoded.
type Encoding uint16

// Body encodings.
const (
	EncodingPlain   Encoding = 0 // raw JSON or text body
	EncodingInteger Encoding = 1 // big-endian integer body
	EncodingZlib    Encoding = 2 // zlib-compressed batch of packets
	EncodingBrotli  Encoding = 3 // brotli-compressed batch of packets
)

// String returns a short name for the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingPlain:
		return "plain"
	case EncodingInteger:
		return "integer"
	case EncodingZlib:
		return "zlib"
	case EncodingBrotli:
		return "brotli"
	default:
		return fmt.Sprintf("encoding(%d)", uint16(e))
	}
}

// Operation identifies the purpose of a packet.
type Operation uint32

// Operation codes.
const (
	OpHeartbeat      Operation = 2 // client keepalive
	OpHeartbeatAck   Operation = 3 // server reply, body carries room popularity
	OpMessage        Operation = 5 // room event payload
	OpCertificate    Operation = 7 // client hello with the room auth token
	OpCertificateAck Operation = 8 // server accepted the certificate
)

// String returns a short name for the operation.
func (op Operation) String() string {
	switch op {
	case OpHeartbeat:
		return "heartbeat"
	case OpHeartbeatAck:
		return "heartbeat_ack"
	case OpMessage:
		return "message"
	case OpCertificate:
		return "certificate"
	case OpCertificateAck:
		return "certificate_ack"
	default:
		return fmt.Sprintf("operation(%d)", uint32(op))
	}
}
