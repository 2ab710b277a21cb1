// This file builds the outbound packets a feed client sends: the room
// certificate and the periodic heartbeat.

package packet

import (
	"encoding/json"
	"fmt"
)

// heartbeatBody is the constant heartbeat payload the web client sends.
// The server ignores the body, only the operation code matters.
const heartbeatBody = "[object Object]"

// certificate is the JSON body of the room join packet.
type certificate struct {
	UID      uint64 `json:"uid"`
	RoomID   uint64 `json:"roomid"`
	ProtoVer int    `json:"protover"`
	Platform string `json:"platform"`
	Type     int    `json:"type"`
	Key      string `json:"key"`
}

// CreateCertificate builds the join packet for a room. The token comes
// from the feed auth endpoint and is bound to the room id.
func CreateCertificate(uid, roomID uint64, token string) ([]byte, error) {
	body, err := json.Marshal(certificate{
		UID:      uid,
		RoomID:   roomID,
		ProtoVer: ProtocolVersion,
		Platform: "web",
		Type:     2,
		Key:      token,
	})
	if err != nil {
		return nil, fmt.Errorf("encode certificate: %w", err)
	}
	return Encode(Header{
		Encoding:   EncodingPlain,
		Operation:  OpCertificate,
		SequenceID: 1,
	}, body), nil
}

// CreateHeartbeat builds the periodic keepalive packet.
func CreateHeartbeat() []byte {
	return Encode(Header{
		Encoding:   EncodingPlain,
		Operation:  OpHeartbeat,
		SequenceID: 1,
	}, []byte(heartbeatBody))
}
