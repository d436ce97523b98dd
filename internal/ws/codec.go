package ws

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec selects the wire encoding of a client's outgoing frames.
type Codec int

const (
	// CodecJSON sends JSON text frames.
	CodecJSON Codec = iota
	// CodecMsgpack sends msgpack binary frames.
	CodecMsgpack
)

// ParseCodec maps the ?codec= query value to a Codec. Unknown values fall
// back to JSON.
func ParseCodec(s string) Codec {
	if s == "msgpack" {
		return CodecMsgpack
	}
	return CodecJSON
}

func (c Codec) String() string {
	if c == CodecMsgpack {
		return "msgpack"
	}
	return "json"
}

func (c Codec) frameType() int {
	if c == CodecMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

type binaryMessage struct {
	Type string `msgpack:"type"`
	Data any    `msgpack:"data,omitempty"`
}

// Encode serializes a message for the wire.
func (c Codec) Encode(msg Message) ([]byte, error) {
	if c != CodecMsgpack {
		return json.Marshal(msg)
	}

	data := msg.payload
	if data == nil && len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil, fmt.Errorf("transcode %s payload: %w", msg.Type, err)
		}
	}
	return msgpack.Marshal(binaryMessage{Type: msg.Type, Data: data})
}

// Decode parses a frame. Msgpack payloads are re-encoded as JSON so handlers
// see one format.
func (c Codec) Decode(raw []byte) (Message, error) {
	var msg Message
	if c != CodecMsgpack {
		err := json.Unmarshal(raw, &msg)
		return msg, err
	}

	var bm binaryMessage
	if err := msgpack.Unmarshal(raw, &bm); err != nil {
		return msg, err
	}
	msg.Type = bm.Type
	if bm.Data != nil {
		data, err := json.Marshal(bm.Data)
		if err != nil {
			return msg, fmt.Errorf("transcode %s payload: %w", bm.Type, err)
		}
		msg.Data = data
	}
	return msg, nil
}
