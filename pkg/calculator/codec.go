package calculator

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName content-subtype кодека: сообщения сервиса передаются как JSON,
// поэтому protoc для них не нужен
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
