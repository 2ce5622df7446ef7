package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/old-maid/internal/protocol"
)

// 编解码器名称
const (
	NameJSON     = "json"
	NameProtobuf = "protobuf"
)

// ErrMissingType 消息缺少类型字段
var ErrMissingType = errors.New("message type is missing")

// Codec 线路编解码器
type Codec interface {
	Name() string
	// Binary 为 true 时使用二进制帧，否则使用文本帧
	Binary() bool
	Encode(m *protocol.Message) ([]byte, error)
	Decode(data []byte) (*protocol.Message, error)
}

// ByName 根据名称返回编解码器
func ByName(name string) (Codec, error) {
	switch name {
	case "", NameJSON:
		return JSONCodec{}, nil
	case NameProtobuf:
		return ProtobufCodec{}, nil
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}

// JSONCodec 文本帧 JSON 信封 {"type":..., "payload":...}
type JSONCodec struct{}

func (JSONCodec) Name() string { return NameJSON }
func (JSONCodec) Binary() bool { return false }

func (JSONCodec) Encode(m *protocol.Message) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return append([]byte(nil), bytes.TrimSuffix(buf.Bytes(), []byte("\n"))...), nil
}

// Decode 注意: 使用完毕后应调用 PutMessage 归还对象到池
func (JSONCodec) Decode(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		PutMessage(msg)
		return nil, err
	}
	if msg.Type == "" {
		PutMessage(msg)
		return nil, ErrMissingType
	}
	return msg, nil
}

// ProtobufCodec 二进制帧，信封编码为 google.protobuf.Struct
type ProtobufCodec struct{}

func (ProtobufCodec) Name() string { return NameProtobuf }
func (ProtobufCodec) Binary() bool { return true }

func (ProtobufCodec) Encode(m *protocol.Message) ([]byte, error) {
	envelope := &structpb.Struct{Fields: map[string]*structpb.Value{
		"type": structpb.NewStringValue(string(m.Type)),
	}}
	if len(m.Payload) > 0 {
		payload := &structpb.Value{}
		if err := protojson.Unmarshal(m.Payload, payload); err != nil {
			return nil, fmt.Errorf("转换 %s payload 失败: %w", m.Type, err)
		}
		envelope.Fields["payload"] = payload
	}
	return proto.Marshal(envelope)
}

// Decode 注意: 使用完毕后应调用 PutMessage 归还对象到池
func (ProtobufCodec) Decode(data []byte) (*protocol.Message, error) {
	envelope := &structpb.Struct{}
	if err := proto.Unmarshal(data, envelope); err != nil {
		return nil, err
	}

	msgType := envelope.GetFields()["type"].GetStringValue()
	if msgType == "" {
		return nil, ErrMissingType
	}

	msg := GetMessage()
	msg.Type = protocol.MessageType(msgType)
	if payload, ok := envelope.GetFields()["payload"]; ok {
		raw, err := protojson.Marshal(payload)
		if err != nil {
			PutMessage(msg)
			return nil, err
		}
		msg.Payload = raw
	}
	return msg, nil
}
