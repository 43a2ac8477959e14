package domain

import (
	"encoding/binary"
	"errors"
	"math"
	"time"
)

// バイトオーダー: リトルエンディアン
var byteOrder = binary.LittleEndian

const (
	ProtocolVersion = 1

	HeaderSize        = 25
	PayloadHeaderSize = 2
	InputPayloadSize  = 10
	EntityRecordSize  = 12
	HitEventSize      = 9
)

// Header はメッセージヘッダー (25バイト)
//
//	version    u8       (1)
//	sessionID  [16]byte (16)
//	seq        u16      (2)
//	length     u16      (2)  - ペイロード長（ペイロードヘッダー含む）
//	timestamp  u32      (4)
type Header struct {
	Version   uint8
	SessionID [16]byte
	Seq       uint16
	Length    uint16
	Timestamp uint32
}

// DataType はメッセージの種別
type DataType uint8

const (
	DataTypeInput   DataType = 1
	DataTypeState   DataType = 2
	DataTypeEvent   DataType = 3
	DataTypeControl DataType = 4
)

// ControlSubType はcontrolメッセージのサブタイプ
type ControlSubType uint8

const (
	ControlSubTypeJoin   ControlSubType = 1
	ControlSubTypeLeave  ControlSubType = 2
	ControlSubTypeKick   ControlSubType = 3
	ControlSubTypePing   ControlSubType = 4
	ControlSubTypePong   ControlSubType = 5
	ControlSubTypeError  ControlSubType = 6
	ControlSubTypeAssign ControlSubType = 7
)

// EventSubType はeventメッセージのサブタイプ
type EventSubType uint8

const (
	EventSubTypeHit EventSubType = 1
)

// EntityKind はスナップショット内のエンティティ種別
type EntityKind uint8

const (
	KindPlayer  EntityKind = 1
	KindDrifter EntityKind = 2
	KindDiver   EntityKind = 3
	KindBullet  EntityKind = 4
)

// 入力キーのビットマスク
const (
	KeyLeft  uint16 = 1 << 0
	KeyRight uint16 = 1 << 1
	KeyUp    uint16 = 1 << 2
	KeyDown  uint16 = 1 << 3
	KeyFire  uint16 = 1 << 4
)

// PayloadHeader はペイロードヘッダー (2バイト)
//
//	datatype  u8 (1)
//	subtype   u8 (1)
type PayloadHeader struct {
	DataType DataType
	SubType  uint8
}

var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidPayloadSize = errors.New("invalid payload size")
	ErrInvalidRecordCount = errors.New("state payload record count mismatch")
)

// ParseHeader はバイト列からHeaderをパースする
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, ErrInvalidHeaderSize
	}

	var sessionID [16]byte
	copy(sessionID[:], data[1:17])

	return &Header{
		Version:   data[0],
		SessionID: sessionID,
		Seq:       byteOrder.Uint16(data[17:19]),
		Length:    byteOrder.Uint16(data[19:21]),
		Timestamp: byteOrder.Uint32(data[21:25]),
	}, nil
}

// Encode はHeaderをバイト列にエンコードする
func (h *Header) Encode() []byte {
	data := make([]byte, HeaderSize)
	data[0] = h.Version
	copy(data[1:17], h.SessionID[:])
	byteOrder.PutUint16(data[17:19], h.Seq)
	byteOrder.PutUint16(data[19:21], h.Length)
	byteOrder.PutUint32(data[21:25], h.Timestamp)
	return data
}

// ParsePayloadHeader はバイト列からPayloadHeaderをパースする
func ParsePayloadHeader(data []byte) (*PayloadHeader, error) {
	if len(data) < PayloadHeaderSize {
		return nil, ErrInvalidPayloadSize
	}
	return &PayloadHeader{
		DataType: DataType(data[0]),
		SubType:  data[1],
	}, nil
}

// Encode はPayloadHeaderをバイト列にエンコードする
func (p *PayloadHeader) Encode() []byte {
	return []byte{byte(p.DataType), p.SubType}
}

// InputPayload は入力メッセージのペイロード (10バイト)
//
//	keyMask  u16 (2)
//	aimX     f32 (4) - 射撃方向。ゼロベクトルなら真上扱い
//	aimY     f32 (4)
type InputPayload struct {
	KeyMask uint16
	AimX    float32
	AimY    float32
}

// ParseInputPayload はバイト列からInputPayloadをパースする
func ParseInputPayload(data []byte) (*InputPayload, error) {
	if len(data) < InputPayloadSize {
		return nil, ErrInvalidPayloadSize
	}
	return &InputPayload{
		KeyMask: byteOrder.Uint16(data[0:2]),
		AimX:    math.Float32frombits(byteOrder.Uint32(data[2:6])),
		AimY:    math.Float32frombits(byteOrder.Uint32(data[6:10])),
	}, nil
}

// Encode はInputPayloadをバイト列にエンコードする
func (i *InputPayload) Encode() []byte {
	data := make([]byte, InputPayloadSize)
	byteOrder.PutUint16(data[0:2], i.KeyMask)
	byteOrder.PutUint32(data[2:6], math.Float32bits(i.AimX))
	byteOrder.PutUint32(data[6:10], math.Float32bits(i.AimY))
	return data
}

// EntityRecord はスナップショット内の1エンティティ (12バイト)
//
//	kind  u8  (1)
//	id    u16 (2)
//	x, y  f32 (8)
//	hp    u8  (1) - 弾丸は常に0
type EntityRecord struct {
	Kind EntityKind
	ID   uint16
	X, Y float32
	HP   uint8
}

func (r *EntityRecord) encodeTo(data []byte) {
	data[0] = byte(r.Kind)
	byteOrder.PutUint16(data[1:3], r.ID)
	byteOrder.PutUint32(data[3:7], math.Float32bits(r.X))
	byteOrder.PutUint32(data[7:11], math.Float32bits(r.Y))
	data[11] = r.HP
}

func parseEntityRecord(data []byte) EntityRecord {
	return EntityRecord{
		Kind: EntityKind(data[0]),
		ID:   byteOrder.Uint16(data[1:3]),
		X:    math.Float32frombits(byteOrder.Uint32(data[3:7])),
		Y:    math.Float32frombits(byteOrder.Uint32(data[7:11])),
		HP:   data[11],
	}
}

// StatePayload はステージスナップショット
//
//	count    u16 (2)
//	records  count * EntityRecord
type StatePayload struct {
	Records []EntityRecord
}

// ParseStatePayload はバイト列からStatePayloadをパースする
func ParseStatePayload(data []byte) (*StatePayload, error) {
	if len(data) < 2 {
		return nil, ErrInvalidPayloadSize
	}
	count := int(byteOrder.Uint16(data[0:2]))
	if len(data) < 2+count*EntityRecordSize {
		return nil, ErrInvalidRecordCount
	}

	records := make([]EntityRecord, count)
	for i := range count {
		offset := 2 + i*EntityRecordSize
		records[i] = parseEntityRecord(data[offset : offset+EntityRecordSize])
	}
	return &StatePayload{Records: records}, nil
}

// Encode はStatePayloadをバイト列にエンコードする
func (s *StatePayload) Encode() []byte {
	data := make([]byte, 2+len(s.Records)*EntityRecordSize)
	byteOrder.PutUint16(data[0:2], uint16(len(s.Records)))
	for i := range s.Records {
		offset := 2 + i*EntityRecordSize
		s.Records[i].encodeTo(data[offset : offset+EntityRecordSize])
	}
	return data
}

// HitEventPayload は命中イベント (9バイト)
//
//	x, y    f32 (8) - 命中位置
//	target  u8  (1) - 被弾したエンティティ種別
type HitEventPayload struct {
	X, Y   float32
	Target EntityKind
}

// ParseHitEventPayload はバイト列からHitEventPayloadをパースする
func ParseHitEventPayload(data []byte) (*HitEventPayload, error) {
	if len(data) < HitEventSize {
		return nil, ErrInvalidPayloadSize
	}
	return &HitEventPayload{
		X:      math.Float32frombits(byteOrder.Uint32(data[0:4])),
		Y:      math.Float32frombits(byteOrder.Uint32(data[4:8])),
		Target: EntityKind(data[8]),
	}, nil
}

// Encode はHitEventPayloadをバイト列にエンコードする
func (h *HitEventPayload) Encode() []byte {
	data := make([]byte, HitEventSize)
	byteOrder.PutUint32(data[0:4], math.Float32bits(h.X))
	byteOrder.PutUint32(data[4:8], math.Float32bits(h.Y))
	data[8] = byte(h.Target)
	return data
}

// composeMessage はヘッダー・ペイロードヘッダー・ペイロードを1メッセージに組み立てる
func composeMessage(sessionID SessionID, seq uint16, dataType DataType, subType uint8, payload []byte) []byte {
	header := Header{
		Version:   ProtocolVersion,
		SessionID: sessionID.Bytes(),
		Seq:       seq,
		Length:    uint16(PayloadHeaderSize + len(payload)),
		Timestamp: uint32(time.Now().UnixMilli() & 0xFFFFFFFF),
	}
	payloadHeader := PayloadHeader{DataType: dataType, SubType: subType}

	data := make([]byte, 0, HeaderSize+PayloadHeaderSize+len(payload))
	data = append(data, header.Encode()...)
	data = append(data, payloadHeader.Encode()...)
	data = append(data, payload...)
	return data
}

// EncodeAssignMessage はセッションID通知メッセージをエンコードする
// クライアントに自分のセッションIDを通知するために使用
func EncodeAssignMessage(sessionID SessionID) []byte {
	return composeMessage(sessionID, 0, DataTypeControl, uint8(ControlSubTypeAssign), nil)
}

// EncodePingMessage は死活確認のpingメッセージをエンコードする
func EncodePingMessage(sessionID SessionID) []byte {
	return composeMessage(sessionID, 0, DataTypeControl, uint8(ControlSubTypePing), nil)
}

// EncodePongMessage はpingへの応答をエンコードする
func EncodePongMessage(sessionID SessionID) []byte {
	return composeMessage(sessionID, 0, DataTypeControl, uint8(ControlSubTypePong), nil)
}

// EncodeJoinMessage はルーム参加メッセージをエンコードする
// ルームの割り当てはサーバー側のRoomManagerが行う
func EncodeJoinMessage(sessionID SessionID) []byte {
	return composeMessage(sessionID, 0, DataTypeControl, uint8(ControlSubTypeJoin), nil)
}

// EncodeLeaveMessage はルーム離脱メッセージをエンコードする
// 異常切断時にはendpointのclose処理からも送られる
func EncodeLeaveMessage(sessionID SessionID) []byte {
	return composeMessage(sessionID, 0, DataTypeControl, uint8(ControlSubTypeLeave), nil)
}

// EncodeInputMessage は入力メッセージをエンコードする
func EncodeInputMessage(sessionID SessionID, seq uint16, input *InputPayload) []byte {
	return composeMessage(sessionID, seq, DataTypeInput, 0, input.Encode())
}

// EncodeStateMessage はステージスナップショットをエンコードする
func EncodeStateMessage(seq uint16, records []EntityRecord) []byte {
	state := StatePayload{Records: records}
	return composeMessage(SessionID{}, seq, DataTypeState, 0, state.Encode())
}

// EncodeHitEventMessage は命中イベントをエンコードする
func EncodeHitEventMessage(seq uint16, hit *HitEventPayload) []byte {
	return composeMessage(SessionID{}, seq, DataTypeEvent, uint8(EventSubTypeHit), hit.Encode())
}
