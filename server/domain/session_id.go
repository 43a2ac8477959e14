package domain

import "github.com/google/uuid"

// SessionID はセッションを識別する16バイトのIDです。ワイヤ上でもこのまま流れます。
type SessionID [16]byte

func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

func SessionIDFromBytes(b [16]byte) SessionID {
	return SessionID(b)
}

func (id SessionID) String() string {
	return uuid.UUID(id).String()
}

func (id SessionID) Bytes() [16]byte {
	return [16]byte(id)
}

func (id SessionID) IsEmpty() bool {
	return id == SessionID{}
}
