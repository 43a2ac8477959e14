package domain_test

import (
	"testing"

	"go.uber.org/mock/gomock"

	"ashfall/server/domain"
	"ashfall/server/domain/mocks"
)

func TestConnection_DelegatesToTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)

	transport.EXPECT().Write(gomock.Any(), []byte("out")).Return(nil)
	transport.EXPECT().Read(gomock.Any()).Return([]byte("in"), nil)
	transport.EXPECT().Close(int32(1000), "").Return(nil)

	conn := domain.NewConnection(domain.NewSessionID(), transport)

	if err := conn.Write(t.Context(), []byte("out")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := conn.Read(t.Context())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "in" {
		t.Errorf("data = %q, want %q", data, "in")
	}
	conn.Close()
}

func TestConnection_IDIndependentOfSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)

	sessionID := domain.NewSessionID()
	a := domain.NewConnection(sessionID, transport)
	b := domain.NewConnection(sessionID, transport)

	if a.SessionID != sessionID {
		t.Error("sessionID mismatch")
	}
	// 同一セッションの張り直しでも接続IDは別
	if a.ConnectionID == b.ConnectionID {
		t.Error("connection IDs should be unique per connection")
	}
	if a.ConnectionID == "" {
		t.Error("connection ID should not be empty")
	}
	if a.Age() < 0 {
		t.Errorf("Age = %v, want >= 0", a.Age())
	}
}
