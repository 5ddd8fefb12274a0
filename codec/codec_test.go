package codec

import (
	"testing"

	"mcproto/message"
)

func TestEncodeDecodeStatusResponse(t *testing.T) {
	original := message.StatusResponse{
		Version:     message.StatusVersion{Name: "1.7.2", Protocol: 4},
		Players:     message.StatusPlayers{Max: 20, Online: 1},
		Description: message.ChatComponent{Text: "A Minecraft Server"},
	}

	data, err := Encode(&original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded message.StatusResponse
	if err := Decode(data, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestEncodeDecodeChatComponent(t *testing.T) {
	original := message.ChatComponent{Text: "kicked for misbehaving"}

	data, err := Encode(&original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded message.ChatComponent
	if err := Decode(data, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
}
