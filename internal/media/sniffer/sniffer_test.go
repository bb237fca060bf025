package sniffer

import (
	"errors"
	"testing"
)

func TestDetectHead(t *testing.T) {
	tests := []struct {
		name    string
		head    []byte
		want    MediaType
		wantErr bool
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, TypeJPEG, false},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}, TypePNG, false},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), TypeWEBP, false},
		{"empty", nil, "", true},
		{"text", []byte("hello world"), "", true},
		{"truncated jpeg", []byte{0xff, 0xd8}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectHead(tt.head)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownType) {
					t.Fatalf("expected ErrUnknownType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Type != tt.want {
				t.Errorf("got %s, want %s", got.Type, tt.want)
			}
		})
	}
}
