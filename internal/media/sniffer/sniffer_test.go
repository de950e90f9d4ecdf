package sniffer

import (
	"net/textproto"
	"testing"
)

func TestDetectHead(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		typ  Type
		mime string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, TypeJPEG, "image/jpeg"},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, TypePNG, "image/png"},
		{"gif87a", []byte("GIF87a"), TypeGIF, "image/gif"},
		{"gif89a", []byte("GIF89a"), TypeGIF, "image/gif"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), TypeWebP, "image/webp"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectHead(tc.head)
			if err != nil {
				t.Fatalf("DetectHead: %v", err)
			}
			if got.Type != tc.typ || got.MIME != tc.mime {
				t.Fatalf("got %+v, want %s/%s", got, tc.typ, tc.mime)
			}
		})
	}
}

func TestDetectHeadRejectsUnknown(t *testing.T) {
	for _, head := range [][]byte{nil, []byte("hello"), []byte("RIFF....WAVE")} {
		if _, err := DetectHead(head); err == nil {
			t.Fatalf("DetectHead(%q) accepted a non-image", head)
		}
	}
}

func TestMimeTypeFromHTTP(t *testing.T) {
	header := textproto.MIMEHeader{}
	if got := MimeTypeFromHTTP(header); got != "" {
		t.Fatalf("empty header = %q, want empty string", got)
	}

	header.Set("Content-Type", "Image/PNG; charset=binary")
	if got := MimeTypeFromHTTP(header); got != "image/png" {
		t.Fatalf("got %q, want image/png", got)
	}
}
