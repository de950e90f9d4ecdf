// Package sniffer detects the real type of an uploaded listing photo from its
// leading bytes. The declared Content-Type header is advisory only.
package sniffer

import (
	"bytes"
	"fmt"
	"net/textproto"
	"strings"
)

type Type string

const (
	TypeJPEG Type = "jpg"
	TypePNG  Type = "png"
	TypeGIF  Type = "gif"
	TypeWebP Type = "webp"
)

type Result struct {
	Type Type
	MIME string
}

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	gifMagic  = []byte("GIF8")
	riffMagic = []byte("RIFF")
	webpMagic = []byte("WEBP")
)

// DetectHead inspects the first bytes of a file. 16 bytes are enough for
// every supported format.
func DetectHead(head []byte) (Result, error) {
	switch {
	case bytes.HasPrefix(head, jpegMagic):
		return Result{Type: TypeJPEG, MIME: "image/jpeg"}, nil
	case bytes.HasPrefix(head, pngMagic):
		return Result{Type: TypePNG, MIME: "image/png"}, nil
	case bytes.HasPrefix(head, gifMagic):
		return Result{Type: TypeGIF, MIME: "image/gif"}, nil
	case bytes.HasPrefix(head, riffMagic) && len(head) >= 12 && bytes.Equal(head[8:12], webpMagic):
		return Result{Type: TypeWebP, MIME: "image/webp"}, nil
	}
	return Result{}, fmt.Errorf("unsupported image format")
}

func MimeTypeFromHTTP(header textproto.MIMEHeader) string {
	declared := header.Get("Content-Type")
	if declared == "" {
		return ""
	}
	if idx := strings.Index(declared, ";"); idx >= 0 {
		declared = declared[:idx]
	}
	return strings.TrimSpace(strings.ToLower(declared))
}
