package services

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
)

func TestPlaceholderRender(t *testing.T) {
	svc, err := NewPlaceholderService(testLogger(t), "")
	if err != nil {
		t.Fatalf("NewPlaceholderService: %v", err)
	}
	buf, err := svc.Render(PlaceholderSpec{Size: "40x20", Background: "FF6600", Text: "hi"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("bounds: want=40x20 got=%dx%d", b.Dx(), b.Dy())
	}
	r, g, bl, _ := img.At(0, 0).RGBA()
	if r>>8 != 0xFF || g>>8 != 0x66 || bl>>8 != 0x00 {
		t.Fatalf("corner color: got %02X%02X%02X", r>>8, g>>8, bl>>8)
	}
}

func TestPlaceholderSquareShorthand(t *testing.T) {
	svc, _ := NewPlaceholderService(testLogger(t), "")
	buf, err := svc.Render(PlaceholderSpec{Size: "16", Background: "#abc"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Fatalf("bounds: got %v", img.Bounds())
	}
}

func TestPlaceholderRejectsBadInput(t *testing.T) {
	svc, _ := NewPlaceholderService(testLogger(t), "")
	cases := []PlaceholderSpec{
		{Size: "0x10", Background: "FFFFFF"},
		{Size: "5000x10", Background: "FFFFFF"},
		{Size: "abc", Background: "FFFFFF"},
		{Size: "10x10", Background: "GGGGGG"},
		{Size: "10x10", Background: "FFFFFF", Foreground: "12"},
	}
	for _, spec := range cases {
		_, err := svc.Render(spec)
		if apierr.As(err).Code != apierr.CodeInvalidInput {
			t.Fatalf("Render(%+v): want INVALID_INPUT got %v", spec, err)
		}
	}
}

func TestPlaceholderMissingFontFails(t *testing.T) {
	if _, err := NewPlaceholderService(testLogger(t), "/nonexistent/font.ttf"); err == nil {
		t.Fatalf("expected error for missing font")
	}
}
