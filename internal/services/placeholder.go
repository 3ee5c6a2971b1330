package services

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

const (
	maxPlaceholderSide           = 1200
	defaultPlaceholderForeground = "FFFFFF"
)

// PlaceholderService renders solid-color PNGs with centered text. It serves
// the same URL shape as the public placeholder host so either can back the
// fallback images.
type PlaceholderService interface {
	Render(spec PlaceholderSpec) (bytes.Buffer, error)
}

type PlaceholderSpec struct {
	Size       string // "400x400" or "400"
	Background string // hex, with or without '#'
	Foreground string
	Text       string
}

type placeholderService struct {
	log      *logger.Logger
	fontPath string

	mu    sync.Mutex
	faces map[float64]font.Face
	ttf   *truetype.Font
}

// NewPlaceholderService loads fontPath when set; without it text is drawn with
// the built-in bitmap face.
func NewPlaceholderService(log *logger.Logger, fontPath string) (PlaceholderService, error) {
	serviceLog := log.With("service", "PlaceholderService")
	ps := &placeholderService{
		log:      serviceLog,
		fontPath: strings.TrimSpace(fontPath),
		faces:    map[float64]font.Face{},
	}
	if ps.fontPath != "" {
		serviceLog.Info("Loading placeholder font", "font", ps.fontPath)
		raw, err := os.ReadFile(ps.fontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		parsed, err := truetype.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TTF: %w", err)
		}
		ps.ttf = parsed
	}
	return ps, nil
}

func (ps *placeholderService) Render(spec PlaceholderSpec) (bytes.Buffer, error) {
	var buf bytes.Buffer

	w, h, err := parseSize(spec.Size)
	if err != nil {
		return buf, err
	}
	bg, err := parseHexColor(spec.Background)
	if err != nil {
		return buf, apierr.Invalid("invalid background color %q", spec.Background)
	}
	fgHex := spec.Foreground
	if strings.TrimSpace(fgHex) == "" {
		fgHex = defaultPlaceholderForeground
	}
	fg, err := parseHexColor(fgHex)
	if err != nil {
		return buf, apierr.Invalid("invalid foreground color %q", spec.Foreground)
	}
	text := strings.TrimSpace(spec.Text)
	if text == "" {
		text = fmt.Sprintf("%dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(bg)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	dc.SetFontFace(ps.face(float64(min(w, h)) / 10))
	dc.SetColor(fg)
	dc.DrawStringWrapped(text, float64(w)/2, float64(h)/2, 0.5, 0.5, float64(w)*0.9, 1.4, gg.AlignCenter)

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func (ps *placeholderService) face(size float64) font.Face {
	if ps.ttf == nil {
		return basicfont.Face7x13
	}
	if size < 8 {
		size = 8
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if f, ok := ps.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(ps.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	ps.faces[size] = f
	return f
}

func parseSize(s string) (int, int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, 0, apierr.Invalid("size is required")
	}
	wStr, hStr, found := strings.Cut(s, "x")
	if !found {
		hStr = wStr
	}
	w, err := strconv.Atoi(wStr)
	if err != nil {
		return 0, 0, apierr.Invalid("invalid size %q", s)
	}
	h, err := strconv.Atoi(hStr)
	if err != nil {
		return 0, 0, apierr.Invalid("invalid size %q", s)
	}
	if w <= 0 || h <= 0 || w > maxPlaceholderSide || h > maxPlaceholderSide {
		return 0, 0, apierr.Invalid("size must be between 1 and %d", maxPlaceholderSide)
	}
	return w, h, nil
}

func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("expected 6 hex chars")
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 3 {
		return color.NRGBA{}, fmt.Errorf("invalid hex")
	}
	return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 255}, nil
}
