package text

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// defaultFont parses Go Regular once.
var defaultFont = sync.OnceValues(func() (*opentype.Font, error) {
	return parse(goregular.TTF)
})

var (
	facesMu sync.Mutex
	faces   = make(map[float32]font.Face)
)

// Face returns Go Regular at size points and 72 DPI, so one point is one
// pixel. Faces are cached per size and safe to share for measuring; drawing
// with a face is not safe for concurrent use.
func Face(size float32) font.Face {
	facesMu.Lock()
	defer facesMu.Unlock()

	if f, ok := faces[size]; ok {
		return f
	}
	f, err := defaultFont()
	if err == nil {
		var face font.Face
		if face, err = newFace(f, size); err == nil {
			faces[size] = face
			return face
		}
	}
	// The embedded font always parses.
	panic(err)
}

// NewFace parses an OpenType or TrueType font and returns a face at size.
func NewFace(data []byte, size float32) (font.Face, error) {
	f, err := parse(data)
	if err != nil {
		return nil, err
	}
	return newFace(f, size)
}

func parse(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return f, nil
}

func newFace(f *opentype.Font, size float32) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to create face: %w", err)
	}
	return face, nil
}
