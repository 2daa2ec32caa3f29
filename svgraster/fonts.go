package svgraster

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// fontData holds the TrueType files, indexed by monospace.
var fontData = map[bool][]byte{
	false: goregular.TTF,
	true:  gomono.TTF,
}

type faceKey struct {
	mono bool
	size float64
}

// faceCache lazily builds font faces, one per family and size.
type faceCache struct {
	fonts map[bool]*sfnt.Font
	faces map[faceKey]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{fonts: make(map[bool]*sfnt.Font), faces: make(map[faceKey]font.Face)}
}

// isMonospace returns true if the first generic family
// found in the list is monospace.
func isMonospace(family string) bool {
	for _, f := range strings.Split(family, ",") {
		switch strings.Trim(strings.TrimSpace(f), `"'`) {
		case "monospace":
			return true
		case "sans-serif", "serif":
			return false
		}
	}
	return false
}

func (fc *faceCache) face(family string, size float64) (font.Face, error) {
	key := faceKey{mono: isMonospace(family), size: size}
	if face, ok := fc.faces[key]; ok {
		return face, nil
	}
	ft, ok := fc.fonts[key.mono]
	if !ok {
		var err error
		ft, err = opentype.Parse(fontData[key.mono])
		if err != nil {
			return nil, err
		}
		fc.fonts[key.mono] = ft
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	fc.faces[key] = face
	return face, nil
}
