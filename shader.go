package paint

// ShaderType identifies the kind of Shader.
type ShaderType uint8

const (
	ShaderLinearGradient ShaderType = iota
	ShaderImage
	ShaderRecord
)

// TileMode selects how a shader repeats outside its natural bounds.
type TileMode uint8

const (
	TileClamp TileMode = iota
	TileRepeat
	TileMirror
)

// maxGradientStops bounds deserialized gradient color arrays.
const maxGradientStops = 256

// Shader is a paint source used in place of a solid color.
type Shader struct {
	Type        ShaderType
	LocalMatrix Matrix
	TileX       TileMode
	TileY       TileMode

	// Linear gradient.
	Start, End Point
	Colors     []Color
	Positions  []float32

	// Image shader.
	Image Image

	// Record shader. Tile is the record's cull rect.
	Record *Record
	Tile   Rect
}

// NewLinearGradient creates a gradient between start and end. Positions
// may be nil for evenly spaced colors.
func NewLinearGradient(start, end Point, colors []Color, positions []float32, tile TileMode) *Shader {
	return &Shader{
		Type:        ShaderLinearGradient,
		LocalMatrix: Identity(),
		TileX:       tile,
		TileY:       tile,
		Start:       start,
		End:         end,
		Colors:      colors,
		Positions:   positions,
	}
}

// NewImageShader creates a shader that samples img.
func NewImageShader(img Image, tx, ty TileMode, local Matrix) *Shader {
	return &Shader{
		Type:        ShaderImage,
		LocalMatrix: local,
		TileX:       tx,
		TileY:       ty,
		Image:       img,
	}
}

// NewRecordShader creates a shader that replays rec into tile. A buffer
// holding an op whose flags use the shader keeps rec alive.
func NewRecordShader(rec *Record, tile Rect, tx, ty TileMode, local Matrix) *Shader {
	return &Shader{
		Type:        ShaderRecord,
		LocalMatrix: local,
		TileX:       tx,
		TileY:       ty,
		Record:      rec,
		Tile:        tile,
	}
}

func (s *Shader) hasDiscardableImages() bool {
	switch s.Type {
	case ShaderImage:
		return s.Image.IsLazy()
	case ShaderRecord:
		return s.Record != nil && s.Record.Buffer().HasDiscardableImages()
	default:
		return false
	}
}

// IsValid reports whether the shader is internally consistent.
func (s *Shader) IsValid() bool {
	if s.TileX > TileMirror || s.TileY > TileMirror || !s.LocalMatrix.IsFinite() {
		return false
	}
	switch s.Type {
	case ShaderLinearGradient:
		if len(s.Colors) < 2 || len(s.Colors) > maxGradientStops {
			return false
		}
		if s.Positions != nil && len(s.Positions) != len(s.Colors) {
			return false
		}
		return s.Start.IsFinite() && s.End.IsFinite()
	case ShaderImage:
		return !s.Image.IsZero()
	case ShaderRecord:
		return s.Record != nil && s.Tile.IsFinite()
	default:
		return false
	}
}
