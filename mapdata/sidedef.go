package mapdata

// AbsentTexture is the sentinel texture name meaning "no texture here".
const AbsentTexture = "-"

// Sidedef carries the textures and offsets used on one side of a Linedef.
// Sector is a shared, mutable reference: many sidedefs may point at the
// same Sector, and light-level changes made through one are visible
// through all of them.
type Sidedef struct {
	ID           int
	XOffset      float32
	YOffset      float32
	UpperTexture string
	LowerTexture string
	MidTexture   string
	Sector       *Sector
}

// HasUpperTexture reports whether the upper texture name is present.
func (s *Sidedef) HasUpperTexture() bool {
	return s.UpperTexture != AbsentTexture && s.UpperTexture != ""
}

// HasLowerTexture reports whether the lower texture name is present.
func (s *Sidedef) HasLowerTexture() bool {
	return s.LowerTexture != AbsentTexture && s.LowerTexture != ""
}

// HasMidTexture reports whether the middle texture name is present.
func (s *Sidedef) HasMidTexture() bool { return s.MidTexture != AbsentTexture && s.MidTexture != "" }
