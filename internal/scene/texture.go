package scene

// VariantCount is the number of art variants per band.
const VariantCount = 5

// Texture identifies the art used to draw a planet.
type Texture struct {
	Band    Band
	Variant int // 0..VariantCount-1
}

// Pattern names for each variant, in variant order.
var patternNames = [VariantCount]string{"smooth", "banded", "cratered", "swirled", "mottled"}

// patternGlyphs are the fill characters for each variant, darkest last.
// The detail view shades a disc with these, picking by lighting intensity.
var patternGlyphs = [VariantCount][]rune{
	{'█', '▓', '▒', '░'},
	{'≡', '═', '─', '·'},
	{'●', 'o', '°', '.'},
	{'@', '%', '~', '-'},
	{'#', '*', '+', ':'},
}

// VariantFor derives the art variant from the identifier: the sum of its
// character codes modulo VariantCount.
func VariantFor(id string) int {
	sum := 0
	for _, r := range id {
		sum += int(r)
	}
	return sum % VariantCount
}

// TextureFor returns the texture for an object. It depends only on the
// identifier and temperature, so an object renders the same way in every
// session.
func TextureFor(id string, tempK float64) Texture {
	return Texture{
		Band:    Classify(tempK),
		Variant: VariantFor(id),
	}
}

// Pattern returns the variant's pattern name.
func (t Texture) Pattern() string {
	return patternNames[t.Variant%VariantCount]
}

// Glyphs returns the variant's shading ramp, brightest first.
func (t Texture) Glyphs() []rune {
	return patternGlyphs[t.Variant%VariantCount]
}

// Glyph picks a shading glyph for an intensity in [0,1].
func (t Texture) Glyph(intensity float64) rune {
	ramp := t.Glyphs()
	if intensity <= 0 {
		return ramp[len(ramp)-1]
	}
	if intensity >= 1 {
		return ramp[0]
	}
	idx := int((1 - intensity) * float64(len(ramp)))
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	return ramp[idx]
}
