package css

import (
	"strings"

	"github.com/kvcpers/apollo/dom/style"
)

type position uint8

const (
	positionUnset position = iota
	positionStatic
	positionRelative
	positionAbsolute
	positionFixed
	positionSticky
)

var positionNames = [...]string{
	positionUnset:    "<unset>",
	positionStatic:   "static",
	positionRelative: "relative",
	positionAbsolute: "absolute",
	positionFixed:    "fixed",
	positionSticky:   "sticky",
}

// PositionT is the computed value of property position, together with the
// box offsets of positioned boxes.
type PositionT struct {
	offsets []PositionOffset
	kind    position
}

// PositionOffset is a dimension for one of the offset properties top, right,
// bottom or left.
type PositionOffset struct {
	Dim DimenT
	Dir PosDir
}

// PosDir is either Top, Right, Bottom or Left. It is used for box sides
// as well.
type PosDir uint8

const (
	Top PosDir = iota
	Right
	Bottom
	Left
)

func (d PosDir) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return "?"
}

// NormalizeOffsets orders offsets by direction into a slice of four. Offsets
// with an invalid direction are dropped, missing directions stay unset.
func NormalizeOffsets(offsets []PositionOffset) []PositionOffset {
	norm := make([]PositionOffset, 4)
	for d := Top; d <= Left; d++ {
		norm[d].Dir = d
	}
	for _, o := range offsets {
		if o.Dir <= Left {
			norm[o.Dir] = o
		}
	}
	return norm
}

// Position interprets a value of property position. Offsets are kept for
// positioned boxes only and may be given partially. Illegal values yield an
// unset position.
func Position(p style.Property, offsets ...PositionOffset) PositionT {
	var kind position
	switch strings.ToLower(string(p)) {
	case "static":
		return PositionT{kind: positionStatic}
	case "relative":
		kind = positionRelative
	case "absolute":
		kind = positionAbsolute
	case "fixed":
		kind = positionFixed
	case "sticky":
		kind = positionSticky
	default:
		return PositionT{}
	}
	return PositionT{kind: kind, offsets: NormalizeOffsets(offsets)}
}

func (p PositionT) String() string {
	return positionNames[p.kind]
}

// Offsets returns the normalized offsets (top, right, bottom, left) of a
// positioned box, or nil for static and unset positions.
func (p PositionT) Offsets() []PositionOffset {
	return p.offsets
}

// IsUnset returns true if p is unset.
func (p PositionT) IsUnset() bool {
	return p.kind == positionUnset
}

// IsRelative returns true if p represents a relative position.
func (p PositionT) IsRelative() bool {
	return p.kind == positionRelative
}

// IsAbsolute returns true if p represents an absolute position.
func (p PositionT) IsAbsolute() bool {
	return p.kind == positionAbsolute
}

// IsPositioned returns true for any position other than static (or unset).
func (p PositionT) IsPositioned() bool {
	return p.kind != positionUnset && p.kind != positionStatic
}
