package css

import (
	"math"
	"strconv"
	"strings"

	"github.com/kvcpers/apollo/dom/style"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	dimenNoValue  uint32 = 0x0005 // CSS keyword 'none'
	kindMask      uint32 = 0x000f

	// Flags for content dependent dimensions
	DimenContentMax uint32 = 0x0010
	DimenContentMin uint32 = 0x0020
	DimenContentFit uint32 = 0x0030

	dimenEM      uint32 = 0x0100
	dimenEX      uint32 = 0x0200
	dimenCH      uint32 = 0x0300
	dimenREM     uint32 = 0x0400
	dimenVW      uint32 = 0x0500
	dimenVH      uint32 = 0x0600
	dimenVMIN    uint32 = 0x0700
	dimenVMAX    uint32 = 0x0800
	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

var relUnits = map[string]uint32{
	"em": dimenEM, "ex": dimenEX, "ch": dimenCH, "rem": dimenREM,
	"vw": dimenVW, "vh": dimenVH, "vmin": dimenVMIN, "vmax": dimenVMAX,
}

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d       dimen.DU
	percent percent.Percent
	x       float64 // factor for relative dimensions
	flags   uint32
}

// Auto is the CSS keyword 'auto'.
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// None is the CSS keyword 'none', used e.g. for max-width.
func None() DimenT {
	return DimenT{flags: dimenNoValue}
}

// Inherit is the CSS keyword 'inherit'.
func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(n percent.Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// RelDimen creates a CSS dimension relative to font metrics (em, ex, ch,
// rem) or to the viewport (vw, vh, vmin, vmax). Unknown units result in an
// unset dimension.
func RelDimen(x float64, unit string) DimenT {
	u, ok := relUnits[unit]
	if !ok {
		return DimenT{}
	}
	return DimenT{x: x, flags: u}
}

// Dimen returns an optional dimension type from a property string. Absolute
// lengths are converted to dimen.DU, using the CSS ratio of 96px per inch.
// Illegal input results in an unset dimension.
func Dimen(p style.Property) DimenT {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	switch s {
	case "":
		return DimenT{}
	case "auto":
		return Auto()
	case "none":
		return None()
	case "inherit":
		return Inherit()
	case "initial", "unset", "revert":
		return Initial()
	case "max-content":
		return DimenT{flags: DimenContentMax}
	case "min-content":
		return DimenT{flags: DimenContentMin}
	case "fit-content":
		return DimenT{flags: DimenContentFit}
	case "thin", "medium", "thick":
		return JustDimen(Pixels(borderWidthKeywords[s]))
	}
	l, ok := ParseLength(s)
	switch {
	case !ok:
		tracer().Debugf("illegal dimension %q", s)
		return DimenT{}
	case l.Unit == "%":
		d := Percentage(percent.FromInt(int(math.Round(l.Value))))
		d.x = l.Value
		return d
	case l.IsAbsolute():
		px, _ := l.Pixels()
		return JustDimen(Pixels(px))
	}
	return RelDimen(l.Value, l.Unit)
}

// Pixels converts CSS pixels to design units. A CSS pixel is 0.75pt.
func Pixels(px float64) dimen.DU {
	return dimen.DU(math.Round(px * 0.75 * float64(dimen.PT)))
}

// ToPixels converts design units to CSS pixels.
func ToPixels(d dimen.DU) float64 {
	return float64(d) / (0.75 * float64(dimen.PT))
}

// IsUnset returns true if d does not represent a valid dimension.
func (d DimenT) IsUnset() bool {
	return d.flags == dimenNone
}

// IsAuto returns true if d is 'auto'.
func (d DimenT) IsAuto() bool {
	return d.flags&kindMask == dimenAuto
}

// IsNone returns true if d is 'none'.
func (d DimenT) IsNone() bool {
	return d.flags&kindMask == dimenNoValue
}

// IsAbsolute returns true if d is a fixed dimension.
func (d DimenT) IsAbsolute() bool {
	return d.flags&kindMask == dimenAbsolute
}

// IsPercent returns true if d is a %-relative dimension.
func (d DimenT) IsPercent() bool {
	return d.flags&relativeMask == dimenPercent
}

// IsRelative returns true if d is relative to font metrics, the viewport or
// a percentage.
func (d DimenT) IsRelative() bool {
	return d.flags&relativeMask > 0
}

// Unwrap returns the fixed value of d, or 0 for non-absolute dimensions.
func (d DimenT) Unwrap() dimen.DU {
	if d.IsAbsolute() {
		return d.d
	}
	return 0
}

// Factor returns the numeric factor of a relative dimension, e.g. 1.5 for
// "1.5em" or 80 for "80%".
func (d DimenT) Factor() float64 {
	return d.x
}

func (d DimenT) String() string {
	switch {
	case d.IsAbsolute():
		return FormatPixels(ToPixels(d.d)).String()
	case d.IsPercent():
		return strconv.FormatFloat(d.x, 'f', -1, 64) + "%"
	case d.IsRelative():
		for u, f := range relUnits {
			if d.flags&relativeMask == f {
				return strconv.FormatFloat(d.x, 'f', -1, 64) + u
			}
		}
	}
	switch d.flags {
	case dimenAuto:
		return "auto"
	case dimenNoValue:
		return "none"
	case dimenInherit:
		return "inherit"
	case dimenInitial:
		return "initial"
	case DimenContentMax:
		return "max-content"
	case DimenContentMin:
		return "min-content"
	case DimenContentFit:
		return "fit-content"
	}
	return "<unset>"
}
