package inherit

import (
	"testing"

	"github.com/kvcpers/apollo/dom/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

type props = map[string]style.Property

func TestRootUsesInitialValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.inherit")
	defer teardown()
	//
	root := Propagate(nil, nil, nil)
	assert.Equal(t, style.Count(), root.Len(), "every property has a value")
	for key, want := range (props{
		"font-size":        "16px",
		"color":            "black",
		"margin-top":       "0px",
		"border-top-width": "0px",
		"outline-width":    "0px",
		"font-weight":      "400",
		"line-height":      "normal",
		"display":          "block", // root boxes are blockified
		"width":            "auto",
	}) {
		if v := root.Get(key); v != want {
			t.Errorf("%s: expected %q, is %q", key, want, v)
		}
	}
}

func TestFontSizeInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.inherit")
	defer teardown()
	//
	root := Propagate(nil, nil, props{"font-size": "20px"})
	p := Propagate(root, root, props{"font-size": "150%", "margin-left": "2em", "padding-top": "2rem"})
	span := Propagate(p, root, nil)
	assert.Equal(t, style.Property("30px"), p.Get("font-size"))
	assert.Equal(t, style.Property("60px"), p.Get("margin-left"), "em refers to the own font size")
	assert.Equal(t, style.Property("40px"), p.Get("padding-top"), "rem refers to the root")
	assert.Equal(t, style.Property("30px"), span.Get("font-size"), "descendants inherit absolute sizes")
	assert.Equal(t, style.Property("0px"), span.Get("margin-left"), "margins are not inherited")
	//
	tests := []struct {
		value style.Property
		want  style.Property
	}{
		{"1.5em", "30px"},
		{"2rem", "40px"},
		{"larger", "24px"},
		{"smaller", "16.6667px"},
		{"large", "18px"},
		{"12pt", "16px"},
		{"1ex", "10px"},
		{"inherit", "20px"},
		{"initial", "16px"},
		{"-3px", "20px"},
		{"bogus", "20px"},
		{"0", "0px"},
	}
	for _, tt := range tests {
		s := Propagate(root, root, props{"font-size": tt.value})
		if fs := s.Get("font-size"); fs != tt.want {
			t.Errorf("font-size %q: expected %q, is %q", tt.value, tt.want, fs)
		}
	}
}

func TestCSSWideKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.inherit")
	defer teardown()
	//
	root := Propagate(nil, nil, props{"color": "red", "margin-top": "7px"})
	tests := []struct {
		key   string
		value style.Property
		want  style.Property
	}{
		{"margin-top", "inherit", "7px"},
		{"margin-top", "unset", "0px"},
		{"margin-top", "revert", "0px"},
		{"color", "unset", "red"},
		{"color", "initial", "black"},
		{"color", "Inherit", "red"},
		{"color", "currentcolor", "red"},
		{"visibility", "", "visible"},
	}
	for _, tt := range tests {
		s := Propagate(root, root, props{tt.key: tt.value})
		if v := s.Get(tt.key); v != tt.want {
			t.Errorf("%s: %q: expected %q, is %q", tt.key, tt.value, tt.want, v)
		}
	}
}

func TestComputedValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.inherit")
	defer teardown()
	//
	root := Propagate(nil, nil, props{"font-size": "20px", "font-weight": "bold"})
	s := Propagate(root, root, props{
		"color":             "Blue",
		"border-top-color":  "currentcolor",
		"border-top-style":  "solid",
		"border-top-width":  "thick",
		"border-left-width": "10px",
		"line-height":       "150%",
		"font-weight":       "bolder",
		"width":             "50%",
		"border-spacing":    "1em 0",
		"float":             "left",
		"display":           "inline-flex",
	})
	for key, want := range (props{
		"color":             "blue",
		"border-top-color":  "blue",
		"border-top-width":  "5px",
		"border-left-width": "0px", // border-left-style is none
		"line-height":       "30px",
		"font-weight":       "900",
		"width":             "50%",
		"border-spacing":    "20px 0px",
		"display":           "flex",
	}) {
		if v := s.Get(key); v != want {
			t.Errorf("%s: expected %q, is %q", key, want, v)
		}
	}
	child := Propagate(s, root, props{"line-height": "1.5", "font-weight": "lighter"})
	assert.Equal(t, style.Property("1.5"), child.Get("line-height"))
	assert.Equal(t, style.Property("700"), child.Get("font-weight"))
	assert.Equal(t, style.Property("inline"), child.Get("display"))
	grandchild := Propagate(child, root, nil)
	assert.Equal(t, style.Property("1.5"), grandchild.Get("line-height"), "factors are inherited as such")
}

func TestViewportUnits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.inherit")
	defer teardown()
	//
	decl := props{"width": "10vw", "height": "50vh", "min-width": "10vmin", "max-width": "10vmax"}
	s := Propagator{ViewportWidth: 800, ViewportHeight: 600}.Propagate(nil, nil, decl)
	assert.Equal(t, style.Property("80px"), s.Get("width"))
	assert.Equal(t, style.Property("300px"), s.Get("height"))
	assert.Equal(t, style.Property("60px"), s.Get("min-width"))
	assert.Equal(t, style.Property("80px"), s.Get("max-width"))
	unresolved := Propagate(nil, nil, decl)
	assert.Equal(t, style.Property("10vw"), unresolved.Get("width"))
}
