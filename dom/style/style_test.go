package style

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.style")
	defer teardown()
	//
	for _, k := range []string{"color", "font-size", "font-family", "line-height", "visibility",
		"cursor", "direction", "list-style-type", "border-collapse", "white-space"} {
		if !IsInherited(k) {
			t.Errorf("expected %s to be inherited, isn't", k)
		}
	}
	for _, k := range []string{"margin-top", "display", "width", "background-color",
		"border-top-width", "text-decoration-line", "position"} {
		if IsInherited(k) {
			t.Errorf("expected %s not to be inherited, is", k)
		}
	}
	if InitialValue("display") != "inline" {
		t.Errorf("expected initial display to be inline, is %q", InitialValue("display"))
	}
	if GroupNameFromPropertyKey("margin-left") != PGMargins || GroupNameFromPropertyKey("funny") != PGX {
		t.Errorf("expected property groups Margins/X, are %s/%s",
			GroupNameFromPropertyKey("margin-left"), GroupNameFromPropertyKey("funny"))
	}
	keys := Keys()
	require.Equal(t, Count(), len(keys))
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("expected keys to be sorted, aren't at %d: %s, %s", i, keys[i-1], keys[i])
		}
	}
	i, ok := Index("color")
	assert.True(t, ok)
	assert.Equal(t, "color", keys[i])
	for _, k := range keys {
		if InitialValue(k).IsEmpty() {
			t.Errorf("expected every known property to have an initial value, %s hasn't", k)
		}
		if IsShorthand(k) {
			t.Errorf("expected %s not to be both longhand and shorthand", k)
		}
	}
}

func TestPropertyKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.style")
	defer teardown()
	//
	assert.True(t, Property("revert").IsUnset())
	assert.True(t, Property("inherit").IsCSSWide())
	assert.False(t, Property("auto").IsCSSWide())
	assert.Equal(t, Property("1px solid red"), Property("  1PX   Solid\tRED ").Normalize())
	assert.Equal(t, Property(`"Times New" Roman`), Property(`"Times New"  Roman`).Normalize())
}

func TestSplitCompoundProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.style")
	defer teardown()
	//
	kv, err := SplitCompoundProperty("margin", "1px 2px 3px")
	require.NoError(t, err)
	want := []KeyValue{{"margin-top", "1px"}, {"margin-right", "2px"},
		{"margin-bottom", "3px"}, {"margin-left", "2px"}}
	assert.Equal(t, want, kv)
	kv, err = SplitCompoundProperty("border-radius", "1px 2px")
	require.NoError(t, err)
	assert.Equal(t, "border-top-left-radius", kv[0].Key)
	assert.Equal(t, Property("2px"), kv[1].Value)
	assert.Equal(t, "border-bottom-right-radius", kv[2].Key)
	_, err = SplitCompoundProperty("color", "red")
	if !errors.Is(err, ErrNotShorthand) {
		t.Errorf("expected ErrNotShorthand, is %v", err)
	}
	_, err = SplitCompoundProperty("padding", "1px 2px 3px 4px 5px")
	assert.Error(t, err)
}

func TestExpandShorthand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.style")
	defer teardown()
	//
	asMap := func(kvs []KeyValue) map[string]Property {
		m := make(map[string]Property, len(kvs))
		for _, kv := range kvs {
			m[kv.Key] = kv.Value
		}
		return m
	}
	kv, err := ExpandShorthand("border", "1px solid rgb(255, 0, 0)")
	require.NoError(t, err)
	m := asMap(kv)
	assert.Len(t, m, 12)
	assert.Equal(t, Property("1px"), m["border-left-width"])
	assert.Equal(t, Property("solid"), m["border-top-style"])
	assert.Equal(t, Property("rgb(255, 0, 0)"), m["border-bottom-color"])
	//
	kv, err = ExpandShorthand("border-top", "dashed")
	require.NoError(t, err)
	m = asMap(kv)
	assert.Equal(t, Property("medium"), m["border-top-width"])
	assert.Equal(t, Property("currentcolor"), m["border-top-color"])
	//
	kv, err = ExpandShorthand("padding", "inherit")
	require.NoError(t, err)
	for _, x := range kv {
		assert.Equal(t, Property("inherit"), x.Value)
	}
	//
	m = asMap(must(ExpandShorthand("flex", "2")))
	assert.Equal(t, map[string]Property{"flex-grow": "2", "flex-shrink": "1", "flex-basis": "0%"}, m)
	m = asMap(must(ExpandShorthand("list-style", "square inside")))
	assert.Equal(t, Property("square"), m["list-style-type"])
	assert.Equal(t, Property("inside"), m["list-style-position"])
	m = asMap(must(ExpandShorthand("background", "white")))
	assert.Equal(t, Property("white"), m["background-color"])
	assert.Equal(t, Property("none"), m["background-image"])
	m = asMap(must(ExpandShorthand("text-decoration", "underline dotted")))
	assert.Equal(t, Property("underline"), m["text-decoration-line"])
	assert.Equal(t, Property("dotted"), m["text-decoration-style"])
	//
	kv, err = ExpandShorthand("color", "red")
	require.NoError(t, err)
	assert.Equal(t, []KeyValue{{"color", "red"}}, kv)
	_, err = ExpandShorthand("border", "1px solid red blue")
	assert.Error(t, err)
}

func must(kv []KeyValue, err error) []KeyValue {
	if err != nil {
		panic(err)
	}
	return kv
}

func TestParseColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.style")
	defer teardown()
	//
	tests := []struct {
		in   Property
		want color.RGBA
		ok   bool
	}{
		{"red", color.RGBA{255, 0, 0, 255}, true},
		{"RebeccaPurple", color.RGBA{102, 51, 153, 255}, true},
		{"#0f0", color.RGBA{0, 255, 0, 255}, true},
		{"#0000ff", color.RGBA{0, 0, 255, 255}, true},
		{"rgb(10, 20, 30)", color.RGBA{10, 20, 30, 255}, true},
		{"rgb(100% 0% 0%)", color.RGBA{255, 0, 0, 255}, true},
		{"hsl(120, 100%, 50%)", color.RGBA{0, 255, 0, 255}, true},
		{"transparent", color.RGBA{}, true},
		{"#12", color.RGBA{}, false},
		{"rgb(1, 2)", color.RGBA{}, false},
		{"nocolor", color.RGBA{}, false},
	}
	for _, tt := range tests {
		c, ok := ParseColor(tt.in)
		if ok != tt.ok || (ok && c != tt.want) {
			t.Errorf("ParseColor(%q): expected %v/%v, is %v/%v", tt.in, tt.want, tt.ok, c, ok)
		}
	}
	assert.True(t, IsColor("currentColor"))
	assert.Nil(t, Property("currentcolor").Color())
	assert.Equal(t, "#ff0000", ColorString(color.RGBA{255, 0, 0, 255}))
	assert.Equal(t, "currentcolor", ColorString(nil))
}

func TestUserAgentCSS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.style")
	defer teardown()
	//
	ua := UserAgentCSS()
	if !strings.Contains(ua, "li { display: list-item }") {
		t.Errorf("expected UA sheet to display <li> as list-item")
	}
	assert.Equal(t, Property("block"), DisplayPropertyForTag("p"))
	assert.Equal(t, Property("inline"), DisplayPropertyForTag("span"))
	assert.Equal(t, Property("none"), DisplayPropertyForTag("head"))
}
