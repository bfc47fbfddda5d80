package css_test

import (
	"math"
	"testing"

	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/css"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

func TestDimenBasic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.css")
	defer teardown()
	//
	ten := css.JustDimen(dimen.PT * 10)
	if !ten.IsAbsolute() || ten.IsRelative() || ten.Unwrap() != 10*dimen.PT {
		t.Errorf("expected JustDimen(10pt) to be a fixed value, isn't: %#v", ten)
	}
	if auto := css.Auto(); !auto.IsAuto() || auto.IsAbsolute() || auto.Unwrap() != 0 {
		t.Errorf("expected dimen auto to be auto, isn't: %#v", auto)
	}
	pcnt := css.Percentage(percent.FromInt(80))
	if !pcnt.IsPercent() || !pcnt.IsRelative() || pcnt.Unwrap() != 0 {
		t.Errorf("expected Percentage(80) to be a percentage value, isn't: %#v", pcnt)
	}
	if d := css.RelDimen(1.5, "rem"); !d.IsRelative() || d.Factor() != 1.5 || d.String() != "1.5rem" {
		t.Errorf("expected 1.5rem to be font relative, is %s", d)
	}
	if d := css.RelDimen(2, "furlong"); !d.IsUnset() {
		t.Errorf("expected unknown unit to result in an unset dimension, is %s", d)
	}
}

func TestDimenFromProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.css")
	defer teardown()
	//
	d := css.Dimen("12pt")
	if !d.IsAbsolute() || math.Abs(css.ToPixels(d.Unwrap())-16) > 1e-3 {
		t.Errorf("expected 12pt to be 16px, is %s", d)
	}
	if css.Dimen("30px").String() != "30px" {
		t.Errorf("expected 30px to format as 30px, is %s", css.Dimen("30px"))
	}
	if d := css.Dimen("80%"); !d.IsPercent() || d.Factor() != 80 {
		t.Errorf("expected 80%% to be a percentage of 80, is %s", d)
	}
	if d := css.Dimen("2vw"); !d.IsRelative() || d.IsPercent() || d.String() != "2vw" {
		t.Errorf("expected 2vw to be viewport relative, is %s", d)
	}
	if !css.Dimen("none").IsNone() || !css.Dimen("auto").IsAuto() {
		t.Errorf("expected keywords none and auto to be recognized")
	}
	if !css.Dimen("12 px").IsUnset() || !css.Dimen("").IsUnset() {
		t.Errorf("expected illegal dimensions to be unset")
	}
	if d := css.Dimen("1em"); !d.IsRelative() || d.IsPercent() {
		t.Errorf("expected em to be relative but not a percentage, is %s", d)
	}
	for _, kw := range []string{"inherit", "initial", "max-content"} {
		if d := css.Dimen(style.Property(kw)); d.String() != kw {
			t.Errorf("expected keyword %s to be recognized, is %s", kw, d)
		}
	}
	if css.Dimen("medium").Unwrap() != css.Pixels(3) {
		t.Errorf("expected border width keyword medium to be 3px")
	}
}
