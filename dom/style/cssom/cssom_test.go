package cssom

import (
	"errors"
	"testing"

	"github.com/kvcpers/apollo/dom/style/selector"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginFold(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	if !(UserAgent < User && User < Author && Author < AuthorImportant && AuthorImportant < UserImportant) {
		t.Fatalf("expected origins to be ordered by precedence")
	}
	tests := []struct {
		o         Origin
		important bool
		want      Origin
	}{
		{UserAgent, false, UserAgent},
		{UserAgent, true, UserAgent},
		{User, true, UserImportant},
		{Author, true, AuthorImportant},
		{Author, false, Author},
	}
	for _, tt := range tests {
		if f := tt.o.Fold(tt.important); f != tt.want {
			t.Errorf("%s.Fold(%v): expected %s, is %s", tt.o, tt.important, tt.want, f)
		}
	}
	assert.Equal(t, User, UserImportant.Base())
	assert.Equal(t, "author-important", AuthorImportant.String())
}

func TestRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	r, err := NewRule("ul > li, p", Decl("Margin-Top", "15px"), Decl("color", "red !important"),
		Decl("margin-top", "20px"))
	require.NoError(t, err)
	assert.Equal(t, "ul > li, p", r.Selector())
	assert.Equal(t, []string{"margin-top", "color", "margin-top"}, r.Properties())
	assert.Equal(t, Declaration{Property: "margin-top", Value: "15px"}, r.Declarations[0])
	assert.Equal(t, Declaration{Property: "color", Value: "red", Important: true}, r.Declarations[1])
	assert.Equal(t, "color: red !important", r.Declarations[1].String())
	//
	_, err = NewRule("ul >", Decl("color", "red"))
	assert.True(t, errors.Is(err, selector.ErrMalformed), "expected ErrMalformed, is %v", err)
}

func TestSheets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	s1 := NewSheet(MustRule("p", Decl("color", "red")))
	s2 := NewSheet()
	assert.True(t, s2.Empty())
	s2.DeclareLayer("base")
	s2.AddRule(MustRule("div", Decl("color", "blue")))
	s1.AppendRules(s2)
	assert.Len(t, s1.Rules(), 2)
	assert.Equal(t, []string{"base"}, s1.Layers())
	assert.Equal(t, 0, s1.DeclareLayer("base"))
	assert.Equal(t, 1, s1.DeclareLayer("components"))
	//
	var sheets Sheets
	sheets.Add(Author, s1).Add(UserAgent, s2).Add(AuthorImportant, s2)
	assert.Equal(t, 3, sheets.Len())
	assert.Len(t, sheets.Of(Author), 2)
	assert.Len(t, sheets.Of(User), 0)
	var none *Sheets
	assert.Nil(t, none.Of(Author))
}

func TestRankLayers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	ranks := RankLayers([]string{"reset", "base", "theme", "base.inner", "base.inner.deep", "a.b"})
	want := map[string]int{
		"reset":           0,
		"base.inner.deep": 1,
		"base.inner":      2,
		"base":            3,
		"theme":           4,
		"a.b":             5,
		"a":               6,
	}
	assert.Equal(t, want, ranks)
	assert.Empty(t, RankLayers(nil))
}
