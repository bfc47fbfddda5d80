/*
Package domdbg implements helpers to debug a styled document tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/kvcpers/apollo/dom"
	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/computed"
	tp "github.com/xlab/treeprint"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname       string
	StyleGroups    []string
	NodeTmpl       *template.Template
	EdgeTmpl       *template.Template
	StylegroupTmpl *template.Template
	PgedgeTmpl     *template.Template
	PgpgTmpl       *template.Template
}

var defaultGroups = []string{
	style.PGMargins,
	style.PGPadding,
	style.PGBorder,
	style.PGDisplay,
}

// Print returns an indented text rendering of the subtree at root. If store
// is not nil, every node is annotated with the values of its computed style
// for the given property keys.
func Print(tree dom.Tree, root dom.NodeID, store *computed.Store, keys ...string) string {
	p := tp.New()
	printNode(p, tree, root, store, keys)
	return p.String()
}

func printNode(p tp.Tree, tree dom.Tree, id dom.NodeID, store *computed.Store, keys []string) {
	label := dom.Describe(tree, id)
	if s, ok := store.Get(id); ok && len(keys) > 0 {
		vals := make([]string, len(keys))
		for i, k := range keys {
			vals[i] = k + ": " + s.Get(k).String()
		}
		label += " {" + strings.Join(vals, "; ") + "}"
	}
	children := tree.Children(id)
	if len(children) == 0 {
		p.AddNode(label)
		return
	}
	branch := p.AddBranch(label)
	for _, ch := range children {
		printNode(branch, tree, ch, store, keys)
	}
}

// ToGraphViz outputs a diagram for a styled document tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the tree and its root, the
// store of a resolution pass, a Writer, and an optional list of style
// property groups. The diagram will include all styles belonging to one of
// the property groups.
//
// If the client does not provide a list of style groups, the following
// default will be used:
//
//     - Margins
//     - Padding
//     - Border
//     - Display
//
func ToGraphViz(tree dom.Tree, root dom.NodeID, store *computed.Store, w io.Writer,
	styleGroups []string) error {
	//
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.StylegroupTmpl = template.Must(template.New("stylegroup").Parse(styleGroupTmpl))
	gparams.PgedgeTmpl = template.Must(template.New("pgedge").Parse(pgEdgeTmpl))
	gparams.PgpgTmpl = template.Must(template.New("pgpgedge").Parse(pgpgEdgeTmpl))
	gparams.StyleGroups = styleGroups
	if styleGroups == nil {
		gparams.StyleGroups = defaultGroups
	}
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	g := &graph{tree: tree, store: store, w: w, params: &gparams}
	if err = g.nodes(root); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a styled tree and a testing.T, it will
// create a Graphiviz image of the tree under `root` and write it to a file
// in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(tree dom.Tree, root dom.NodeID, store *computed.Store, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "dom.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing DOM digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(tree, root, store, tmpfile, nil); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing DOM tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type graph struct {
	tree   dom.Tree
	store  *computed.Store
	w      io.Writer
	params *graphParamsType
}

type node struct {
	Name   string
	Tag    string
	IsText bool
	Text   string
}

func nodeName(id dom.NodeID) string {
	return fmt.Sprintf("node%05d", id)
}

func (g *graph) nodes(id dom.NodeID) error {
	if err := g.domNode(id); err != nil {
		return err
	}
	for _, ch := range g.tree.Children(id) {
		if err := g.nodes(ch); err != nil {
			return err
		}
		e := edge{N1: nodeName(id), N2: nodeName(ch)}
		if err := g.params.EdgeTmpl.Execute(g.w, e); err != nil {
			return err
		}
	}
	return nil
}

func (g *graph) domNode(id dom.NodeID) error {
	n := node{Name: nodeName(id)}
	if g.tree.IsElement(id) {
		n.Tag = dom.Describe(g.tree, id)
	} else {
		n.IsText, n.Text = true, g.tree.Text(id)
	}
	if err := g.params.NodeTmpl.Execute(g.w, &n); err != nil {
		return err
	}
	return g.domStyles(id)
}

func (g *graph) domStyles(id dom.NodeID) error {
	s, ok := g.store.Get(id)
	if !ok {
		return nil
	}
	var prev *style.PropertyGroup
	for _, name := range g.params.StyleGroups {
		pg := s.Group(name)
		if pg == nil {
			continue
		}
		if err := g.params.StylegroupTmpl.Execute(g.w, pg); err != nil {
			return err
		}
		var err error
		if prev == nil {
			err = g.params.PgedgeTmpl.Execute(g.w, pgedge{nodeName(id), pg})
		} else {
			err = g.params.PgpgTmpl.Execute(g.w, []*style.PropertyGroup{prev, pg})
		}
		if err != nil {
			return err
		}
		prev = pg
	}
	return nil
}

type edge struct {
	N1, N2 string
}

type pgedge struct {
	Name      string
	PropGroup *style.PropertyGroup
}

func shortText(n *node) string {
	t := n.Text
	s := "\"\\\""
	if len(t) > 10 {
		s += t[:10] + "...\\\"\""
	} else {
		s += t + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if .IsText }}
{{ .Name }}	[ label={{ shortstring . }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .Tag }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const styleGroupTmpl = `{{ printf "pg%p" . }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Name }}</font></td></tr>
      {{ range .Properties }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value }}</td></tr>
      {{ else }}
      <tr><td colspan="2">no styles</td></tr>
      {{ end }}
    </table>> ] ;
`

const domEdgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`

const pgEdgeTmpl = `{{ .Name }} -> {{ printf "pg%p" .PropGroup }} [dir=none weight=1 style="dashed"] ;
`

const pgpgEdgeTmpl = `{{ index . 0 | printf "pg%p"  }} -> {{ index . 1 | printf "pg%p" }} [dir=none weight=1 style="dashed"] ;
`
