package mesh

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
)

type nodeExport struct {
	ID       int        `json:"id"`
	Point    [2]float64 `json:"point"`
	Boundary bool       `json:"boundary"`
}

type edgeExport struct {
	ID       int    `json:"id"`
	Nodes    [2]int `json:"nodes"`
	Dir      string `json:"dir"`
	Boundary bool   `json:"boundary"`
	Parent   *int   `json:"parent,omitempty"`
	Children []int  `json:"children,omitempty"`
	Elems    [2]int `json:"elems"`
}

type elemExport struct {
	ID         int           `json:"id"`
	Element    int           `json:"element"`
	Nodes      [4]int        `json:"nodes"`
	Edges      [4]int        `json:"edges"`
	Active     bool          `json:"active"`
	Parent     *int          `json:"parent,omitempty"`
	Children   []int         `json:"children,omitempty"`
	HRef       string        `json:"h_ref,omitempty"`
	PolyOrders [2]int        `json:"poly_orders"`
	HLevels    [2]int        `json:"h_levels"`
	Range      [2][2]float64 `json:"parametric_range"`
}

type meshExport struct {
	Nodes []nodeExport `json:"nodes"`
	Edges []edgeExport `json:"edges"`
	Elems []elemExport `json:"elems"`
}

func (m *Mesh) export() (me meshExport) {
	me.Nodes = make([]nodeExport, len(m.Nodes))
	for i, n := range m.Nodes {
		me.Nodes[i] = nodeExport{ID: n.ID, Point: n.Point.X, Boundary: n.Boundary}
	}
	me.Edges = make([]edgeExport, len(m.Edges))
	for i, e := range m.Edges {
		ee := edgeExport{ID: e.ID, Nodes: e.Nodes, Dir: e.Dir.String(), Boundary: e.Boundary,
			Children: e.Children, Elems: e.Elems}
		if e.Parent >= 0 {
			p := e.Parent
			ee.Parent = &p
		}
		me.Edges[i] = ee
	}
	me.Elems = make([]elemExport, len(m.Elems))
	for i, e := range m.Elems {
		ee := elemExport{ID: e.ID, Element: e.Element.ID, Nodes: e.Nodes, Edges: e.Edges,
			Active: e.IsLeaf(), Children: e.ChildIDs(), PolyOrders: e.PolyOrders, HLevels: e.HLevels,
			Range: e.ParametricRange()}
		if p, ok := e.ParentID(); ok {
			ee.Parent = &p
		}
		if ref, ok := e.Refinement(); ok {
			ee.HRef = ref.String()
		}
		me.Elems[i] = ee
	}
	return
}

// Export writes the refined state of the mesh as JSON
func (m *Mesh) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m.export())
}

// ExportYAML writes the refined state of the mesh as YAML
func (m *Mesh) ExportYAML(w io.Writer) (err error) {
	var (
		data []byte
	)
	if data, err = yaml.Marshal(m.export()); err != nil {
		return
	}
	_, err = w.Write(data)
	return
}

// WriteJSON exports the mesh to a file, as YAML when the file extension is .yaml or .yml
func (m *Mesh) WriteJSON(path string) (err error) {
	var (
		f *os.File
	)
	if f, err = os.Create(path); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = m.ExportYAML(f)
	default:
		err = m.Export(f)
	}
	if err != nil {
		err = fmt.Errorf("exporting mesh to %s: %w", path, err)
	}
	return
}
