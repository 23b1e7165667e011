package InputParameters

import (
	"errors"
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"github.com/jedbrown/fem-2d/basis"
	"github.com/jedbrown/fem-2d/mesh"
)

// Refinement is one step of the refinement schedule, either an h-refinement or a p-refinement of Elems
type Refinement struct {
	Elems []int   `json:"Elems"`
	HRef  string  `json:"HRef,omitempty"`
	Ratio float64 `json:"Ratio,omitempty"`
	PRef  []int   `json:"PRef,omitempty"`
}

// Parameters obtained from the YAML run description
type FEMInputParameters struct {
	Title            string       `json:"Title"`
	MeshFile         string       `json:"MeshFile"`
	ShapeFunctions   string       `json:"ShapeFunctions"`
	ExpansionOrders  []int        `json:"ExpansionOrders"`
	Refinements      []Refinement `json:"Refinements"`
	QuadraturePoints []int        `json:"QuadraturePoints"`
	Parallel         bool         `json:"Parallel"`
	Workers          int          `json:"Workers"`
	TargetEigenvalue float64      `json:"TargetEigenvalue"`
	OutputA          string       `json:"OutputA"`
	OutputB          string       `json:"OutputB"`
	MeshOutput       string       `json:"MeshOutput"`
}

func (ip *FEMInputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func ReadFile(path string) (ip *FEMInputParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	ip = &FEMInputParameters{}
	if err = ip.Parse(data); err != nil {
		err = fmt.Errorf("reading %s: %w", path, err)
		ip = nil
	}
	return
}

func (ip *FEMInputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Mesh File\n", ip.MeshFile)
	fmt.Printf("[%s]\t\t\t= Shape Functions\n", ip.Family())
	fmt.Printf("%v\t\t\t= Expansion Orders\n", ip.Orders())
	nu, nv := ip.Points()
	fmt.Printf("[%d, %d]\t\t\t= Quadrature Points\n", nu, nv)
	fmt.Printf("%v\t\t\t= Parallel, %d workers\n", ip.Parallel, ip.Workers)
	fmt.Printf("%8.5f\t\t= Target Eigenvalue\n", ip.TargetEigenvalue)
	for i, r := range ip.Refinements {
		fmt.Printf("Refinements[%d] = %s\n", i, r)
	}
}

func (r Refinement) String() string {
	if len(r.PRef) != 0 {
		return fmt.Sprintf("p%v on %v", r.PRef, r.Elems)
	}
	if r.Ratio != 0 {
		return fmt.Sprintf("%s(%g) on %v", r.HRef, r.Ratio, r.Elems)
	}
	return fmt.Sprintf("%s on %v", r.HRef, r.Elems)
}

// Family is the shape function family, KOL when unset
func (ip *FEMInputParameters) Family() basis.Family {
	f, _ := basis.ParseFamily(ip.ShapeFunctions)
	return f
}

// Orders are the global expansion orders set before any refinement
func (ip *FEMInputParameters) Orders() mesh.PolyOrders {
	if len(ip.ExpansionOrders) != 2 {
		return mesh.DefaultPolyOrders()
	}
	return mesh.PolyOrders{ip.ExpansionOrders[0], ip.ExpansionOrders[1]}
}

// Points are the quadrature points per axis, zero for the default
func (ip *FEMInputParameters) Points() (nu, nv int) {
	if len(ip.QuadraturePoints) == 2 {
		nu, nv = ip.QuadraturePoints[0], ip.QuadraturePoints[1]
	}
	return
}

func (r Refinement) validate() (err error) {
	switch {
	case len(r.Elems) == 0:
		return errors.New("refinement names no elems")
	case len(r.HRef) != 0 && len(r.PRef) != 0:
		return errors.New("refinement is both an h- and a p-refinement")
	case len(r.HRef) != 0:
		_, err = mesh.ParseHRef(r.HRef, r.Ratio)
		return
	case len(r.PRef) != 2:
		return fmt.Errorf("p-refinement needs two order increments, got %v", r.PRef)
	}
	return
}

func (ip *FEMInputParameters) Validate() (err error) {
	if _, err = basis.ParseFamily(ip.ShapeFunctions); err != nil {
		return
	}
	if len(ip.ExpansionOrders) != 0 {
		if len(ip.ExpansionOrders) != 2 {
			return fmt.Errorf("ExpansionOrders needs two entries, got %v", ip.ExpansionOrders)
		}
		if err = ip.Orders().Validate(); err != nil {
			return
		}
	}
	if len(ip.QuadraturePoints) != 0 {
		if len(ip.QuadraturePoints) != 2 {
			return fmt.Errorf("QuadraturePoints needs two entries, got %v", ip.QuadraturePoints)
		}
		if nu, nv := ip.Points(); nu < 0 || nv < 0 {
			return fmt.Errorf("QuadraturePoints must not be negative, got %v", ip.QuadraturePoints)
		}
	}
	if ip.Workers < 0 {
		return fmt.Errorf("Workers must not be negative, got %d", ip.Workers)
	}
	for i, r := range ip.Refinements {
		if err = r.validate(); err != nil {
			return fmt.Errorf("Refinements[%d]: %w", i, err)
		}
	}
	return
}

// Apply sets the global expansion orders on the mesh and runs the refinement schedule in order
func (ip *FEMInputParameters) Apply(m *mesh.Mesh) (err error) {
	if err = m.SetGlobalExpansion(ip.Orders()); err != nil {
		return
	}
	for i, r := range ip.Refinements {
		if len(r.PRef) != 0 {
			err = m.PRefineElems(r.Elems, mesh.NewPRef(r.PRef[0], r.PRef[1]))
		} else {
			var ref mesh.HRef
			if ref, err = mesh.ParseHRef(r.HRef, r.Ratio); err == nil {
				err = m.HRefineElems(r.Elems, ref)
			}
		}
		if err != nil {
			return fmt.Errorf("Refinements[%d] (%s): %w", i, r, err)
		}
	}
	return
}
