/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jedbrown/fem-2d/InputParameters"
	"github.com/jedbrown/fem-2d/domain"
	"github.com/jedbrown/fem-2d/eigensolver"
	"github.com/jedbrown/fem-2d/integration"
	"github.com/jedbrown/fem-2d/mesh"
	"github.com/jedbrown/fem-2d/utils"
)

type ModelFEM struct {
	ICFile   string
	GridFile string
	Parallel bool
	Workers  int
	Profile  string
	Solve    bool
}

const exampleFile = `
########################################
Title: "cavity"
MeshFile: "mesh.json"
ShapeFunctions: KOL # Can be "MaxOrtho"
ExpansionOrders: [1, 1]
Refinements:
  - Elems: [0]
    HRef: T
TargetEigenvalue: 2.4
OutputA: a.petsc
OutputB: b.petsc
########################################
`

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Refine a mesh, assemble the eigenproblem matrices and optionally solve it",
	Long: `Refine a mesh, assemble the eigenproblem matrices and optionally solve it

fem2d solve -I run.yaml [-F mesh.json] [--parallel] [--workers n] [--profile cpu|mem] [--solve]`,
	Run: func(cmd *cobra.Command, args []string) {
		mf := &ModelFEM{
			ICFile:   viper.GetString("inputConditionsFile"),
			GridFile: viper.GetString("gridFile"),
			Parallel: viper.GetBool("parallel"),
			Workers:  viper.GetInt("workers"),
			Profile:  viper.GetString("profile"),
			Solve:    viper.GetBool("solve"),
		}
		ip, err := processInput(mf)
		if err != nil {
			log.Fatalf("error: %s", err)
		}
		switch mf.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			log.Fatalf("error: unknown profile %q, must be cpu or mem", mf.Profile)
		}
		if _, err = RunFEM(mf, ip); err != nil {
			log.Fatalf("error: %s", err)
		}
	},
}

func processInput(mf *ModelFEM) (ip *InputParameters.FEMInputParameters, err error) {
	if len(mf.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, errors.New("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
	}
	if ip, err = InputParameters.ReadFile(mf.ICFile); err != nil {
		return
	}
	if len(mf.GridFile) != 0 {
		ip.MeshFile = mf.GridFile
	}
	if len(ip.MeshFile) == 0 {
		return nil, errors.New("must supply a mesh file (-F, --gridFile, or MeshFile in the input parameters)")
	}
	if mf.Parallel {
		ip.Parallel = true
	}
	if mf.Workers != 0 {
		ip.Workers = mf.Workers
	}
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	return
}

// RunResult is what a run produced
type RunResult struct {
	Domain *domain.Domain
	A, B   *eigensolver.SparseMatrix
	Pair   *eigensolver.EigenPair
}

func RunFEM(mf *ModelFEM, ip *InputParameters.FEMInputParameters) (rr RunResult, err error) {
	var (
		m    *mesh.Mesh
		mats [2]*eigensolver.SparseMatrix
	)
	ip.Print()
	if m, err = mesh.NewMeshFromFile(ip.MeshFile); err != nil {
		return
	}
	if err = ip.Apply(m); err != nil {
		return
	}
	log.Printf("mesh %s: %d elems, %d leaves, %d edges, %d nodes\n",
		ip.MeshFile, len(m.Elems), len(m.Leaves()), len(m.Edges), len(m.Nodes))
	if len(ip.MeshOutput) != 0 {
		if err = m.WriteJSON(ip.MeshOutput); err != nil {
			return
		}
	}

	rr.Domain = domain.NewDomain(m)
	cfg := integration.DefaultConfig()
	cfg.Family = ip.Family()
	cfg.NumU, cfg.NumV = ip.Points()
	cfg.Workers = ip.Workers
	start := time.Now()
	if ip.Parallel {
		mats, err = integration.FillMatricesParallel(rr.Domain, cfg)
	} else {
		mats, err = integration.FillMatrices(rr.Domain, cfg)
	}
	if err != nil {
		return
	}
	rr.A, rr.B = mats[0], mats[1]
	log.Printf("assembled %d DoFs in %v, %d + %d entries, %s\n", rr.Domain.NumDoFs(),
		time.Since(start), rr.A.NumEntries(), rr.B.NumEntries(), utils.GetMemUsage())

	for _, out := range []struct {
		path string
		mat  *eigensolver.SparseMatrix
	}{{ip.OutputA, rr.A}, {ip.OutputB, rr.B}} {
		if len(out.path) == 0 {
			continue
		}
		if err = out.mat.ToAIJBinary().WritePETScFile(out.path); err != nil {
			return
		}
		log.Printf("wrote %s\n", out.path)
	}

	if mf.Solve {
		var ep eigensolver.EigenPair
		if ep, err = eigensolver.SolveGEP(eigensolver.NewGEP(rr.A, rr.B), ip.TargetEigenvalue); err != nil {
			return
		}
		rr.Pair = &ep
		log.Printf("eigenvalue nearest %g: %.10g\n", ip.TargetEigenvalue, ep.Value)
	}
	return
}

func init() {
	rootCmd.AddCommand(SolveCmd)
	SolveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for the run description")
	SolveCmd.Flags().StringP("gridFile", "F", "", "mesh file in JSON or YAML format, overrides MeshFile")
	SolveCmd.Flags().Bool("parallel", false, "assemble on several goroutines")
	SolveCmd.Flags().IntP("workers", "w", 0, "number of assembly workers, 0 for one per CPU")
	SolveCmd.Flags().String("profile", "", "write a cpu or mem profile of the run")
	SolveCmd.Flags().Bool("solve", false, "solve the eigenproblem for the eigenvalue nearest TargetEigenvalue")
	for _, name := range []string{"inputConditionsFile", "gridFile", "parallel", "workers", "profile", "solve"} {
		_ = viper.BindPFlag(name, SolveCmd.Flags().Lookup(name))
	}
}
