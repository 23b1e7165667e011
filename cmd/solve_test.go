package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedbrown/fem-2d/eigensolver"
)

const meshJSON = `{
  "Nodes": [[0,0],[1,0],[2,0],[0,1],[1,1],[2,1],[0,2],[1,2],[2,2]],
  "Elements": [
    {"node_ids": [0,1,3,4], "materials": [1,0,1,0]},
    {"node_ids": [1,2,4,5], "materials": [1,0,1,0]},
    {"node_ids": [3,4,6,7], "materials": [1,0,1,0]},
    {"node_ids": [4,5,7,8], "materials": [1,0,1,0]}
  ]
}`

func writeRun(t *testing.T, dir string) string {
	run := []byte(`
Title: Test Case
MeshFile: ` + filepath.Join(dir, "mesh.json") + `
ExpansionOrders: [2, 2]
Refinements:
  - Elems: [0]
    HRef: T
  - Elems: [5]
    HRef: U
TargetEigenvalue: 2.4
OutputA: ` + filepath.Join(dir, "a.petsc") + `
OutputB: ` + filepath.Join(dir, "b.petsc") + `
MeshOutput: ` + filepath.Join(dir, "refined.yaml") + `
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mesh.json"), []byte(meshJSON), 0o644))
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, run, 0o644))
	return path
}

func TestRunFEM(t *testing.T) {
	dir := t.TempDir()
	mf := &ModelFEM{ICFile: writeRun(t, dir), Parallel: true, Workers: 2, Solve: true}
	ip, err := processInput(mf)
	require.NoError(t, err)
	assert.True(t, ip.Parallel)
	assert.Equal(t, 2, ip.Workers)

	rr, err := RunFEM(mf, ip)
	require.NoError(t, err)
	require.NotNil(t, rr.Pair)
	assert.InDelta(t, 2.4674, rr.Pair.Value, 5e-2)

	// The written matrices read back as what was assembled
	data, err := os.ReadFile(filepath.Join(dir, "b.petsc"))
	require.NoError(t, err)
	ab, err := eigensolver.ReadPETSc(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, rr.Domain.NumDoFs(), ab.Dim)
	assert.Equal(t, rr.B.ToAIJ().NNZ(), len(ab.A))
	assert.FileExists(t, filepath.Join(dir, "a.petsc"))
	assert.FileExists(t, filepath.Join(dir, "refined.yaml"))
}

func TestProcessInput(t *testing.T) {
	_, err := processInput(&ModelFEM{})
	assert.Error(t, err)

	dir := t.TempDir()
	mf := &ModelFEM{ICFile: writeRun(t, dir), GridFile: filepath.Join(dir, "other.json")}
	ip, err := processInput(mf)
	require.NoError(t, err)
	assert.Equal(t, mf.GridFile, ip.MeshFile)
	_, err = RunFEM(mf, ip)
	assert.Error(t, err)
}
