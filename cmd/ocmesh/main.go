// Command ocmesh converts a CSG scene description into a Wavefront OBJ
// mesh: ocmesh <csg-input-path> <mesh-output-path>.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/chazu/lignin/pkg/csgsrc"
	"github.com/chazu/lignin/pkg/mesh"
	"github.com/chazu/lignin/pkg/objwriter"
	"github.com/chazu/lignin/pkg/octree"
)

// epsilon is the octree builder's relative precision: the minimum voxel
// edge length, as a fraction of the scene's bounding-cube side, below which
// construction stops subdividing.
const epsilon = 0.01

const (
	exitOK = iota
	exitUsage
	exitInputOpenFailure
	exitOutputOpenFailure
	exitParseError
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ocmesh <csg-input-path> <mesh-output-path>")
		return exitUsage
	}
	inputPath, outputPath := args[0], args[1]

	source, err := os.ReadFile(inputPath)
	if err != nil {
		log.Printf("ocmesh: cannot open input %q: %v", inputPath, err)
		return exitInputOpenFailure
	}

	out, err := os.Create(outputPath)
	if err != nil {
		log.Printf("ocmesh: cannot open output %q: %v", outputPath, err)
		return exitOutputOpenFailure
	}
	defer out.Close()

	scene, result, err := csgsrc.NewParser().ParseWithTimeout(string(source))
	if err != nil {
		log.Printf("ocmesh: %v", err)
		return exitParseError
	}
	if !result.OK {
		log.Printf("ocmesh: %s: %s", inputPath, result.Error)
		return exitParseError
	}

	tree := octree.New()
	tree.Build(octree.ScenePredicate(scene, epsilon))

	m := mesh.Emit(tree)
	if err := objwriter.Write(out, m); err != nil {
		log.Printf("ocmesh: writing %q: %v", outputPath, err)
		return exitOutputOpenFailure
	}

	return exitOK
}
