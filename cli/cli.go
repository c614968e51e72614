package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/alexflint/go-arg"

	"skymesh/batch"
	"skymesh/meshdefs"
	"skymesh/ui"
)

type (
	Args struct {
		Interactive *InteractiveCmd `arg:"subcommand:interactive"`
		Convert     *ConvertCmd     `arg:"subcommand:convert"`
	}
	InteractiveCmd struct {
		Dir string `help:"directory to pick mesh files from" placeholder:"meshes/" default:"."`
	}
	ConvertCmd struct {
		Files    []string `arg:"positional,required" help:"mesh files to decode" placeholder:"file.mesh"`
		Output   string   `arg:"-o" help:"output directory" placeholder:"out/" default:"."`
		Format   string   `help:"obj, gltf, or glb" default:"obj"`
		NoUV     bool     `arg:"--no-uv" help:"drop texture coordinates"`
		MaxIter  int      `arg:"--max-iter" help:"index scan iteration cap" default:"5000"`
		Workers  int      `help:"concurrent decoders" default:"4"`
		MeshDefs string   `arg:"--mesh-defs" help:"path to the mesh definition script" placeholder:"meshdefs.lua"`
		Trace    bool     `help:"log every strategy failure"`
		Report   bool     `help:"write a decode report next to the output"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Ruin has come to our mesh files.\n",
			"A CLI utility to decode proprietary compressed mesh assets",
			"into OBJ or glTF in the command line.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func StartInteractive(cmd InteractiveCmd) {
	files, err := ui.SelectMeshFiles(cmd.Dir)
	if err != nil {
		println("Error happened listing mesh files: " + err.Error())
		return
	}
	if len(files) == 0 {
		println("Nothing selected.")
		return
	}
	StartConverting(
		ConvertCmd{
			Files:   files,
			Output:  cmd.Dir,
			Format:  "obj",
			MaxIter: 5000,
			Workers: 4,
		},
	)
}

func StartConverting(cmd ConvertCmd) {
	defs, err := meshdefs.Load(cmd.MeshDefs)
	if err != nil {
		println("Error happened reading the mesh definition script: " + err.Error())
		return
	}

	results := batch.Run(
		batch.Config{
			OutputDir:     cmd.Output,
			Format:        cmd.Format,
			NoUV:          cmd.NoUV,
			Workers:       cmd.Workers,
			MaxIterations: cmd.MaxIter,
			Trace:         cmd.Trace,
			Defs:          defs,
		},
		cmd.Files,
	)

	decoded := 0
	for _, result := range results {
		if result.Success {
			decoded++
		} else {
			println("Failed on " + result.File + ": " + result.Error)
		}
	}
	println("Done. Decoded " + strconv.Itoa(decoded) + " of " + strconv.Itoa(len(results)) + " files.")

	if cmd.Report {
		path, err := batch.SaveReport(cmd.Output, results)
		if err != nil {
			println("Error happened writing the report: " + err.Error())
			return
		}
		println("Report written to: " + path)
	}
	if decoded != len(results) {
		os.Exit(1)
	}
}

func Start() {
	args := Args{}
	arg.MustParse(&args)

	switch {
	case args.Convert != nil:
		StartConverting(*args.Convert)
	case args.Interactive != nil:
		StartInteractive(*args.Interactive)
	default:
		StartInteractive(InteractiveCmd{Dir: "."})
	}
}
