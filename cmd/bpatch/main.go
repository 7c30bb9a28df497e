package main

import (
	"context"
	"flag"
	"io/ioutil"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/grailbio/bpatch/constrain"
	"github.com/grailbio/bpatch/fit"
	"github.com/grailbio/bpatch/loadpatch"
	"github.com/grailbio/bpatch/sizeparse"
	"github.com/grailbio/bpatch/write"
)

var (
	outputPath   = flag.String("o", "", "name to use for patched result (default: overwrite target)")
	freeInput    = flag.String("f", "", "freespace file to read")
	freeOutput   = flag.String("F", "", "freespace file to write (default: -f's path)")
	defaultsPath = flag.String("d", "", "pointer defaults filename")
	limit        = flag.String("l", "", "maximum filesize when appending, du-style (e.g. 10mb)")
	roots        rootsFlag
)

func init() {
	flag.Var(&roots, "r", "root patch name to include in this run (repeatable); default: every patch name starting with '_'")
	flag.Var(&roots, "roots", "long form of -r")
	flag.StringVar(outputPath, "output", "", "long form of -o")
	flag.StringVar(freeInput, "free-input", "", "long form of -f")
	flag.StringVar(freeOutput, "free-output", "", "long form of -F")
	flag.StringVar(defaultsPath, "defaults", "", "long form of -d")
	flag.StringVar(limit, "limit", "", "long form of -l")
}

func main() {
	cleanup := grail.Init()
	defer cleanup()

	flag.Parse()
	if flag.NArg() != 2 {
		log.Fatal("usage: bpatch [flags] target patch")
	}
	targetPath, patchPath := flag.Arg(0), flag.Arg(1)

	if err := run(vcontext.Background(), targetPath, patchPath); err != nil {
		log.Fatal(err)
	}
	log.Printf("Done.")
}

func readAll(ctx context.Context, path string) ([]byte, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "opening", path)
	}
	defer f.Close(ctx)
	data, err := ioutil.ReadAll(f.Reader(ctx))
	if err != nil {
		return nil, errors.E(err, "reading", path)
	}
	return data, nil
}

func run(ctx context.Context, targetPath, patchPath string) error {
	log.Printf("Setting up patch target...")
	targetData, err := readAll(ctx, targetPath)
	if err != nil {
		return err
	}
	buf := write.NewBuffer(targetData)

	fs, err := loadpatch.LoadFreespace(ctx, *freeInput)
	if err != nil {
		return err
	}
	if *limit != "" {
		max, err := sizeparse.Parse(*limit)
		if err != nil {
			return err
		}
		end := buf.Len()
		if int64(end) < max {
			log.Printf("Adding virtual freespace [%d:%d]", end, max)
			fs.Add(end, int(max)-end)
		}
	}

	log.Printf("Reading patch...")
	patchMap, err := loadpatch.LoadPatchFile(ctx, patchPath, *defaultsPath)
	if err != nil {
		return err
	}

	runRoots := []string(roots)
	if len(runRoots) == 0 {
		for name := range patchMap {
			if strings.HasPrefix(name, "_") {
				runRoots = append(runRoots, name)
			}
		}
	}

	gamuts, err := constrain.GamutMap(patchMap, runRoots)
	if err != nil {
		return err
	}

	fitMap, err := fit.Solve(patchMap, gamuts, fs)
	if err != nil {
		if err == fit.ErrNoFit {
			return errors.E("fitting failed: no placement satisfies every constraint")
		}
		return err
	}

	log.Printf("Writing patch data...")
	if err := write.Emit(buf, patchMap, fitMap, fs); err != nil {
		return err
	}

	log.Printf("Saving output files...")
	outPath := targetPath
	if *outputPath != "" {
		outPath = *outputPath
	}
	if err := writeAll(ctx, outPath, buf.Bytes()); err != nil {
		return err
	}

	// free_input if free_output is None else free_output: the original's
	// fallback output path is the *input* freespace path, not derived from
	// -o/target.
	freeOutPath := *freeInput
	if *freeOutput != "" {
		freeOutPath = *freeOutput
	}
	if freeOutPath != "" {
		if err := loadpatch.SaveFreespace(ctx, freeOutPath, fs); err != nil {
			return err
		}
	}
	return nil
}

func writeAll(ctx context.Context, path string, data []byte) error {
	f, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "creating", path)
	}
	defer f.Close(ctx)
	if _, err := f.Writer(ctx).Write(data); err != nil {
		return errors.E(err, "writing", path)
	}
	return nil
}
