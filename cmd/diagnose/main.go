// Diagnostic tool for inspecting SPE files
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/robert-malhotra/go-spe/internal/header"
	"github.com/robert-malhotra/go-spe/spe"
)

func main() {
	verbose := flag.Bool("v", false, "log soft read failures to stderr")
	full := flag.Bool("full", false, "print every header field")
	strict := flag.Bool("strict", false, "treat damaged files as errors")
	avg := flag.String("avg", "", "write the average frame of the first file to `path`")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: diagnose [flags] <file.spe | dir>...")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	var opts []spe.FileOption
	if *verbose {
		opts = append(opts, spe.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	if *strict {
		opts = append(opts, spe.WithStrict())
	}

	files, err := collect(flag.Args())
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No SPE files found.")
		os.Exit(1)
	}
	fmt.Printf("%d SPE file(s) found.\n", len(files))
	for _, path := range files {
		fmt.Println(path)
	}
	fmt.Println()

	failed := false
	for _, path := range files {
		if err := analyze(path, *full, opts); err != nil {
			fmt.Printf("ERROR: %v\n", err)
			failed = true
		}
		fmt.Println()
	}

	if *avg != "" {
		if err := writeAverage(files[0], *avg, opts); err != nil {
			fmt.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Average of %s written to %s\n", files[0], *avg)
	}
	if failed {
		os.Exit(1)
	}
}

// collect expands directory arguments into the SPE files they contain.
func collect(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil || !fi.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := spe.Glob(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func analyze(path string, full bool, opts []spe.FileOption) error {
	fmt.Printf("=== Analyzing %s ===\n", path)

	f, err := spe.Open(path, opts...)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	m := f.Metadata()
	fmt.Printf("rows: %d pixels\n", f.Rows())
	fmt.Printf("cols: %d pixels\n", f.Columns())
	fmt.Printf("frames: %d frames\n", f.Frames())
	fmt.Printf("dataType: %s\n", f.Datatype())
	if !m.Complete() {
		fmt.Println("[INCOMPLETE HEADER - missing fields use defaults]")
	}
	if m.WinViewID != header.WinViewMagic {
		fmt.Printf("WinView_id: %#x (not written by WinView/WinSpec)\n", uint32(m.WinViewID))
	}
	if label := m.XCalibration.Label(); label != "" {
		fmt.Printf("x calibration: %s\n", label)
	}
	if label := m.YCalibration.Label(); label != "" {
		fmt.Printf("y calibration: %s\n", label)
	}

	if full {
		fmt.Println("Summary of metadata:")
		if err := header.Dump(os.Stdout, m); err != nil {
			return err
		}
	}
	return nil
}

func writeAverage(path, out string, opts []spe.FileOption) error {
	f, err := spe.Open(path, opts...)
	if err != nil {
		return err
	}
	defer f.Close()

	avg, err := f.AverageFrame()
	if err != nil {
		return err
	}

	w, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := avg.WriteText(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
