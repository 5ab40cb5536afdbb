package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"PixelReel/internal/export"
	"PixelReel/internal/state"
	"PixelReel/internal/ui"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export ARCHIVE",
		Short: "Render a saved reel archive without opening the editor",
		Long: "Reads a " + export.ArchiveName + " archive and writes its frames as PNG files (png),\n" +
			"an animated PNG (apng), a PDF contact sheet (pdf) or one side-by-side image (strip).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frames, err := readArchiveFile(args[0])
			if err != nil {
				return err
			}
			return runExport(format, out, frames)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "png", "png, apng, pdf or strip")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	return cmd
}

func readArchiveFile(path string) ([]state.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return export.ReadArchive(f)
}

func runExport(format, out string, frames []state.Snapshot) error {
	switch format {
	case "png":
		return export.WriteFrames(export.OSDir(out), frames)
	case "apng":
		return writeFile(out, export.AnimationName, func(w io.Writer) error {
			return export.WriteAPNG(w, frames, ui.FrameDelay)
		})
	case "pdf":
		return writeFile(out, export.PDFName, func(w io.Writer) error {
			return export.WritePDF(w, frames)
		})
	case "strip":
		return writeFile(out, export.StripName, func(w io.Writer) error {
			return export.WriteStrip(w, frames)
		})
	}
	return fmt.Errorf("unknown export format %q", format)
}

func writeFile(dir, name string, write func(io.Writer) error) error {
	w, err := export.OSDir(dir).Create(name)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		os.Remove(filepath.Join(dir, name))
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	log.Printf("Wrote %s", filepath.Join(dir, name))
	return nil
}
