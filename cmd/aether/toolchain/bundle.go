// Package toolchain stages generated crates on disk and runs the Rust
// toolchain against them.
package toolchain

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"aether/cmd/aether/codegen"
)

// Bundle is everything that goes into a crate directory.
type Bundle struct {
	Files  []codegen.File
	Assets []codegen.AssetFile
	// BaseDir resolves relative asset sources, usually the directory of the
	// project file.
	BaseDir string
}

// NewBundle collects the output of codegen.Generate.
func NewBundle(f codegen.Files, baseDir string) Bundle {
	return Bundle{Files: f.List(), Assets: f.Assets, BaseDir: baseDir}
}

// Export writes the crate layout of b into dir, creating it if needed.
// Existing files with the same names are overwritten.
func Export(dir string, b Bundle) error {
	if err := writeBundle(dir, b); err != nil {
		return fmt.Errorf("export to %s: %w", dir, err)
	}
	return nil
}

func writeBundle(dir string, b Bundle) error {
	for _, f := range b.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(f.Text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.Path, err)
		}
	}
	for _, a := range b.Assets {
		src := a.Source
		if !filepath.IsAbs(src) && b.BaseDir != "" {
			src = filepath.Join(b.BaseDir, src)
		}
		dst := filepath.Join(dir, filepath.FromSlash(a.Target))
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("asset %s: %w", a.Name, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
