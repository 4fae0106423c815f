// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// PdftotextExtractor shells out to the poppler pdftotext binary with
// layout preservation, which keeps statement columns on one line.
type PdftotextExtractor struct {
	exec executor
}

// NewPdftotextExtractor creates an extractor backed by the pdftotext
// binary on PATH.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{exec: defaultExec}
}

func (p *PdftotextExtractor) ExtractText(path string) (string, error) {
	if _, err := p.exec.LookPath(binPdftotext); err != nil {
		return "", fmt.Errorf("%s not found on PATH: %w", binPdftotext, err)
	}

	var out bytes.Buffer
	if err := p.exec.RunPiped(binPdftotext, []string{"-layout", path, "-"}, &out); err != nil {
		return "", fmt.Errorf("running %s on %s: %w", binPdftotext, path, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("%s produced empty output for %s", binPdftotext, path)
	}

	return out.String(), nil
}
