package ocr

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// EngineTesseract identifies the local tesseract engine.
const EngineTesseract = "tesseract"

// tesseractLangs covers English plus simplified Chinese, matching the
// bilingual papers this tool targets. Missing language packs degrade to
// whatever tesseract has installed.
const tesseractLangs = "eng+chi_sim"

// Tesseract OCRs pages by rendering them to PNG with pdftoppm and
// running the tesseract binary on each image.
type Tesseract struct{}

// NewTesseract returns the local tesseract engine.
func NewTesseract() *Tesseract {
	return &Tesseract{}
}

// Name implements Engine.
func (t *Tesseract) Name() string { return EngineTesseract }

// Available reports whether both tesseract and pdftoppm are on PATH.
func (t *Tesseract) Available() bool {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return false
	}
	_, err := exec.LookPath("pdftoppm")
	return err == nil
}

// Extract renders the first maxPages pages at dpi and concatenates the
// per-page OCR output.
func (t *Tesseract) Extract(path string, maxPages, dpi int) (string, error) {
	dir, err := os.MkdirTemp("", "papercite-ocr-")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	render := exec.Command("pdftoppm",
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", "1",
		"-l", strconv.Itoa(maxPages),
		path, prefix)
	if out, err := render.CombinedOutput(); err != nil {
		return "", fmt.Errorf("rendering pages: %w: %s", err, strings.TrimSpace(string(out)))
	}

	images, err := filepath.Glob(prefix + "*.png")
	if err != nil || len(images) == 0 {
		return "", fmt.Errorf("no pages rendered")
	}
	sort.Strings(images)

	var b strings.Builder
	for _, img := range images {
		cmd := exec.Command("tesseract", img, "stdout", "-l", tesseractLangs)
		out, err := cmd.Output()
		if err != nil {
			// Retry with the default language if the packs are missing.
			cmd = exec.Command("tesseract", img, "stdout")
			out, err = cmd.Output()
			if err != nil {
				continue
			}
		}
		b.Write(out)
		b.WriteString("\n")
	}
	return b.String(), nil
}
