package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/sandeepkv93/todod/internal/model"
)

var ErrUnknownFormat = errors.New("export: unknown format")

const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatPDF      = "pdf"
)

func Render(format string, tasks []model.Task) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		if tasks == nil {
			tasks = []model.Task{}
		}
		return json.MarshalIndent(tasks, "", "  ")
	case FormatCSV:
		return renderCSV(tasks)
	case FormatMarkdown, "markdown":
		return renderMarkdown(tasks), nil
	case FormatPDF:
		return renderPDF(tasks)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// WriteFile renders tasks and replaces path atomically.
func WriteFile(path, format string, tasks []model.Task) error {
	payload, err := Render(format, tasks)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func renderCSV(tasks []model.Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "text", "completed", "created_at"})
	for _, t := range tasks {
		_ = w.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Text,
			strconv.FormatBool(t.Completed),
			t.CreatedAt.UTC().Format(model.TimeLayout),
		})
	}
	w.Flush()
	return b.Bytes(), w.Error()
}

func renderMarkdown(tasks []model.Task) []byte {
	var b strings.Builder
	b.WriteString("# To-Do List\n\n")
	if len(tasks) == 0 {
		b.WriteString("_No tasks yet._\n")
		return []byte(b.String())
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		b.WriteString(fmt.Sprintf("- [%s] %s\n", mark, t.Text))
	}
	return []byte(b.String())
}

func renderPDF(tasks []model.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "To-Do List")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	done := 0
	for _, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
			done++
		}
		line := fmt.Sprintf("%s %s  (%s)", mark, tr(t.Text), t.CreatedAt.UTC().Format("2006-01-02 15:04"))
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}
	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(40, 6, fmt.Sprintf("Total: %d  Completed: %d", len(tasks), done))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
