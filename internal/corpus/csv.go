package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Required CSV columns.
const (
	columnSentence = "sentence"
	columnLabels   = "cct_labels"
)

// ParseCSV reads the dataset format: a header row with at least "sentence"
// and "cct_labels" columns, labels comma-separated within their cell.
// Rows with an empty sentence are skipped.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	sentenceCol, labelsCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case columnSentence:
			sentenceCol = i
		case columnLabels:
			labelsCol = i
		}
	}
	if sentenceCol < 0 || labelsCol < 0 {
		return nil, fmt.Errorf("header must contain %q and %q columns", columnSentence, columnLabels)
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		text := field(rec, sentenceCol)
		if text == "" {
			continue
		}
		rows = append(rows, Row{
			Sentence: text,
			Labels:   SplitLabels(field(rec, labelsCol)),
		})
	}
	return rows, nil
}

// ParseCSVFile opens path and parses it with ParseCSV.
func ParseCSVFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

// SplitLabels splits a comma-separated label cell, trimming whitespace and
// dropping empty entries. An empty cell yields an empty, non-nil slice.
func SplitLabels(cell string) []string {
	labels := []string{}
	for part := range strings.SplitSeq(cell, ",") {
		if l := strings.TrimSpace(part); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
