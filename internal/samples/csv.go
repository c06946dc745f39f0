// Package samples loads HSL samples from CSV tables and masked photos.
package samples

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/hslcloud/internal/engine/hsl"
)

// LoadCSV reads rows of "h,s,l" with H in degrees and S, L in [0,1].
// Blank lines and lines starting with '#' are skipped. A first row whose
// hue does not parse is taken as a header.
func LoadCSV(r io.Reader) ([]hsl.Sample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []hsl.Sample
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if len(rec) > 0 && isHeader(rec[0]) {
				continue
			}
		}

		s, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, s)
	}
}

// LoadCSVFile reads samples from a CSV file.
func LoadCSVFile(path string) ([]hsl.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening samples: %w", err)
	}
	defer f.Close()

	out, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func isHeader(field string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
	return err != nil
}

func parseRow(rec []string) (hsl.Sample, error) {
	if len(rec) != 3 {
		return hsl.Sample{}, fmt.Errorf("expected 3 fields (h,s,l), got %d", len(rec))
	}

	var v [3]float32
	for i, name := range [3]string{"h", "s", "l"} {
		f, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 32)
		if err != nil {
			return hsl.Sample{}, fmt.Errorf("parsing %s: %w", name, err)
		}
		v[i] = float32(f)
		if math32.IsNaN(v[i]) || math32.IsInf(v[i], 0) {
			return hsl.Sample{}, fmt.Errorf("%s is not finite", name)
		}
	}
	if v[1] < 0 || v[1] > 1 {
		return hsl.Sample{}, fmt.Errorf("s %g outside [0,1]", v[1])
	}
	if v[2] < 0 || v[2] > 1 {
		return hsl.Sample{}, fmt.Errorf("l %g outside [0,1]", v[2])
	}
	return hsl.Sample{H: v[0], S: v[1], L: v[2]}, nil
}
