package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/yourusername/match-point/internal/features"
)

// ColumnFrame is an engineered frame loaded back from CSV. It satisfies
// features.FrameView so the snapshot builder can consume it directly.
type ColumnFrame struct {
	order   []string
	columns map[string][]float64
	rows    int
}

// Len returns the number of rows.
func (f *ColumnFrame) Len() int { return f.rows }

// Columns returns the ordered column names.
func (f *ColumnFrame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Column returns the values of a column, or nil if absent.
func (f *ColumnFrame) Column(name string) []float64 {
	return f.columns[name]
}

var _ features.FrameView = (*ColumnFrame)(nil)

// WriteFrame serializes an engineered frame to CSV. The first column is the
// row index so the output round-trips through dataframe tooling unchanged.
func WriteFrame(w io.Writer, frame features.FrameView) error {
	cw := csv.NewWriter(w)

	columns := frame.Columns()
	header := make([]string, 0, len(columns)+1)
	header = append(header, "")
	header = append(header, columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	values := make([][]float64, len(columns))
	for i, col := range columns {
		values[i] = frame.Column(col)
	}

	row := make([]string, len(columns)+1)
	for i := 0; i < frame.Len(); i++ {
		row[0] = strconv.Itoa(i)
		for j := range columns {
			row[j+1] = strconv.FormatFloat(values[j][i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFrameFile writes an engineered frame to a CSV file.
func WriteFrameFile(path string, frame features.FrameView) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteFrame(f, frame); err != nil {
		return err
	}
	return f.Close()
}

// ReadFrame loads an engineered frame from CSV. A leading unnamed index
// column is dropped.
func ReadFrame(r io.Reader) (*ColumnFrame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	start := 0
	if len(header) > 0 && header[0] == "" {
		start = 1
	}

	frame := &ColumnFrame{
		order:   append([]string(nil), header[start:]...),
		columns: make(map[string][]float64, len(header)-start),
	}
	for _, col := range frame.order {
		frame.columns[col] = nil
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		for i, col := range frame.order {
			v, err := strconv.ParseFloat(row[start+i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, col, err)
			}
			frame.columns[col] = append(frame.columns[col], v)
		}
		frame.rows++
	}

	return frame, nil
}

// ReadFrameFile loads an engineered frame from a CSV file.
func ReadFrameFile(path string) (*ColumnFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	frame, err := ReadFrame(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return frame, nil
}

// WritePlayerNames writes the player id to display name sidecar. Names are
// dropped from the engineered frame, so serving reloads them from here.
func WritePlayerNames(path string, names map[int]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"player_id", "name"}); err != nil {
		return err
	}
	for id, name := range names {
		if err := cw.Write([]string{strconv.Itoa(id), name}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return f.Close()
}

// ReadPlayerNames loads the player name sidecar.
func ReadPlayerNames(path string) (map[int]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	names := make(map[int]string)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			continue
		}
		id, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		names[id] = row[1]
	}
	return names, nil
}
