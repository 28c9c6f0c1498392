package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/goccy/go-json"
)

// Record is one play as found in a play log.
type Record struct {
	Title     string `json:"title"`
	Performer string `json:"performer"`
	Channel   string `json:"channel"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

var csvColumns = []string{"title", "performer", "channel", "start", "end"}

// format returns the decoder name for key, or "" when it is not a play log.
func format(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jsonl", ".json":
		return "jsonl"
	case ".csv":
		return "csv"
	}
	return ""
}

// readRecords calls fn for each record in r. A record that cannot be decoded
// is reported to fn with its error; only an unreadable file stops the scan.
func readRecords(kind string, r io.Reader, fn func(line int, rec Record, err error)) error {
	switch kind {
	case "jsonl":
		return readJSONL(r, fn)
	case "csv":
		return readCSV(r, fn)
	}
	return fmt.Errorf("unsupported play log format %q", kind)
}

func readJSONL(r io.Reader, fn func(int, Record, error)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var rec Record
		err := json.Unmarshal([]byte(raw), &rec)
		fn(line, rec, err)
	}
	return sc.Err()
}

func readCSV(r io.Reader, fn func(int, Record, error)) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("csv header is missing column %q", col)
		}
	}

	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("read csv line %d: %w", line, err)
		}

		field := func(col string) string {
			if i := index[col]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		if len(row) < len(header) {
			fn(line, Record{}, fmt.Errorf("expected %d fields, got %d", len(header), len(row)))
			continue
		}
		fn(line, Record{
			Title:     field("title"),
			Performer: field("performer"),
			Channel:   field("channel"),
			Start:     field("start"),
			End:       field("end"),
		}, nil)
	}
}
