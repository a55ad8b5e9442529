package oracle

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nogvini/btcfolio"
)

// DecodeJSONL reads one PricePoint per line. Blank lines are skipped. A
// point without a currency is in USD.
func DecodeJSONL(r io.Reader) ([]btcfolio.PricePoint, error) {
	var points []btcfolio.PricePoint
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var p btcfolio.PricePoint
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if p.Date.IsZero() {
			return nil, fmt.Errorf("line %d: missing date", line)
		}
		p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
		if p.Currency == "" {
			p.Currency = "USD"
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// EncodeJSONL writes one PricePoint per line.
func EncodeJSONL(w io.Writer, points []btcfolio.PricePoint) error {
	enc := json.NewEncoder(w)
	for _, p := range points {
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile returns a Memory oracle with the points of a JSONL file.
func LoadFile(name string) (*Memory, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open quotes: %w", err)
	}
	defer f.Close()
	points, err := DecodeJSONL(f)
	if err != nil {
		return nil, fmt.Errorf("invalid quotes file %q: %w", name, err)
	}
	return NewMemory(points...), nil
}
