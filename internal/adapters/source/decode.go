package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"monopoly_report/internal/domain"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks a decoder from a file name, URL path or content type.
// Anything unrecognised is treated as JSON.
func FormatFor(nameOrType string) Format {
	s := strings.ToLower(nameOrType)
	switch path.Ext(s) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	if strings.Contains(s, "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// DecodeRecords parses a document holding a sequence of property records.
// A document that is not a sequence is a source error. Fields with the
// wrong shape are left unset so the report reports them per record.
func DecodeRecords(data []byte, f Format) ([]domain.PropertyRecord, error) {
	var raw []any
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, domain.SourceError("decode yaml", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, domain.SourceError("decode json", err)
		}
	}
	if raw == nil {
		return nil, domain.SourceError("decode", fmt.Errorf("document is not a sequence of records"))
	}

	out := make([]domain.PropertyRecord, 0, len(raw))
	for _, it := range raw {
		m, _ := it.(map[string]any)
		out = append(out, mapRecord(m))
	}
	return out, nil
}

/********** property mapper **********/

// mapRecord reads a record from a decoded object. A nil map (an element
// that was not an object) yields an empty record.
func mapRecord(m map[string]any) domain.PropertyRecord {
	return domain.PropertyRecord{
		Name:           lookupStr(m, "name"),
		Color:          lookupStr(m, "color"),
		Rent:           intFlexible(m["rent"]),
		BuildCost:      intFlexible(m["buildCost"]),
		RentWithHouses: intSlicePrefix(m["rentWithHouses"]),
		RentWithHotel:  intFlexible(m["rentWithHotel"]),
		SiteLocation:   intFlexible(m["siteLocation"]),
	}
}

/********** tiny helpers **********/

func lookupStr(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// intFlexible: whole number from json.Number/float64/int/int64/string.
func intFlexible(v any) *int {
	switch t := v.(type) {
	case json.Number:
		if n, err := strconv.Atoi(t.String()); err == nil {
			return &n
		}
		if f, err := t.Float64(); err == nil {
			return wholeFloat(f)
		}
	case float64:
		return wholeFloat(t)
	case int:
		x := t
		return &x
	case int64:
		x := int(t)
		return &x
	case uint64:
		if t <= math.MaxInt {
			x := int(t)
			return &x
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return &n
		}
	}
	return nil
}

func wholeFloat(f float64) *int {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt || f < math.MinInt {
		return nil
	}
	x := int(f)
	return &x
}

// intSlicePrefix keeps the leading run of whole numbers; the first
// non-numeric entry ends it.
func intSlicePrefix(v any) []int {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, it := range raw {
		n := intFlexible(it)
		if n == nil {
			break
		}
		out = append(out, *n)
	}
	return out
}
