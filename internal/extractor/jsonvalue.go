package extractor

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

type kind int

const (
	kindLeaf kind = iota
	kindObject
	kindArray
)

func kindOf(v any) kind {
	switch v.(type) {
	case map[string]any:
		return kindObject
	case []any:
		return kindArray
	default:
		return kindLeaf
	}
}

// DecodeJSON decodes an arbitrary JSON document keeping numbers as json.Number,
// so 64-bit media ids survive intact.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeJSONBytes is DecodeJSON over a byte slice.
func DecodeJSONBytes(b []byte) (any, error) {
	return DecodeJSON(bytes.NewReader(b))
}

// sortedKeys gives objects a stable visiting order; decoded maps carry none.
func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// path is a property walk; numeric segments index into arrays.
type path []string

func p(segments ...string) path { return segments }

func (pt path) get(v any) (any, bool) {
	cur := v
	for _, seg := range pt {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// chain is a prioritized list of paths for one field; the first present one wins.
type chain []path

func (c chain) lookup(v any) (any, bool) {
	for _, pt := range c {
		if got, ok := pt.get(v); ok {
			return got, true
		}
	}
	return nil, false
}

func (c chain) present(v any) bool {
	_, ok := c.lookup(v)
	return ok
}

// str resolves the first path holding a non-empty string or number.
func (c chain) str(v any) (string, bool) {
	for _, pt := range c {
		got, ok := pt.get(v)
		if !ok {
			continue
		}
		if s, ok := asString(got); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// int resolves the first path holding something numeric.
func (c chain) int(v any) (int64, bool) {
	for _, pt := range c {
		got, ok := pt.get(v)
		if !ok {
			continue
		}
		if n, ok := asInt(got); ok {
			return n, true
		}
	}
	return 0, false
}

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	default:
		return "", false
	}
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
		if f, err := x.Float64(); err == nil {
			return int64(math.Trunc(f)), true
		}
	case float64:
		return int64(math.Trunc(x)), true
	case int:
		return int64(x), true
	case int64:
		return x, true
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != "" && x != "false" && x != "0"
	case json.Number, float64, int, int64:
		n, _ := asInt(x)
		return n != 0
	default:
		return true
	}
}
