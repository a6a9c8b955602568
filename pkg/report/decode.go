package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Payload field names
const (
	FieldOverallScore        = "overallScore"
	FieldScoreCategory       = "scoreCategory"
	FieldScoreInterpretation = "scoreInterpretation"
	FieldAspects             = "aspects"
	FieldAspectCategories    = "aspectCategories"
)

// ErrNotObject is returned when a payload is well-formed but is not an object
var ErrNotObject = errors.New("payload is not an object")

// PayloadError reports a payload that cannot be read at all. Individual
// fields never cause one; they fall back to defaults instead.
type PayloadError struct {
	Format string
	Cause  error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid %s payload: %v", e.Format, e.Cause)
}

func (e *PayloadError) Unwrap() error {
	return e.Cause
}

// DecodeJSON normalizes a JSON payload into a Report
func DecodeJSON(data []byte) (*Report, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			err = ErrNotObject
		}
		return nil, &PayloadError{Format: "JSON", Cause: err}
	}
	if fields == nil {
		return nil, &PayloadError{Format: "JSON", Cause: ErrNotObject}
	}

	r := NewReport()
	r.OverallScore = decodeScore(fields[FieldOverallScore])
	r.ScoreCategory = decodeString(fields[FieldScoreCategory])
	r.ScoreInterpretation = decodeString(fields[FieldScoreInterpretation])

	if raw, ok := fields[FieldAspects]; ok {
		aspects := orderedmap.New[string, json.RawMessage]()
		if err := aspects.UnmarshalJSON(raw); err == nil {
			for pair := aspects.Oldest(); pair != nil; pair = pair.Next() {
				r.Aspects.Set(pair.Key, decodeScore(pair.Value).Value)
			}
		}
	}

	if raw, ok := fields[FieldAspectCategories]; ok {
		var categories map[string]json.RawMessage
		if err := json.Unmarshal(raw, &categories); err == nil {
			for name, value := range categories {
				if category := decodeString(value); category != "" {
					r.AspectCategories[name] = category
				}
			}
		}
	}
	return r, nil
}

// decodeScore reads a JSON number. Anything else, including numbers too large
// to represent, is the zero score.
func decodeScore(raw json.RawMessage) Score {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Score{}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return Score{}
	}
	num, ok := v.(json.Number)
	if !ok {
		return Score{}
	}
	return parseNumber(num.String())
}

func parseNumber(literal string) Score {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Score{}
	}
	if strings.ContainsAny(literal, ".eE") {
		return FloatScore(f)
	}
	if literal == "-0" {
		literal = "0"
	}
	return Score{Value: f, literal: literal}
}

func decodeString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// DecodeYAML normalizes a YAML payload into a Report. The document is converted
// to JSON first, keeping mapping order, so both formats share one set of rules.
func DecodeYAML(data []byte) (*Report, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &PayloadError{Format: "YAML", Cause: err}
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, &root); err != nil {
		return nil, &PayloadError{Format: "YAML", Cause: err}
	}
	r, err := DecodeJSON(buf.Bytes())
	if err != nil {
		var perr *PayloadError
		if errors.As(err, &perr) {
			perr.Format = "YAML"
		}
		return nil, err
	}
	return r, nil
}

// writeJSON renders a YAML node as JSON. Mapping keys keep document order;
// non-finite floats become null.
func writeJSON(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.Kind {
	case 0:
		buf.WriteString("null")
		return nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, node.Content[0])
	case yaml.AliasNode:
		return writeJSON(buf, node.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(node.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, child := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		return writeScalar(buf, node)
	}
	return fmt.Errorf("unsupported YAML node kind %d at line %d", node.Kind, node.Line)
}

func writeScalar(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		buf.WriteString(strconv.FormatBool(b))
		return nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			// out of range for int64: keep it as a float
			var f float64
			if ferr := node.Decode(&f); ferr != nil {
				return err
			}
			return writeFloat(buf, f)
		}
		buf.WriteString(strconv.FormatInt(i, 10))
		return nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		return writeFloat(buf, f)
	}
	s, err := json.Marshal(node.Value)
	if err != nil {
		return err
	}
	buf.Write(s)
	return nil
}

// writeFloat always includes a decimal point or exponent so the value stays a
// float when decoded again
func writeFloat(buf *bytes.Buffer, f float64) error {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		buf.WriteString("null")
		return nil
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	buf.WriteString(s)
	return nil
}
