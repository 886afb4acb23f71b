package frontmatter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/sourcegraph/metagen/metadata"
)

func decodeTOML(block string) (*Node, error) {
	var tree map[string]interface{}
	if err := toml.Unmarshal([]byte(block), &tree); err != nil {
		return nil, metadata.TOMLError(err)
	}
	return fromTOML(tree), nil
}

// fromTOML converts a value produced by the TOML decoder. The decoder does not keep the order of
// keys within a table, so mapping fields are sorted by key.
func fromTOML(v interface{}) *Node {
	switch v := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := &Node{Kind: MappingNode, Fields: make([]Field, 0, len(keys))}
		for _, k := range keys {
			out.Fields = append(out.Fields, Field{Key: k, Value: fromTOML(v[k])})
		}
		return out
	case []interface{}:
		out := &Node{Kind: SequenceNode, Items: make([]*Node, 0, len(v))}
		for _, item := range v {
			out.Items = append(out.Items, fromTOML(item))
		}
		return out
	case []map[string]interface{}:
		out := &Node{Kind: SequenceNode, Items: make([]*Node, 0, len(v))}
		for _, item := range v {
			out.Items = append(out.Items, fromTOML(item))
		}
		return out
	default:
		return &Node{Kind: ScalarNode, Value: tomlScalar(v)}
	}
}

func tomlScalar(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return tomlFloat(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case toml.LocalDate, toml.LocalDateTime, toml.LocalTime:
		return fmt.Sprint(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// tomlFloat formats f the way it is written in TOML, so that whole numbers keep a ".0" suffix.
func tomlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' {
			return s
		}
	}
	return s + ".0"
}
