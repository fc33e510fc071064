// Package template renders {{key}} placeholders in message templates
// against execution context data.
package template

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Expand replaces every {{name}} token in the template with the string
// form of data[name]. Tokens whose key is absent stay literal.
//
// The template is scanned exactly once: a substituted value is never
// re-scanned for further placeholders, so expansion cannot amplify and
// Expand(Expand(t, data), data) == Expand(t, data) as long as no value
// introduces a token whose key exists in data.
func Expand(templateStr string, data map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(templateStr, func(token string) string {
		key := token[2 : len(token)-2]

		value, ok := data[key]
		if !ok {
			return token
		}

		return Stringify(value)
	})
}

// Stringify coerces a context value to its natural string form:
// strings verbatim, integral floats without a decimal point, maps and
// slices as JSON.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatInt(int64(v), 10)
		}

		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(encoded)
	}
}
