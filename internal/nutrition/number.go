package nutrition

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a float64 that decodes forgivingly. The store has accumulated
// records written by several client generations, so a macro field can arrive
// as a JSON number, a numeric string with either comma or dot decimals, or
// something else entirely. Anything unparseable coerces to zero; decoding
// never fails.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*n = Number(v)
			return nil
		}
	}

	*n = 0
	return nil
}
