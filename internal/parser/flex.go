package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string, number or {"Value": "..."} object.
type FlexString struct {
	Value string
}

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		s.Value = ""
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		s.Value = strconv.FormatFloat(num, 'f', -1, 64)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Value = str
		return nil
	}

	var obj struct {
		Value string `json:"Value"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		s.Value = obj.Value
		return nil
	}

	return fmt.Errorf("invalid string value: %s", string(data))
}

// FlexList accepts an array of strings or of ingredient-like objects, or a
// single comma-separated string.
type FlexList []string

func (l *FlexList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*l = splitComma(str)
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("invalid list value: %w", err)
	}

	out := make(FlexList, 0, len(items))
	for _, item := range items {
		if !strings.HasPrefix(strings.TrimSpace(string(item)), "{") {
			var s FlexString
			if err := json.Unmarshal(item, &s); err != nil {
				return fmt.Errorf("invalid list entry: %w", err)
			}
			if s.Value != "" {
				out = append(out, s.Value)
			}
			continue
		}

		var obj struct {
			Amount   FlexString `json:"amount"`
			Quantity FlexString `json:"quantity"`
			Unit     string     `json:"unit"`
			Name     string     `json:"name"`
			Item     string     `json:"item"`
			Text     string     `json:"text"`
			Step     string     `json:"step"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("invalid list entry: %w", err)
		}
		parts := []string{
			firstNonEmpty(obj.Amount.Value, obj.Quantity.Value),
			obj.Unit,
			firstNonEmpty(obj.Name, obj.Item, obj.Text, obj.Step),
		}
		out = append(out, strings.Join(strings.Fields(strings.Join(parts, " ")), " "))
	}
	*l = out
	return nil
}

func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
