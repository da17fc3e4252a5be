package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number tolerates the backend emitting numeric fields as JSON numbers,
// numeric strings, or null. Unparsable or non-finite input decodes to 0
// instead of failing the whole payload.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}

func (n Number) Float() float64 { return float64(n) }

// FlexID normalizes identifiers that arrive as JSON numbers, strings or
// null into their string form.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*id = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*id = FlexID(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*id = FlexID(num.String())
		return nil
	}
	*id = ""
	return nil
}

func (id FlexID) String() string { return string(id) }

// FrameworkRef accepts both shapes the backend uses for a problem's
// framework: a bare string ("react") and an object ({"name": "react"}).
type FrameworkRef struct {
	Name string `json:"name"`
}

func (f *FrameworkRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		f.Name = obj.Name
		return nil
	}
	f.Name = ""
	return nil
}

func (f FrameworkRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Name)
}

func (f FrameworkRef) Framework() Framework {
	return Framework(strings.ToLower(strings.TrimSpace(f.Name)))
}

// Page is the DRF pagination envelope. A few endpoints historically
// returned a bare array instead; both shapes decode.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, "[") {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		p.Count = len(items)
		p.Next = nil
		p.Previous = nil
		p.Results = items
		return nil
	}
	type alias Page[T]
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Page[T](a)
	if p.Count == 0 {
		p.Count = len(p.Results)
	}
	return nil
}
