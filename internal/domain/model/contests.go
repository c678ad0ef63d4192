package model

import (
	"bytes"
	"encoding/json"
	"reflect"
)

var jsonContestsType = reflect.TypeOf(Contests{})

// Contests maps contest names to scores while remembering column order.
// The zero value is an empty, usable set. A Contests value is not modified
// after normalization, so copies may share storage.
type Contests struct {
	names  []string
	scores map[string]float64
}

// NewContests builds a set from pairs in order.
func NewContests(pairs ...ContestPair) Contests {
	var c Contests
	for _, p := range pairs {
		c.Set(p.Name, p.Score)
	}
	return c
}

// ContestPair is a single (name, score) entry.
type ContestPair struct {
	Name  string
	Score float64
}

// Set stores score under name. An existing name keeps its position and
// takes the new score.
func (c *Contests) Set(name string, score float64) {
	if c.scores == nil {
		c.scores = make(map[string]float64)
	}
	if _, ok := c.scores[name]; !ok {
		c.names = append(c.names, name)
	}
	c.scores[name] = score
}

// Score returns the score recorded for name.
func (c Contests) Score(name string) (float64, bool) {
	v, ok := c.scores[name]
	return v, ok
}

// Len returns the number of distinct contest names.
func (c Contests) Len() int { return len(c.names) }

// Names returns the distinct contest names in column order.
func (c Contests) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Pairs returns every entry in column order.
func (c Contests) Pairs() []ContestPair {
	out := make([]ContestPair, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, ContestPair{Name: n, Score: c.scores[n]})
	}
	return out
}

// MarshalJSON encodes the set as a JSON object with keys in column order.
func (c Contests) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.scores[n])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (c *Contests) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = Contests{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &json.UnmarshalTypeError{Value: "non-object", Type: jsonContestsType}
	}
	out := Contests{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var v float64
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out.Set(key, v)
	}
	*c = out
	return nil
}
