package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Number is a float64 statistic that is undefined (NaN) when there was
// nothing to average over. Undefined values are written as null.
type Number float64

// NaN returns an undefined Number.
func NaN() Number {
	return Number(math.NaN())
}

// Defined reports whether n holds a finite value.
func (n Number) Defined() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n))
}

func (n Number) MarshalYAML() (interface{}, error) {
	if !n.Defined() {
		return nil, nil
	}
	return float64(n), nil
}

// round2 rounds to two decimals using the exact binary value, with exact
// halves going to even.
func round2(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number(f)
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	if err != nil {
		return Number(math.NaN())
	}
	return Number(rounded)
}

func ratio(num, denom float64) float64 {
	if denom == 0 {
		return math.NaN()
	}
	return num / denom
}

// Count is one entry of a distribution or ranking.
type Count struct {
	Key   string
	Count int
}

// Counts is an ordered mapping from key to count. It is written as an object
// whose keys keep the slice order.
type Counts []Count

// Get returns the count for key, or 0.
func (c Counts) Get(key string) int {
	for _, e := range c {
		if e.Key == key {
			return e.Count
		}
	}
	return 0
}

// Total sums every count.
func (c Counts) Total() int {
	total := 0
	for _, e := range c {
		total += e.Count
	}
	return total
}

// Keys returns the keys in order.
func (c Counts) Keys() []string {
	keys := make([]string, len(c))
	for i, e := range c {
		keys[i] = e.Key
	}
	return keys
}

func (c Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c Counts) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range c {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(e.Count)},
		)
	}
	return node, nil
}

// counter tallies keys and remembers the order in which each was first seen.
type counter struct {
	index  map[string]int
	counts Counts
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(key string) {
	if i, ok := c.index[key]; ok {
		c.counts[i].Count++
		return
	}
	c.index[key] = len(c.counts)
	c.counts = append(c.counts, Count{Key: key, Count: 1})
}

func (c *counter) len() int {
	return len(c.counts)
}

// ranked orders by descending count, ties in first-seen order.
func (c *counter) ranked() Counts {
	ranked := make(Counts, len(c.counts))
	copy(ranked, c.counts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

func (c *counter) top(n int) Counts {
	ranked := c.ranked()
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
