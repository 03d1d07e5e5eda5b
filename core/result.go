package core

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ResultSet maps agent names to their raw response payloads while preserving
// insertion order, so an aggregated response marshals its results in
// execution order. A ResultSet is created fresh per request, owned by that
// request, and discarded after the response is sent.
type ResultSet struct {
	entries *orderedmap.OrderedMap[string, Payload]
}

// NewResultSet constructs an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{entries: orderedmap.New[string, Payload]()}
}

// Set stores the payload under the given agent name, appending to the
// insertion order on first write.
func (r *ResultSet) Set(agent string, p Payload) {
	r.entries.Set(agent, p)
}

// Get returns the payload stored for the given agent name.
func (r *ResultSet) Get(agent string) (Payload, bool) {
	if r == nil || r.entries == nil {
		return nil, false
	}
	return r.entries.Get(agent)
}

// Len returns the number of stored results.
func (r *ResultSet) Len() int {
	if r == nil || r.entries == nil {
		return 0
	}
	return r.entries.Len()
}

// Agents returns the agent names in insertion order.
func (r *ResultSet) Agents() []string {
	if r == nil || r.entries == nil {
		return nil
	}
	names := make([]string, 0, r.entries.Len())
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// MarshalJSON renders the result set as a JSON object whose keys appear in
// insertion order. An empty set marshals as {}.
func (r *ResultSet) MarshalJSON() ([]byte, error) {
	if r == nil || r.entries == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.entries)
}

// UnmarshalJSON rebuilds the result set from a JSON object, preserving the
// document's key order.
func (r *ResultSet) UnmarshalJSON(b []byte) error {
	entries := orderedmap.New[string, Payload]()
	if err := json.Unmarshal(b, entries); err != nil {
		return err
	}
	r.entries = entries
	return nil
}

// ExecutionResult is the aggregated outcome of executing one plan: the raw
// response payload per invoked agent plus a human-readable trace entry per
// step.
type ExecutionResult struct {
	Success bool       `json:"success"`
	Results *ResultSet `json:"results"`
	Trace   []string   `json:"executionTrace"`
}
