package rules

import (
	"encoding/json"
	"fmt"

	"wafstack/config"
)

// Visibility configures per-rule metrics and request sampling.
type Visibility struct {
	MetricName               string `json:"metricName"`
	CloudWatchMetricsEnabled bool   `json:"cloudWatchMetricsEnabled"`
	SampledRequestsEnabled   bool   `json:"sampledRequestsEnabled"`
}

// Rule is one prioritized entry of the Web ACL. Rules carrying their own
// match statement use Action; rules delegating to a managed rule group
// use OverrideAction instead, the two are mutually exclusive in the
// provider API.
type Rule struct {
	Name           string
	Priority       int
	Action         config.Action
	OverrideAction string
	Statement      Statement
	Visibility     Visibility
}

// MarshalJSON emits the provider's rule shape with the statement in its
// tagged union form and only one of action/overrideAction present.
func (r Rule) MarshalJSON() ([]byte, error) {
	stmt, err := MarshalStatement(r.Statement)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %v", r.Name, err)
	}

	out := map[string]interface{}{
		"name":             r.Name,
		"priority":         r.Priority,
		"statement":        stmt,
		"visibilityConfig": r.Visibility,
	}

	if r.OverrideAction != "" {
		out["overrideAction"] = map[string]json.RawMessage{r.OverrideAction: json.RawMessage("{}")}
	} else {
		out["action"] = map[string]json.RawMessage{string(r.Action): json.RawMessage("{}")}
	}

	return json.Marshal(out)
}
