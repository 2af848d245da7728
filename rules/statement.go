package rules

import (
	"encoding/json"
	"fmt"
)

// Statement is one node of a rule's match expression. Concrete statements
// form a tagged union over the provider's statement grammar: leaf match
// statements plus the And/Or/Not combinators, which nest arbitrarily.
type Statement interface {
	// statementKey is the provider's JSON member name for this variant.
	statementKey() string
}

// ManagedRuleGroupStatement references a vendor-curated rule group by
// vendor and name.
type ManagedRuleGroupStatement struct {
	VendorName    string   `json:"vendorName"`
	Name          string   `json:"name"`
	ExcludedRules []string `json:"excludedRules,omitempty"`
}

func (s ManagedRuleGroupStatement) statementKey() string { return "managedRuleGroupStatement" }

// RateBasedStatement blocks on request volume per aggregation key within
// a rolling window.
type RateBasedStatement struct {
	Limit            int64  `json:"limit"`
	AggregateKeyType string `json:"aggregateKeyType"`
}

func (s RateBasedStatement) statementKey() string { return "rateBasedStatement" }

// GeoMatchStatement matches requests originating from the listed
// countries.
type GeoMatchStatement struct {
	CountryCodes []string `json:"countryCodes"`
}

func (s GeoMatchStatement) statementKey() string { return "geoMatchStatement" }

// IPSetReferenceStatement matches requests whose source address is in the
// referenced IP set.
type IPSetReferenceStatement struct {
	ARN string `json:"arn"`
}

func (s IPSetReferenceStatement) statementKey() string { return "ipSetReferenceStatement" }

// RegexPatternSetReferenceStatement matches a request field against the
// referenced regex pattern set.
type RegexPatternSetReferenceStatement struct {
	ARN                string             `json:"arn"`
	FieldToMatch       FieldToMatch       `json:"fieldToMatch"`
	TextTransformation TextTransformation `json:"textTransformation"`
}

func (s RegexPatternSetReferenceStatement) statementKey() string {
	return "regexPatternSetReferenceStatement"
}

// RuleGroupReferenceStatement references a customer-managed rule group.
type RuleGroupReferenceStatement struct {
	ARN           string   `json:"arn"`
	ExcludedRules []string `json:"excludedRules,omitempty"`
}

func (s RuleGroupReferenceStatement) statementKey() string { return "ruleGroupReferenceStatement" }

// FieldToMatch selects the request component a match statement inspects.
// Exactly one member is set.
type FieldToMatch struct {
	URIPath      bool   `json:"-"`
	QueryString  bool   `json:"-"`
	SingleHeader string `json:"-"`
}

// MarshalJSON emits the provider's one-member object form.
func (f FieldToMatch) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{}
	switch {
	case f.URIPath:
		m["uriPath"] = struct{}{}
	case f.QueryString:
		m["queryString"] = struct{}{}
	case f.SingleHeader != "":
		m["singleHeader"] = map[string]string{"name": f.SingleHeader}
	default:
		return nil, fmt.Errorf("field to match has no member set")
	}
	return json.Marshal(m)
}

// TextTransformation is applied to the field content before matching.
type TextTransformation struct {
	Priority int    `json:"priority"`
	Type     string `json:"type"`
}

// ByteMatchStatement compares a request field's content against a literal
// search string under a positional constraint.
type ByteMatchStatement struct {
	SearchString         string               `json:"searchString"`
	FieldToMatch         FieldToMatch         `json:"fieldToMatch"`
	PositionalConstraint string               `json:"positionalConstraint"`
	TextTransformations  []TextTransformation `json:"textTransformations"`
}

func (s ByteMatchStatement) statementKey() string { return "byteMatchStatement" }

// AndStatement matches when all child statements match.
type AndStatement struct {
	Statements []Statement
}

func (s AndStatement) statementKey() string { return "andStatement" }

// MarshalJSON wraps each child in its tagged form.
func (s AndStatement) MarshalJSON() ([]byte, error) {
	return marshalCombinator(s.Statements)
}

// OrStatement matches when any child statement matches.
type OrStatement struct {
	Statements []Statement
}

func (s OrStatement) statementKey() string { return "orStatement" }

// MarshalJSON wraps each child in its tagged form.
func (s OrStatement) MarshalJSON() ([]byte, error) {
	return marshalCombinator(s.Statements)
}

// NotStatement negates its child statement.
type NotStatement struct {
	Statement Statement
}

func (s NotStatement) statementKey() string { return "notStatement" }

// MarshalJSON wraps the child in its tagged form.
func (s NotStatement) MarshalJSON() ([]byte, error) {
	inner, err := MarshalStatement(s.Statement)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]json.RawMessage{"statement": inner})
}

func marshalCombinator(children []Statement) ([]byte, error) {
	ss := make([]json.RawMessage, 0, len(children))
	for _, c := range children {
		b, err := MarshalStatement(c)
		if err != nil {
			return nil, err
		}
		ss = append(ss, b)
	}
	return json.Marshal(map[string][]json.RawMessage{"statements": ss})
}

// MarshalStatement serializes a statement into its tagged single-member
// object form, e.g. {"byteMatchStatement": {...}}.
func MarshalStatement(s Statement) (json.RawMessage, error) {
	if s == nil {
		return nil, fmt.Errorf("nil statement")
	}

	body, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	return json.Marshal(map[string]json.RawMessage{s.statementKey(): body})
}
