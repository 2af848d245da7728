package server

import "wafstack/rules"

// Definition describes one built-in protection category.
type Definition struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Priority    int    `json:"priority"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

var builtinDefinitions = []Definition{
	{
		Key:         "rate_limiting",
		Name:        "Rate Limiting",
		Priority:    rules.PriorityRateLimit,
		Type:        "rate_based",
		Description: "Blocks source IPs exceeding the configured request count within a rolling five minute window.",
	},
	{
		Key:         "managed_rules",
		Name:        rules.ManagedGroupCommon,
		Priority:    rules.PriorityManagedRules,
		Type:        "managed_rule_group",
		Description: "AWS managed baseline protections against a broad set of common threats.",
	},
	{
		Key:         "sqli",
		Name:        rules.ManagedGroupSQLi,
		Priority:    rules.PrioritySQLiRules,
		Type:        "managed_rule_group",
		Description: "AWS managed protections against SQL injection attack patterns.",
	},
	{
		Key:         "xss",
		Name:        rules.ManagedGroupKnownBadInputs,
		Priority:    rules.PriorityXSSRules,
		Type:        "managed_rule_group",
		Description: "AWS managed protections against request patterns known to be invalid or malicious.",
	},
	{
		Key:         "ip_reputation",
		Name:        rules.ManagedGroupAnonymousIPList,
		Priority:    rules.PriorityIPReputation,
		Type:        "managed_rule_group",
		Description: "AWS managed list of IP addresses associated with anonymizing services.",
	},
	{
		Key:         "ip_block",
		Name:        "Blocked Address List",
		Priority:    rules.PriorityIPBlock,
		Type:        "ip_set",
		Description: "Blocks requests whose source address matches the configured CIDR list.",
	},
	{
		Key:         "geo_block",
		Name:        "Geo Block",
		Priority:    rules.PriorityGeoBlock,
		Type:        "geo_match",
		Description: "Blocks requests originating from the configured countries.",
	},
}

// Definitions returns a copy of the built-in protection catalog.
func Definitions() []Definition {
	out := make([]Definition, len(builtinDefinitions))
	copy(out, builtinDefinitions)
	return out
}
