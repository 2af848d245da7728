package rules

import (
	"sort"

	"github.com/rs/zerolog"

	"wafstack/config"
)

// Reserved priorities for the built-in rule categories. Custom rules use
// caller-assigned priorities; a collision with a reserved priority is not
// checked here and is rejected by the provider at apply time.
const (
	PriorityRateLimit    = 1
	PriorityManagedRules = 2
	PrioritySQLiRules    = 3
	PriorityXSSRules     = 4
	PriorityIPReputation = 5
	PriorityIPBlock      = 6
	PriorityGeoBlock     = 7
)

// AWS managed rule groups used by the built-in categories.
const (
	ManagedVendorAWS            = "AWS"
	ManagedGroupCommon          = "AWSManagedRulesCommonRuleSet"
	ManagedGroupSQLi            = "AWSManagedRulesSQLiRuleSet"
	ManagedGroupKnownBadInputs  = "AWSManagedRulesKnownBadInputsRuleSet"
	ManagedGroupAnonymousIPList = "AWSManagedRulesAnonymousIpList"
)

// Assemble turns the Web ACL configuration into the ordered rule list of
// the Web ACL descriptor. Built-in categories hold fixed priorities 1-7
// and are emitted only when their feature flag is set (or, for the IP and
// geo blocks, when their list is non-empty); omitting one leaves no gap
// side effects. Custom rules are appended with their priorities verbatim.
// blockedIPSetARN is the reference expression of the materialized IP set
// and is only consulted when the blocked address list is non-empty.
func Assemble(logger zerolog.Logger, w config.WebACL, blockedIPSetARN string) []Rule {
	var out []Rule

	if w.EnableRateLimiting {
		out = append(out, Rule{
			Name:     "rate-limit",
			Priority: PriorityRateLimit,
			Action:   config.ActionBlock,
			Statement: RateBasedStatement{
				Limit:            w.RateLimit,
				AggregateKeyType: "IP",
			},
			Visibility: visibility(w.Name + "-rate-limit"),
		})
	}

	if w.EnableManagedRules {
		out = append(out, managedGroupRule(w.Name, "managed-common", PriorityManagedRules, ManagedGroupCommon))
	}

	if w.EnableSQLiRules {
		out = append(out, managedGroupRule(w.Name, "managed-sqli", PrioritySQLiRules, ManagedGroupSQLi))
	}

	if w.EnableXSSRules {
		out = append(out, managedGroupRule(w.Name, "managed-known-bad-inputs", PriorityXSSRules, ManagedGroupKnownBadInputs))
	}

	if w.EnableIPReputation {
		out = append(out, managedGroupRule(w.Name, "managed-anonymous-ip", PriorityIPReputation, ManagedGroupAnonymousIPList))
	}

	if len(w.BlockedAddresses) > 0 {
		out = append(out, Rule{
			Name:       "ip-block",
			Priority:   PriorityIPBlock,
			Action:     config.ActionBlock,
			Statement:  IPSetReferenceStatement{ARN: blockedIPSetARN},
			Visibility: visibility(w.Name + "-ip-block"),
		})
	}

	if len(w.GeoBlockCountries) > 0 {
		out = append(out, Rule{
			Name:       "geo-block",
			Priority:   PriorityGeoBlock,
			Action:     config.ActionBlock,
			Statement:  GeoMatchStatement{CountryCodes: w.GeoBlockCountries},
			Visibility: visibility(w.Name + "-geo-block"),
		})
	}

	for _, cr := range w.CustomRules {
		out = append(out, fromCustomRule(w.Name, cr))
	}

	// Priority determines the order of evaluation downstream; no
	// renumbering happens here.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})

	logger.Debug().Int("rules", len(out)).Str("webACL", w.Name).Msg("Assembled rule set")

	return out
}

func managedGroupRule(aclName, name string, priority int, group string) Rule {
	return Rule{
		Name:     name,
		Priority: priority,
		// Managed group rules carry an override action instead of an
		// action; none leaves the group's own actions in effect.
		OverrideAction: "none",
		Statement: ManagedRuleGroupStatement{
			VendorName: ManagedVendorAWS,
			Name:       group,
		},
		Visibility: visibility(aclName + "-" + name),
	}
}

func fromCustomRule(aclName string, cr config.CustomRule) Rule {
	var field FieldToMatch
	switch cr.Field {
	case config.FieldURIPath:
		field.URIPath = true
	case config.FieldQueryString:
		field.QueryString = true
	case config.FieldHeader:
		field.SingleHeader = cr.HeaderName
	}

	return Rule{
		Name:     cr.Name,
		Priority: cr.Priority,
		Action:   cr.Action,
		Statement: ByteMatchStatement{
			SearchString:         cr.SearchString,
			FieldToMatch:         field,
			PositionalConstraint: cr.PositionalConstraint,
			TextTransformations: []TextTransformation{
				{Priority: 0, Type: cr.TextTransformation},
			},
		},
		Visibility: visibility(aclName + "-" + cr.Name),
	}
}

func visibility(metricName string) Visibility {
	return Visibility{
		MetricName:               metricName,
		CloudWatchMetricsEnabled: true,
		SampledRequestsEnabled:   true,
	}
}
