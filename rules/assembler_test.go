package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wafstack/config"
	"wafstack/testutils"
)

func bareWebACL() config.WebACL {
	return config.WebACL{
		Name:          "test-acl",
		Scope:         config.ScopeRegional,
		DefaultAction: config.ActionAllow,
		RateLimit:     2000,
	}
}

func TestRateLimitOnlyEmitsSingleRuleAtPriorityOne(t *testing.T) {
	assert := assert.New(t)
	logger := testutils.NewTestLogger(t)

	// Arrange
	w := bareWebACL()
	w.EnableRateLimiting = true

	// Act
	rs := Assemble(logger, w, "")

	// Assert
	assert.Len(rs, 1)
	assert.Equal(PriorityRateLimit, rs[0].Priority)
	assert.Equal("rate-limit", rs[0].Name)

	stmt, ok := rs[0].Statement.(RateBasedStatement)
	assert.True(ok)
	assert.Equal(int64(2000), stmt.Limit)
	assert.Equal("IP", stmt.AggregateKeyType)
}

func TestReservedRuleCountMatchesEnabledFeatures(t *testing.T) {
	assert := assert.New(t)
	logger := testutils.NewTestLogger(t)

	type testcase struct {
		mutate   func(*config.WebACL)
		expected int
	}
	tests := []testcase{
		{func(w *config.WebACL) {}, 0},
		{func(w *config.WebACL) { w.EnableRateLimiting = true }, 1},
		{func(w *config.WebACL) { w.EnableRateLimiting = true; w.EnableManagedRules = true }, 2},
		{func(w *config.WebACL) {
			w.EnableRateLimiting = true
			w.EnableManagedRules = true
			w.EnableSQLiRules = true
			w.EnableXSSRules = true
			w.EnableIPReputation = true
		}, 5},
		{func(w *config.WebACL) { w.BlockedAddresses = []string{"10.0.0.0/8"} }, 1},
		{func(w *config.WebACL) { w.GeoBlockCountries = []string{"CN"} }, 1},
		{func(w *config.WebACL) {
			w.EnableRateLimiting = true
			w.EnableManagedRules = true
			w.EnableSQLiRules = true
			w.EnableXSSRules = true
			w.EnableIPReputation = true
			w.BlockedAddresses = []string{"10.0.0.0/8"}
			w.GeoBlockCountries = []string{"CN", "RU"}
		}, 7},
	}

	for i, test := range tests {
		w := bareWebACL()
		test.mutate(&w)

		rs := Assemble(logger, w, "${blocked_ip_set.arn}")

		assert.Len(rs, test.expected, "test case %v", i)
	}
}

func TestReservedPrioritiesAreFixedConstants(t *testing.T) {
	assert := assert.New(t)
	logger := testutils.NewTestLogger(t)

	// Arrange: managed rules off leaves no gap side effects; geo block
	// keeps priority 7 regardless of what was omitted before it.
	w := bareWebACL()
	w.EnableRateLimiting = true
	w.GeoBlockCountries = []string{"CN"}

	// Act
	rs := Assemble(logger, w, "")

	// Assert
	assert.Len(rs, 2)
	assert.Equal(PriorityRateLimit, rs[0].Priority)
	assert.Equal(PriorityGeoBlock, rs[1].Priority)
}

func TestCustomRulePrioritiesPreservedVerbatim(t *testing.T) {
	assert := assert.New(t)
	logger := testutils.NewTestLogger(t)

	// Arrange
	w := bareWebACL()
	w.CustomRules = []config.CustomRule{
		{
			Name:                 "block-admin-path",
			Priority:             42,
			Action:               config.ActionBlock,
			MatchType:            "byte_match",
			SearchString:         "/admin",
			PositionalConstraint: "STARTS_WITH",
			Field:                config.FieldURIPath,
			TextTransformation:   "NONE",
		},
		{
			Name:                 "allow-healthcheck",
			Priority:             8,
			Action:               config.ActionAllow,
			MatchType:            "byte_match",
			SearchString:         "healthcheck",
			PositionalConstraint: "CONTAINS",
			Field:                config.FieldHeader,
			HeaderName:           "User-Agent",
			TextTransformation:   "LOWERCASE",
		},
	}

	// Act
	rs := Assemble(logger, w, "")

	// Assert: sorted ascending, priorities untouched.
	assert.Len(rs, 2)
	assert.Equal("allow-healthcheck", rs[0].Name)
	assert.Equal(8, rs[0].Priority)
	assert.Equal("block-admin-path", rs[1].Name)
	assert.Equal(42, rs[1].Priority)

	stmt, ok := rs[1].Statement.(ByteMatchStatement)
	assert.True(ok)
	assert.Equal("/admin", stmt.SearchString)
	assert.Equal("STARTS_WITH", stmt.PositionalConstraint)
	assert.True(stmt.FieldToMatch.URIPath)

	header := rs[0].Statement.(ByteMatchStatement)
	assert.Equal("User-Agent", header.FieldToMatch.SingleHeader)
	assert.Equal([]TextTransformation{{Priority: 0, Type: "LOWERCASE"}}, header.TextTransformations)
}

func TestManagedGroupRulesUseOverrideAction(t *testing.T) {
	assert := assert.New(t)
	logger := testutils.NewTestLogger(t)

	// Arrange
	w := bareWebACL()
	w.EnableManagedRules = true

	// Act
	rs := Assemble(logger, w, "")

	// Assert
	assert.Len(rs, 1)
	assert.Equal("none", rs[0].OverrideAction)

	stmt, ok := rs[0].Statement.(ManagedRuleGroupStatement)
	assert.True(ok)
	assert.Equal(ManagedVendorAWS, stmt.VendorName)
	assert.Equal(ManagedGroupCommon, stmt.Name)
}

func TestIPBlockRuleReferencesIPSet(t *testing.T) {
	assert := assert.New(t)
	logger := testutils.NewTestLogger(t)

	// Arrange
	w := bareWebACL()
	w.BlockedAddresses = []string{"192.168.1.100/32"}

	// Act
	rs := Assemble(logger, w, "${blocked_ip_set.arn}")

	// Assert
	assert.Len(rs, 1)
	assert.Equal(PriorityIPBlock, rs[0].Priority)

	stmt, ok := rs[0].Statement.(IPSetReferenceStatement)
	assert.True(ok)
	assert.Equal("${blocked_ip_set.arn}", stmt.ARN)
}
