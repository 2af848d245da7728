package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCustomRule() CustomRule {
	return CustomRule{
		Name:                 "blockEvilBot",
		Priority:             10,
		Action:               ActionBlock,
		MatchType:            "byte_match",
		SearchString:         "evilbot",
		PositionalConstraint: "CONTAINS",
		Field:                FieldHeader,
		HeaderName:           "User-Agent",
		TextTransformation:   "LOWERCASE",
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()

	assert.Nil(cfg.Validate())
}

func TestWebACLNameValidation(t *testing.T) {
	assert := assert.New(t)

	type testcase struct {
		name string
		ok   bool
	}
	tests := []testcase{
		{"web-acl", true},
		{"Web_ACL-01", true},
		{strings.Repeat("a", 128), true},
		{"", false},
		{strings.Repeat("a", 129), false},
		{"has spaces", false},
		{"bad/chars", false},
	}

	for _, test := range tests {
		cfg := Default()
		cfg.WebACL.Name = test.name

		err := cfg.Validate()

		if test.ok {
			assert.Nil(err, "name %q should be accepted", test.name)
		} else {
			assert.Error(err, "name %q should be rejected", test.name)
		}
	}
}

func TestScopeValidation(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.WebACL.Scope = ScopeCloudFront
	assert.Nil(cfg.Validate())

	cfg.WebACL.Scope = "GLOBAL"
	assert.Error(cfg.Validate())
}

func TestDefaultActionValidation(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.WebACL.DefaultAction = ActionBlock
	assert.Nil(cfg.Validate())

	// Anything outside allow/block is rejected before materialization.
	cfg.WebACL.DefaultAction = "count"
	assert.Error(cfg.Validate())
}

func TestRateLimitBounds(t *testing.T) {
	assert := assert.New(t)

	type testcase struct {
		limit int64
		ok    bool
	}
	tests := []testcase{
		{100, true},
		{2000000, true},
		{99, false},
		{2000001, false},
		{0, false},
		{-5, false},
	}

	for _, test := range tests {
		cfg := Default()
		cfg.WebACL.RateLimit = test.limit

		err := cfg.Validate()

		if test.ok {
			assert.Nil(err, "rate limit %d should be accepted", test.limit)
		} else {
			assert.Error(err, "rate limit %d should be rejected", test.limit)
		}
	}
}

func TestBlockedAddressesValidation(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.WebACL.BlockedAddresses = []string{"192.168.1.100/32", "10.0.0.0/8"}
	assert.Nil(cfg.Validate())

	cfg.WebACL.BlockedAddresses = []string{"192.168.1.100"}
	assert.Error(cfg.Validate())
}

func TestGeoBlockCountryCodeLength(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.WebACL.GeoBlockCountries = []string{"CN", "RU"}
	assert.Nil(cfg.Validate())

	cfg.WebACL.GeoBlockCountries = []string{"USA"}
	assert.Error(cfg.Validate())
}

func TestCustomRuleValidation(t *testing.T) {
	assert := assert.New(t)

	// A fully specified rule passes.
	cfg := Default()
	cfg.WebACL.CustomRules = []CustomRule{validCustomRule()}
	assert.Nil(cfg.Validate())

	type testcase struct {
		mutate func(*CustomRule)
	}
	tests := []testcase{
		{func(r *CustomRule) { r.Action = "count" }},
		{func(r *CustomRule) { r.MatchType = "regex_match" }},
		{func(r *CustomRule) { r.SearchString = "" }},
		{func(r *CustomRule) { r.PositionalConstraint = "SOMEWHERE" }},
		{func(r *CustomRule) { r.Field = "body" }},
		{func(r *CustomRule) { r.HeaderName = "" }},
		{func(r *CustomRule) { r.TextTransformation = "ROT13" }},
		{func(r *CustomRule) { r.Name = "" }},
	}

	for i, test := range tests {
		cr := validCustomRule()
		test.mutate(&cr)

		cfg := Default()
		cfg.WebACL.CustomRules = []CustomRule{cr}

		assert.Error(cfg.Validate(), "test case %v should be rejected", i)
	}
}

func TestRetentionDaysBounds(t *testing.T) {
	assert := assert.New(t)

	type testcase struct {
		days int
		ok   bool
	}
	tests := []testcase{
		{1, true},
		{3653, true},
		{0, false},
		{3654, false},
	}

	for _, test := range tests {
		cfg := Default()
		cfg.Logging.RetentionDays = test.days

		err := cfg.Validate()

		if test.ok {
			assert.Nil(err, "retention %d should be accepted", test.days)
		} else {
			assert.Error(err, "retention %d should be rejected", test.days)
		}
	}
}

func TestCloudFrontValidationOnlyWhenEnabled(t *testing.T) {
	assert := assert.New(t)

	// Disabled section carries no origin requirements.
	cfg := Default()
	assert.Nil(cfg.Validate())

	cfg.CloudFront.Enabled = true
	assert.Error(cfg.Validate(), "enabled distribution without origins should be rejected")

	cfg.CloudFront.Origins = []Origin{{DomainName: "bucket.s3.amazonaws.com", ID: "s3-origin", Type: OriginS3}}
	assert.Nil(cfg.Validate())

	cfg.CloudFront.Origins[0].Type = "ftp"
	assert.Error(cfg.Validate())
}

func TestALBValidationOnlyWhenEnabled(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Nil(cfg.Validate())

	cfg.ALB.Enabled = true
	cfg.ALB.Name = "my-alb"
	assert.Error(cfg.Validate(), "enabled ALB needs at least two subnets")

	cfg.ALB.SubnetIDs = []string{"subnet-1", "subnet-2"}
	assert.Nil(cfg.Validate())

	cfg.ALB.Listener.Protocol = "HTTPS"
	assert.Error(cfg.Validate(), "HTTPS listener needs a certificate")

	cfg.ALB.Listener.CertificateARN = "arn:aws:acm:us-east-1:123456789012:certificate/abc"
	assert.Nil(cfg.Validate())
}

// Cross-field consistency is deliberately deferred to apply time: a
// Firehose flag without a destination bucket passes validation.
func TestFirehoseWithoutDestinationPassesValidation(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.Logging.Enabled = true
	cfg.Logging.FirehoseEnabled = true
	cfg.Logging.FirehoseDestinationARN = ""

	assert.Nil(cfg.Validate())
}

// A custom rule colliding with a reserved priority also passes; the
// provider rejects duplicate priorities at apply time.
func TestReservedPriorityCollisionPassesValidation(t *testing.T) {
	assert := assert.New(t)

	cr := validCustomRule()
	cr.Priority = 1

	cfg := Default()
	cfg.WebACL.CustomRules = []CustomRule{cr}

	assert.Nil(cfg.Validate())
}
