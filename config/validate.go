package config

import (
	"fmt"
	"regexp"

	"wafstack/ipaddresses"
)

// Validation bounds from the provider API.
const (
	minNameLength = 1
	maxNameLength = 128
	minRateLimit  = 100
	maxRateLimit  = 2000000
	minRetention  = 1
	maxRetention  = 3653
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var validPositionalConstraints = map[string]struct{}{
	"EXACTLY":     {},
	"STARTS_WITH": {},
	"ENDS_WITH":   {},
	"CONTAINS":    {},
}

var validTextTransformations = map[string]struct{}{
	"NONE":                 {},
	"LOWERCASE":            {},
	"URL_DECODE":           {},
	"HTML_ENTITY_DECODE":   {},
	"CMD_LINE":             {},
	"COMPRESS_WHITE_SPACE": {},
}

// Validate checks every constrained field of the configuration. It runs
// before any rule assembly or materialization; the first violation stops
// processing with a message naming the offending field.
//
// Cross-field consistency (custom rule priority collisions, Firehose
// without a destination, associations without the associated resource
// enabled) is intentionally not checked here and surfaces at apply time.
func (c *Main) Validate() error {
	if err := c.WebACL.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.CloudFront.Validate(); err != nil {
		return err
	}
	if err := c.ALB.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks the Web ACL section.
func (w *WebACL) Validate() error {
	if len(w.Name) < minNameLength || len(w.Name) > maxNameLength {
		return fmt.Errorf("web_acl.name must be between %d and %d characters", minNameLength, maxNameLength)
	}
	if !namePattern.MatchString(w.Name) {
		return fmt.Errorf("web_acl.name may only contain alphanumeric characters, hyphens and underscores")
	}

	if w.Scope != ScopeRegional && w.Scope != ScopeCloudFront {
		return fmt.Errorf("web_acl.scope must be REGIONAL or CLOUDFRONT, got %q", w.Scope)
	}

	if w.DefaultAction != ActionAllow && w.DefaultAction != ActionBlock {
		return fmt.Errorf("web_acl.default_action must be allow or block, got %q", w.DefaultAction)
	}

	if w.RateLimit < minRateLimit || w.RateLimit > maxRateLimit {
		return fmt.Errorf("web_acl.rate_limit must be between %d and %d, got %d", minRateLimit, maxRateLimit, w.RateLimit)
	}

	if err := ipaddresses.ValidateList(w.BlockedAddresses); err != nil {
		return fmt.Errorf("web_acl.blocked_addresses: %v", err)
	}

	for _, cc := range w.GeoBlockCountries {
		if len(cc) != 2 {
			return fmt.Errorf("web_acl.geo_block_countries entries must be 2-letter country codes, got %q", cc)
		}
	}

	for i := range w.CustomRules {
		if err := w.CustomRules[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks one custom rule.
func (r *CustomRule) Validate() error {
	if len(r.Name) < minNameLength || len(r.Name) > maxNameLength {
		return fmt.Errorf("custom rule name must be between %d and %d characters", minNameLength, maxNameLength)
	}

	if r.Action != ActionAllow && r.Action != ActionBlock {
		return fmt.Errorf("custom rule %s: action must be allow or block, got %q", r.Name, r.Action)
	}

	if r.MatchType != "byte_match" {
		return fmt.Errorf("custom rule %s: match_type must be byte_match, got %q", r.Name, r.MatchType)
	}

	if r.SearchString == "" {
		return fmt.Errorf("custom rule %s: search_string must not be empty", r.Name)
	}

	if _, ok := validPositionalConstraints[r.PositionalConstraint]; !ok {
		return fmt.Errorf("custom rule %s: invalid positional_constraint %q", r.Name, r.PositionalConstraint)
	}

	switch r.Field {
	case FieldURIPath, FieldQueryString:
	case FieldHeader:
		if r.HeaderName == "" {
			return fmt.Errorf("custom rule %s: header_name is required when field is header", r.Name)
		}
	default:
		return fmt.Errorf("custom rule %s: field must be uri_path, query_string or header, got %q", r.Name, r.Field)
	}

	if _, ok := validTextTransformations[r.TextTransformation]; !ok {
		return fmt.Errorf("custom rule %s: invalid text_transformation %q", r.Name, r.TextTransformation)
	}

	return nil
}

// Validate checks the logging section.
func (l *Logging) Validate() error {
	if l.RetentionDays < minRetention || l.RetentionDays > maxRetention {
		return fmt.Errorf("logging.retention_days must be between %d and %d, got %d", minRetention, maxRetention, l.RetentionDays)
	}

	switch l.DefaultBehavior {
	case "KEEP", "DROP":
	default:
		return fmt.Errorf("logging.default_behavior must be KEEP or DROP, got %q", l.DefaultBehavior)
	}

	for _, f := range l.Filters {
		if f.Behavior != "KEEP" && f.Behavior != "DROP" {
			return fmt.Errorf("logging filter behavior must be KEEP or DROP, got %q", f.Behavior)
		}
		if f.Requirement != "MEETS_ALL" && f.Requirement != "MEETS_ANY" {
			return fmt.Errorf("logging filter requirement must be MEETS_ALL or MEETS_ANY, got %q", f.Requirement)
		}
	}

	return nil
}

// Validate checks the CloudFront section. Only enabled sections are
// validated in depth.
func (c *CloudFront) Validate() error {
	if !c.Enabled {
		return nil
	}

	if len(c.Origins) == 0 {
		return fmt.Errorf("cloudfront.origins must not be empty when cloudfront is enabled")
	}

	for _, o := range c.Origins {
		if o.DomainName == "" {
			return fmt.Errorf("cloudfront origin domain_name must not be empty")
		}
		if o.ID == "" {
			return fmt.Errorf("cloudfront origin id must not be empty")
		}
		if o.Type != OriginS3 && o.Type != OriginCustom {
			return fmt.Errorf("cloudfront origin type must be s3 or custom, got %q", o.Type)
		}
	}

	switch c.GeoRestriction.Type {
	case "none", "whitelist", "blacklist":
	default:
		return fmt.Errorf("cloudfront.geo_restriction.type must be none, whitelist or blacklist, got %q", c.GeoRestriction.Type)
	}

	return nil
}

// Validate checks the ALB section. Only enabled sections are validated
// in depth.
func (a *ALB) Validate() error {
	if !a.Enabled {
		return nil
	}

	if len(a.Name) < minNameLength || len(a.Name) > maxNameLength {
		return fmt.Errorf("alb.name must be between %d and %d characters", minNameLength, maxNameLength)
	}

	if len(a.SubnetIDs) < 2 {
		return fmt.Errorf("alb.subnet_ids must contain at least two subnets")
	}

	if a.TargetGroup.Port < 1 || a.TargetGroup.Port > 65535 {
		return fmt.Errorf("alb.target_group.port must be between 1 and 65535, got %d", a.TargetGroup.Port)
	}

	if a.Listener.Port < 1 || a.Listener.Port > 65535 {
		return fmt.Errorf("alb.listener.port must be between 1 and 65535, got %d", a.Listener.Port)
	}

	if a.Listener.Protocol == "HTTPS" && a.Listener.CertificateARN == "" {
		return fmt.Errorf("alb.listener.certificate_arn is required for HTTPS listeners")
	}

	return nil
}
