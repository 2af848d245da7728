package config

// Scope selects which provider endpoint the Web ACL is created against.
type Scope string

// Web ACL scopes. CloudFront distributions require the CLOUDFRONT scope,
// regional resources such as ALBs require REGIONAL.
const (
	ScopeRegional   Scope = "REGIONAL"
	ScopeCloudFront Scope = "CLOUDFRONT"
)

// Action is the enforcement decision a rule or the Web ACL default takes.
type Action string

// Rule and default actions.
const (
	ActionAllow Action = "allow"
	ActionBlock Action = "block"
)

// Main is the top level configuration.
type Main struct {
	WebACL     WebACL     `yaml:"web_acl" json:"webAcl"`
	Logging    Logging    `yaml:"logging" json:"logging"`
	CloudFront CloudFront `yaml:"cloudfront" json:"cloudfront"`
	ALB        ALB        `yaml:"alb" json:"alb"`
}

// WebACL configures the firewall itself: its identity, default action,
// built-in protections, and caller-supplied custom rules.
type WebACL struct {
	Name          string `yaml:"name" json:"name"`
	Description   string `yaml:"description" json:"description"`
	Scope         Scope  `yaml:"scope" json:"scope"`
	DefaultAction Action `yaml:"default_action" json:"defaultAction"`

	EnableRateLimiting bool  `yaml:"enable_rate_limiting" json:"enableRateLimiting"`
	RateLimit          int64 `yaml:"rate_limit" json:"rateLimit"`

	EnableManagedRules bool `yaml:"enable_managed_rules" json:"enableManagedRules"`
	EnableSQLiRules    bool `yaml:"enable_sqli_rules" json:"enableSqliRules"`
	EnableXSSRules     bool `yaml:"enable_xss_rules" json:"enableXssRules"`
	EnableIPReputation bool `yaml:"enable_ip_reputation" json:"enableIpReputation"`

	BlockedAddresses  []string     `yaml:"blocked_addresses" json:"blockedAddresses"`
	GeoBlockCountries []string     `yaml:"geo_block_countries" json:"geoBlockCountries"`
	CustomRules       []CustomRule `yaml:"custom_rules" json:"customRules"`
}

// MatchField identifies the request component a byte-match custom rule
// inspects.
type MatchField string

// Byte-match fields.
const (
	FieldURIPath     MatchField = "uri_path"
	FieldQueryString MatchField = "query_string"
	FieldHeader      MatchField = "header"
)

// CustomRule is a caller-supplied byte-match rule. The priority is used
// verbatim; collisions with the reserved priorities 1-7 or with another
// custom rule are not checked here and surface at apply time.
type CustomRule struct {
	Name                 string     `yaml:"name" json:"name"`
	Priority             int        `yaml:"priority" json:"priority"`
	Action               Action     `yaml:"action" json:"action"`
	MatchType            string     `yaml:"match_type" json:"matchType"`
	SearchString         string     `yaml:"search_string" json:"searchString"`
	PositionalConstraint string     `yaml:"positional_constraint" json:"positionalConstraint"`
	Field                MatchField `yaml:"field" json:"field"`
	HeaderName           string     `yaml:"header_name" json:"headerName"`
	TextTransformation   string     `yaml:"text_transformation" json:"textTransformation"`
}

// LoggingFilter is one entry of the optional logging filter list.
type LoggingFilter struct {
	Behavior    string `yaml:"behavior" json:"behavior"`
	Condition   string `yaml:"condition" json:"condition"`
	Requirement string `yaml:"requirement" json:"requirement"`
}

// Logging configures the log destinations for the Web ACL.
type Logging struct {
	Enabled                bool   `yaml:"enabled" json:"enabled"`
	RetentionDays          int    `yaml:"retention_days" json:"retentionDays"`
	FirehoseEnabled        bool   `yaml:"firehose_enabled" json:"firehoseEnabled"`
	FirehoseDestinationARN string `yaml:"firehose_destination_arn" json:"firehoseDestinationArn"`

	DefaultBehavior string          `yaml:"default_behavior" json:"defaultBehavior"`
	Filters         []LoggingFilter `yaml:"filters" json:"filters"`
}

// OriginType discriminates between the two origin variants a distribution
// supports.
type OriginType string

// Origin variants.
const (
	OriginS3     OriginType = "s3"
	OriginCustom OriginType = "custom"
)

// Origin is one upstream of the CloudFront distribution.
type Origin struct {
	DomainName    string            `yaml:"domain_name" json:"domainName"`
	ID            string            `yaml:"id" json:"id"`
	Type          OriginType        `yaml:"type" json:"type"`
	CustomHeaders map[string]string `yaml:"custom_headers" json:"customHeaders"`
}

// CacheBehavior describes how the distribution caches and forwards
// requests, either as the default behavior or scoped to a path pattern.
type CacheBehavior struct {
	PathPattern          string   `yaml:"path_pattern" json:"pathPattern,omitempty"`
	TargetOriginID       string   `yaml:"target_origin_id" json:"targetOriginId"`
	AllowedMethods       []string `yaml:"allowed_methods" json:"allowedMethods"`
	CachedMethods        []string `yaml:"cached_methods" json:"cachedMethods"`
	ViewerProtocolPolicy string   `yaml:"viewer_protocol_policy" json:"viewerProtocolPolicy"`
	MinTTL               int64    `yaml:"min_ttl" json:"minTtl"`
	DefaultTTL           int64    `yaml:"default_ttl" json:"defaultTtl"`
	MaxTTL               int64    `yaml:"max_ttl" json:"maxTtl"`
	Compress             bool     `yaml:"compress" json:"compress"`
}

// Certificate holds the viewer certificate settings of the distribution.
type Certificate struct {
	ACMCertificateARN      string `yaml:"acm_certificate_arn" json:"acmCertificateArn"`
	SSLSupportMethod       string `yaml:"ssl_support_method" json:"sslSupportMethod"`
	MinimumProtocolVersion string `yaml:"minimum_protocol_version" json:"minimumProtocolVersion"`
}

// GeoRestriction limits which countries the distribution serves.
type GeoRestriction struct {
	Type      string   `yaml:"type" json:"type"`
	Locations []string `yaml:"locations" json:"locations"`
}

// CustomErrorResponse maps an upstream error code to a custom response
// page served by the distribution.
type CustomErrorResponse struct {
	ErrorCode          int    `yaml:"error_code" json:"errorCode"`
	ResponseCode       int    `yaml:"response_code" json:"responseCode"`
	ResponsePagePath   string `yaml:"response_page_path" json:"responsePagePath"`
	ErrorCachingMinTTL int64  `yaml:"error_caching_min_ttl" json:"errorCachingMinTtl"`
}

// CloudFront configures the optional distribution and its Web ACL
// association.
type CloudFront struct {
	Enabled          bool                  `yaml:"enabled" json:"enabled"`
	AssociateWebACL  bool                  `yaml:"associate_web_acl" json:"associateWebAcl"`
	Origins          []Origin              `yaml:"origins" json:"origins"`
	DefaultBehavior  CacheBehavior         `yaml:"default_behavior" json:"defaultBehavior"`
	OrderedBehaviors []CacheBehavior       `yaml:"ordered_behaviors" json:"orderedBehaviors"`
	Certificate      Certificate           `yaml:"certificate" json:"certificate"`
	Aliases          []string              `yaml:"aliases" json:"aliases"`
	GeoRestriction   GeoRestriction        `yaml:"geo_restriction" json:"geoRestriction"`
	CustomErrors     []CustomErrorResponse `yaml:"custom_errors" json:"customErrors"`
}

// HealthCheck is the target group health check settings.
type HealthCheck struct {
	Path               string `yaml:"path" json:"path"`
	Interval           int    `yaml:"interval" json:"interval"`
	Timeout            int    `yaml:"timeout" json:"timeout"`
	HealthyThreshold   int    `yaml:"healthy_threshold" json:"healthyThreshold"`
	UnhealthyThreshold int    `yaml:"unhealthy_threshold" json:"unhealthyThreshold"`
	Matcher            string `yaml:"matcher" json:"matcher"`
}

// TargetGroup is the ALB target group settings.
type TargetGroup struct {
	Name        string      `yaml:"name" json:"name"`
	Port        int         `yaml:"port" json:"port"`
	Protocol    string      `yaml:"protocol" json:"protocol"`
	HealthCheck HealthCheck `yaml:"health_check" json:"healthCheck"`
}

// Listener is the ALB listener settings.
type Listener struct {
	Port           int    `yaml:"port" json:"port"`
	Protocol       string `yaml:"protocol" json:"protocol"`
	SSLPolicy      string `yaml:"ssl_policy" json:"sslPolicy"`
	CertificateARN string `yaml:"certificate_arn" json:"certificateArn"`
}

// ALB configures the optional load balancer group (load balancer, target
// group and listener always materialize together) and its Web ACL
// association.
type ALB struct {
	Enabled          bool        `yaml:"enabled" json:"enabled"`
	AssociateWebACL  bool        `yaml:"associate_web_acl" json:"associateWebAcl"`
	Name             string      `yaml:"name" json:"name"`
	Internal         bool        `yaml:"internal" json:"internal"`
	SubnetIDs        []string    `yaml:"subnet_ids" json:"subnetIds"`
	SecurityGroupIDs []string    `yaml:"security_group_ids" json:"securityGroupIds"`
	TargetGroup      TargetGroup `yaml:"target_group" json:"targetGroup"`
	Listener         Listener    `yaml:"listener" json:"listener"`
}
