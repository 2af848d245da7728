package stack

import (
	"encoding/json"

	"wafstack/config"
	"wafstack/rules"
)

// JSON is an inline policy or configuration document embedded in a
// descriptor.
type JSON map[string]interface{}

// WebACLProperties is the Web ACL descriptor body.
type WebACLProperties struct {
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Scope         config.Scope     `json:"scope"`
	DefaultAction json.RawMessage  `json:"defaultAction"`
	Rules         []rules.Rule     `json:"rules"`
	Visibility    rules.Visibility `json:"visibilityConfig"`
}

// IPSetProperties is the blocked-address IP set descriptor body.
type IPSetProperties struct {
	Name             string       `json:"name"`
	Scope            config.Scope `json:"scope"`
	IPAddressVersion string       `json:"ipAddressVersion"`
	Addresses        []string     `json:"addresses"`
}

// AssociationProperties binds the Web ACL to a protected regional
// resource.
type AssociationProperties struct {
	ResourceARN Ref `json:"resourceArn"`
	WebACLARN   Ref `json:"webAclArn"`
}

// LoggingFilterProperties is the optional filter block of the logging
// configuration.
type LoggingFilterProperties struct {
	DefaultBehavior string                 `json:"defaultBehavior"`
	Filters         []config.LoggingFilter `json:"filters"`
}

// LoggingConfigurationProperties binds the Web ACL to exactly one log
// destination.
type LoggingConfigurationProperties struct {
	ResourceARN           Ref                      `json:"resourceArn"`
	LogDestinationConfigs []Ref                    `json:"logDestinationConfigs"`
	Filter                *LoggingFilterProperties `json:"loggingFilter,omitempty"`
}

// LogGroupProperties is the CloudWatch log group descriptor body. The
// provider requires the aws-waf-logs- name prefix for WAF destinations.
type LogGroupProperties struct {
	Name          string `json:"name"`
	RetentionDays int    `json:"retentionInDays"`
}

// DeliveryStreamProperties is the Kinesis Firehose descriptor body.
type DeliveryStreamProperties struct {
	Name          string `json:"name"`
	Destination   string `json:"destination"`
	RoleARN       Ref    `json:"roleArn"`
	BucketARN     string `json:"bucketArn"`
	BufferSeconds int    `json:"bufferingInterval"`
	BufferMB      int    `json:"bufferingSize"`
}

// RoleProperties is the IAM role descriptor body.
type RoleProperties struct {
	Name                     string `json:"name"`
	AssumeRolePolicyDocument JSON   `json:"assumeRolePolicyDocument"`
}

// RolePolicyProperties is the inline IAM role policy descriptor body.
type RolePolicyProperties struct {
	Name           string `json:"name"`
	Role           Ref    `json:"role"`
	PolicyDocument JSON   `json:"policyDocument"`
}

// OriginProperties is one origin of the distribution descriptor. Exactly
// one of S3Config/CustomConfig is set, matching the origin type.
type OriginProperties struct {
	DomainName    string            `json:"domainName"`
	OriginID      string            `json:"originId"`
	CustomHeaders map[string]string `json:"customHeaders,omitempty"`
	S3Config      *S3OriginConfig   `json:"s3OriginConfig,omitempty"`
	CustomConfig  *CustomOriginCfg  `json:"customOriginConfig,omitempty"`
}

// S3OriginConfig marks an origin as an S3 bucket origin.
type S3OriginConfig struct {
	OriginAccessIdentity string `json:"originAccessIdentity"`
}

// CustomOriginCfg marks an origin as a custom (non-S3) origin.
type CustomOriginCfg struct {
	HTTPPort             int      `json:"httpPort"`
	HTTPSPort            int      `json:"httpsPort"`
	OriginProtocolPolicy string   `json:"originProtocolPolicy"`
	OriginSSLProtocols   []string `json:"originSslProtocols"`
}

// DistributionProperties is the CloudFront distribution descriptor body.
// WebACLID is only populated when the association flag is set.
type DistributionProperties struct {
	Enabled              bool                         `json:"enabled"`
	Aliases              []string                     `json:"aliases,omitempty"`
	Origins              []OriginProperties           `json:"origins"`
	DefaultCacheBehavior config.CacheBehavior         `json:"defaultCacheBehavior"`
	OrderedBehaviors     []config.CacheBehavior       `json:"orderedCacheBehaviors,omitempty"`
	ViewerCertificate    config.Certificate           `json:"viewerCertificate"`
	GeoRestriction       config.GeoRestriction        `json:"geoRestriction"`
	CustomErrorResponses []config.CustomErrorResponse `json:"customErrorResponses,omitempty"`
	WebACLID             *Ref                         `json:"webAclId,omitempty"`
}

// LoadBalancerProperties is the ALB descriptor body.
type LoadBalancerProperties struct {
	Name             string   `json:"name"`
	Internal         bool     `json:"internal"`
	LoadBalancerType string   `json:"loadBalancerType"`
	SubnetIDs        []string `json:"subnets"`
	SecurityGroupIDs []string `json:"securityGroups,omitempty"`
}

// TargetGroupProperties is the ALB target group descriptor body.
type TargetGroupProperties struct {
	Name        string             `json:"name"`
	Port        int                `json:"port"`
	Protocol    string             `json:"protocol"`
	TargetType  string             `json:"targetType"`
	HealthCheck config.HealthCheck `json:"healthCheck"`
}

// ListenerProperties is the ALB listener descriptor body.
type ListenerProperties struct {
	LoadBalancerARN Ref    `json:"loadBalancerArn"`
	Port            int    `json:"port"`
	Protocol        string `json:"protocol"`
	SSLPolicy       string `json:"sslPolicy,omitempty"`
	CertificateARN  string `json:"certificateArn,omitempty"`
	DefaultAction   JSON   `json:"defaultAction"`
}
