// Package outputs re-exposes the identifying attributes of materialized
// resources as a structured result object. Attributes of resources that
// did not materialize are nil and serialize as JSON null; consumers must
// branch on presence rather than assume it.
package outputs

import (
	"wafstack/config"
	"wafstack/stack"
)

// Features summarizes which built-in protections the rule set carries.
type Features struct {
	RateLimiting bool `json:"rateLimiting"`
	ManagedRules bool `json:"managedRules"`
	SQLiRules    bool `json:"sqliRules"`
	XSSRules     bool `json:"xssRules"`
	IPReputation bool `json:"ipReputation"`
	IPBlocking   bool `json:"ipBlocking"`
	GeoBlocking  bool `json:"geoBlocking"`
}

// LoggingSummary describes the materialized logging pipeline.
type LoggingSummary struct {
	Enabled     bool   `json:"enabled"`
	Destination string `json:"destination,omitempty"`
}

// Outputs is the structured result object of a plan.
type Outputs struct {
	PlanID string `json:"planId"`

	WebACLARN  string `json:"webAclArn"`
	WebACLName string `json:"webAclName"`

	IPSetARN *string `json:"ipSetArn"`

	CloudFrontDistributionID *string `json:"cloudfrontDistributionId"`
	CloudFrontDomainName     *string `json:"cloudfrontDomainName"`

	ALBARN         *string `json:"albArn"`
	ALBDNSName     *string `json:"albDnsName"`
	TargetGroupARN *string `json:"targetGroupArn"`
	ListenerARN    *string `json:"listenerArn"`

	LogGroupARN  *string `json:"logGroupArn"`
	FirehoseARN  *string `json:"firehoseArn"`
	FirehoseRole *string `json:"firehoseRoleArn"`

	Features      Features       `json:"features"`
	Logging       LoggingSummary `json:"logging"`
	ResourceCount int            `json:"resourceCount"`
}

// Aggregate reads back the materialized plan. All presence decisions come
// from the plan's Decisions bits and the resource count from the emitted
// resource list, so the summaries cannot diverge from the actual
// materialization.
func Aggregate(cfg *config.Main, p *stack.Plan) Outputs {
	d := p.Decisions

	o := Outputs{
		PlanID:     p.ID,
		WebACLARN:  ref(stack.LogicalWebACL, "arn"),
		WebACLName: cfg.WebACL.Name,
		Features: Features{
			RateLimiting: cfg.WebACL.EnableRateLimiting,
			ManagedRules: cfg.WebACL.EnableManagedRules,
			SQLiRules:    cfg.WebACL.EnableSQLiRules,
			XSSRules:     cfg.WebACL.EnableXSSRules,
			IPReputation: cfg.WebACL.EnableIPReputation,
			IPBlocking:   d.IPSet,
			GeoBlocking:  len(cfg.WebACL.GeoBlockCountries) > 0,
		},
		ResourceCount: len(p.Resources),
	}

	if d.IPSet {
		o.IPSetARN = refp(stack.LogicalIPSet, "arn")
	}

	if d.CloudFront {
		o.CloudFrontDistributionID = refp(stack.LogicalCloudFront, "id")
		o.CloudFrontDomainName = refp(stack.LogicalCloudFront, "domain_name")
	}

	if d.ALB {
		o.ALBARN = refp(stack.LogicalLoadBalancer, "arn")
		o.ALBDNSName = refp(stack.LogicalLoadBalancer, "dns_name")
		o.TargetGroupARN = refp(stack.LogicalTargetGroup, "arn")
		o.ListenerARN = refp(stack.LogicalListener, "arn")
	}

	if d.LogGroup {
		o.LogGroupARN = refp(stack.LogicalLogGroup, "arn")
	}

	if d.Firehose {
		o.FirehoseARN = refp(stack.LogicalDeliveryStream, "arn")
		o.FirehoseRole = refp(stack.LogicalFirehoseRole, "arn")
	}

	o.Logging.Enabled = d.LoggingConfiguration
	switch {
	case d.Firehose:
		o.Logging.Destination = "firehose"
	case d.LogGroup:
		o.Logging.Destination = "cloudwatch"
	}

	return o
}

func ref(logical, attribute string) string {
	return stack.Ref{Resource: logical, Attribute: attribute}.String()
}

func refp(logical, attribute string) *string {
	s := ref(logical, attribute)
	return &s
}
