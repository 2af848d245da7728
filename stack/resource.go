package stack

// ResourceType identifies the provider resource a descriptor maps to.
type ResourceType string

// Resource types emitted by the materializer.
const (
	TypeWebACL               ResourceType = "wafv2_web_acl"
	TypeIPSet                ResourceType = "wafv2_ip_set"
	TypeWebACLAssociation    ResourceType = "wafv2_web_acl_association"
	TypeLoggingConfiguration ResourceType = "wafv2_web_acl_logging_configuration"
	TypeCloudFront           ResourceType = "cloudfront_distribution"
	TypeLoadBalancer         ResourceType = "lb"
	TypeTargetGroup          ResourceType = "lb_target_group"
	TypeListener             ResourceType = "lb_listener"
	TypeLogGroup             ResourceType = "cloudwatch_log_group"
	TypeDeliveryStream       ResourceType = "kinesis_firehose_delivery_stream"
	TypeIAMRole              ResourceType = "iam_role"
	TypeIAMRolePolicy        ResourceType = "iam_role_policy"
)

// Logical names of the materialized resources. Reference expressions and
// dependency edges use these.
const (
	LogicalWebACL         = "web_acl"
	LogicalIPSet          = "blocked_ip_set"
	LogicalCloudFront     = "distribution"
	LogicalLoadBalancer   = "load_balancer"
	LogicalTargetGroup    = "target_group"
	LogicalListener       = "listener"
	LogicalALBAssociation = "alb_web_acl_association"
	LogicalLogGroup       = "waf_log_group"
	LogicalDeliveryStream = "waf_firehose"
	LogicalFirehoseRole   = "firehose_role"
	LogicalFirehosePolicy = "firehose_role_policy"
	LogicalLoggingConfig  = "waf_logging_configuration"
)

// Ref is a reference expression to an attribute of another materialized
// resource. It serializes as "${logical.attribute}" and induces a
// create-order dependency on the referenced resource in the external
// apply engine.
type Ref struct {
	Resource  string
	Attribute string
}

// String renders the reference expression.
func (r Ref) String() string {
	return "${" + r.Resource + "." + r.Attribute + "}"
}

// MarshalJSON renders the reference as its expression string.
func (r Ref) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// Resource is one descriptor of the desired-state graph. Properties is a
// typed per-resource struct; DependsOn lists the logical names of the
// resources whose attributes the properties reference.
type Resource struct {
	Type       ResourceType `json:"type"`
	Logical    string       `json:"logical"`
	Properties interface{}  `json:"properties"`
	DependsOn  []string     `json:"dependsOn,omitempty"`
}
