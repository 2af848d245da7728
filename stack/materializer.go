package stack

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wafstack/config"
	"wafstack/ipaddresses"
	"wafstack/rules"
)

// Decisions holds the existence predicate of every optional resource,
// computed once from the configuration. Materialization and all derived
// summaries read these bits; nothing downstream re-evaluates the raw
// enable flags.
type Decisions struct {
	IPSet                 bool `json:"ipSet"`
	CloudFront            bool `json:"cloudfront"`
	CloudFrontAssociation bool `json:"cloudfrontAssociation"`
	ALB                   bool `json:"alb"`
	ALBAssociation        bool `json:"albAssociation"`
	LogGroup              bool `json:"logGroup"`
	Firehose              bool `json:"firehose"`
	LoggingConfiguration  bool `json:"loggingConfiguration"`
}

// Decide evaluates the existence predicates. The ALB group (load
// balancer, target group, listener) and the Firehose group (stream, role,
// role policy) are atomic: one bit covers each group.
func Decide(cfg *config.Main) Decisions {
	return Decisions{
		IPSet:                 len(cfg.WebACL.BlockedAddresses) > 0,
		CloudFront:            cfg.CloudFront.Enabled,
		CloudFrontAssociation: cfg.CloudFront.Enabled && cfg.CloudFront.AssociateWebACL,
		ALB:                   cfg.ALB.Enabled,
		ALBAssociation:        cfg.ALB.Enabled && cfg.ALB.AssociateWebACL,
		LogGroup:              cfg.Logging.Enabled,
		Firehose:              cfg.Logging.Enabled && cfg.Logging.FirehoseEnabled,
		LoggingConfiguration:  cfg.Logging.Enabled,
	}
}

// Plan is the desired-state document handed to the external apply engine.
type Plan struct {
	ID        string     `json:"id"`
	Decisions Decisions  `json:"decisions"`
	Resources []Resource `json:"resources"`
}

// Resource returns the resource with the given logical name or nil when
// it was not materialized.
func (p *Plan) Resource(logical string) *Resource {
	for i := range p.Resources {
		if p.Resources[i].Logical == logical {
			return &p.Resources[i]
		}
	}
	return nil
}

// Materialize is the top level generator: it assembles the rule set,
// decides the existence of every optional subsystem and emits the
// resource descriptors with their cross-references. It is a pure function
// of the configuration apart from the generated plan ID.
func Materialize(logger zerolog.Logger, cfg *config.Main) *Plan {
	d := Decide(cfg)

	p := &Plan{
		ID:        uuid.NewString(),
		Decisions: d,
	}

	webACLARN := Ref{Resource: LogicalWebACL, Attribute: "arn"}

	if d.IPSet {
		p.add(logger, Resource{
			Type:       TypeIPSet,
			Logical:    LogicalIPSet,
			Properties: ipSetProperties(cfg),
		})
	}

	ruleSet := rules.Assemble(logger, cfg.WebACL, Ref{Resource: LogicalIPSet, Attribute: "arn"}.String())

	acl := Resource{
		Type:    TypeWebACL,
		Logical: LogicalWebACL,
		Properties: WebACLProperties{
			Name:          cfg.WebACL.Name,
			Description:   cfg.WebACL.Description,
			Scope:         cfg.WebACL.Scope,
			DefaultAction: actionJSON(cfg.WebACL.DefaultAction),
			Rules:         ruleSet,
			Visibility: rules.Visibility{
				MetricName:               cfg.WebACL.Name,
				CloudWatchMetricsEnabled: true,
				SampledRequestsEnabled:   true,
			},
		},
	}
	if d.IPSet {
		acl.DependsOn = []string{LogicalIPSet}
	}
	p.add(logger, acl)

	if d.CloudFront {
		p.add(logger, distribution(cfg, d, webACLARN))
	}

	if d.ALB {
		p.add(logger, Resource{
			Type:    TypeLoadBalancer,
			Logical: LogicalLoadBalancer,
			Properties: LoadBalancerProperties{
				Name:             cfg.ALB.Name,
				Internal:         cfg.ALB.Internal,
				LoadBalancerType: "application",
				SubnetIDs:        cfg.ALB.SubnetIDs,
				SecurityGroupIDs: cfg.ALB.SecurityGroupIDs,
			},
		})
		p.add(logger, Resource{
			Type:    TypeTargetGroup,
			Logical: LogicalTargetGroup,
			Properties: TargetGroupProperties{
				Name:        cfg.ALB.TargetGroup.Name,
				Port:        cfg.ALB.TargetGroup.Port,
				Protocol:    cfg.ALB.TargetGroup.Protocol,
				TargetType:  "instance",
				HealthCheck: cfg.ALB.TargetGroup.HealthCheck,
			},
		})
		p.add(logger, Resource{
			Type:    TypeListener,
			Logical: LogicalListener,
			Properties: ListenerProperties{
				LoadBalancerARN: Ref{Resource: LogicalLoadBalancer, Attribute: "arn"},
				Port:            cfg.ALB.Listener.Port,
				Protocol:        cfg.ALB.Listener.Protocol,
				SSLPolicy:       cfg.ALB.Listener.SSLPolicy,
				CertificateARN:  cfg.ALB.Listener.CertificateARN,
				DefaultAction: JSON{
					"type":           "forward",
					"targetGroupArn": Ref{Resource: LogicalTargetGroup, Attribute: "arn"},
				},
			},
			DependsOn: []string{LogicalLoadBalancer, LogicalTargetGroup},
		})
	}

	if d.ALBAssociation {
		p.add(logger, Resource{
			Type:    TypeWebACLAssociation,
			Logical: LogicalALBAssociation,
			Properties: AssociationProperties{
				ResourceARN: Ref{Resource: LogicalLoadBalancer, Attribute: "arn"},
				WebACLARN:   webACLARN,
			},
			DependsOn: []string{LogicalWebACL, LogicalLoadBalancer},
		})
	}

	if d.LogGroup {
		p.add(logger, Resource{
			Type:    TypeLogGroup,
			Logical: LogicalLogGroup,
			Properties: LogGroupProperties{
				Name:          "aws-waf-logs-" + cfg.WebACL.Name,
				RetentionDays: cfg.Logging.RetentionDays,
			},
		})
	}

	if d.Firehose {
		p.add(logger, firehoseRole(cfg))
		p.add(logger, firehosePolicy(cfg))
		p.add(logger, Resource{
			Type:    TypeDeliveryStream,
			Logical: LogicalDeliveryStream,
			Properties: DeliveryStreamProperties{
				Name:          "aws-waf-logs-" + cfg.WebACL.Name + "-stream",
				Destination:   "extended_s3",
				RoleARN:       Ref{Resource: LogicalFirehoseRole, Attribute: "arn"},
				BucketARN:     cfg.Logging.FirehoseDestinationARN,
				BufferSeconds: 300,
				BufferMB:      5,
			},
			DependsOn: []string{LogicalFirehoseRole},
		})
	}

	if d.LoggingConfiguration {
		p.add(logger, loggingConfiguration(cfg, d, webACLARN))
	}

	logger.Info().Str("planID", p.ID).Int("resources", len(p.Resources)).Msg("Materialized plan")

	return p
}

func (p *Plan) add(logger zerolog.Logger, r Resource) {
	logger.Debug().Str("type", string(r.Type)).Str("logical", r.Logical).Msg("Materializing resource")
	p.Resources = append(p.Resources, r)
}

func actionJSON(a config.Action) json.RawMessage {
	return json.RawMessage(`{"` + string(a) + `":{}}`)
}

func ipSetProperties(cfg *config.Main) IPSetProperties {
	addrs := make([]string, 0, len(cfg.WebACL.BlockedAddresses))
	for _, a := range cfg.WebACL.BlockedAddresses {
		// Validation already rejected malformed entries.
		n, err := ipaddresses.Normalize(a)
		if err != nil {
			n = a
		}
		addrs = append(addrs, n)
	}

	return IPSetProperties{
		Name:             cfg.WebACL.Name + "-blocked-ips",
		Scope:            cfg.WebACL.Scope,
		IPAddressVersion: "IPV4",
		Addresses:        addrs,
	}
}

func distribution(cfg *config.Main, d Decisions, webACLARN Ref) Resource {
	origins := make([]OriginProperties, 0, len(cfg.CloudFront.Origins))
	for _, o := range cfg.CloudFront.Origins {
		op := OriginProperties{
			DomainName:    o.DomainName,
			OriginID:      o.ID,
			CustomHeaders: o.CustomHeaders,
		}
		// The two origin variants are mutually exclusive.
		if o.Type == config.OriginS3 {
			op.S3Config = &S3OriginConfig{}
		} else {
			op.CustomConfig = &CustomOriginCfg{
				HTTPPort:             80,
				HTTPSPort:            443,
				OriginProtocolPolicy: "https-only",
				OriginSSLProtocols:   []string{"TLSv1.2"},
			}
		}
		origins = append(origins, op)
	}

	props := DistributionProperties{
		Enabled:              true,
		Aliases:              cfg.CloudFront.Aliases,
		Origins:              origins,
		DefaultCacheBehavior: cfg.CloudFront.DefaultBehavior,
		OrderedBehaviors:     cfg.CloudFront.OrderedBehaviors,
		ViewerCertificate:    cfg.CloudFront.Certificate,
		GeoRestriction:       cfg.CloudFront.GeoRestriction,
		CustomErrorResponses: cfg.CloudFront.CustomErrors,
	}

	r := Resource{
		Type:    TypeCloudFront,
		Logical: LogicalCloudFront,
	}

	if d.CloudFrontAssociation {
		ref := webACLARN
		props.WebACLID = &ref
		r.DependsOn = []string{LogicalWebACL}
	}

	r.Properties = props
	return r
}

func firehoseRole(cfg *config.Main) Resource {
	return Resource{
		Type:    TypeIAMRole,
		Logical: LogicalFirehoseRole,
		Properties: RoleProperties{
			Name: cfg.WebACL.Name + "-firehose-role",
			AssumeRolePolicyDocument: JSON{
				"Version": "2012-10-17",
				"Statement": []JSON{
					{
						"Effect":    "Allow",
						"Principal": JSON{"Service": "firehose.amazonaws.com"},
						"Action":    "sts:AssumeRole",
					},
				},
			},
		},
	}
}

func firehosePolicy(cfg *config.Main) Resource {
	bucket := cfg.Logging.FirehoseDestinationARN
	return Resource{
		Type:    TypeIAMRolePolicy,
		Logical: LogicalFirehosePolicy,
		Properties: RolePolicyProperties{
			Name: cfg.WebACL.Name + "-firehose-policy",
			Role: Ref{Resource: LogicalFirehoseRole, Attribute: "id"},
			PolicyDocument: JSON{
				"Version": "2012-10-17",
				"Statement": []JSON{
					{
						"Effect": "Allow",
						"Action": []string{
							"s3:AbortMultipartUpload",
							"s3:GetBucketLocation",
							"s3:GetObject",
							"s3:ListBucket",
							"s3:PutObject",
						},
						"Resource": []string{bucket, bucket + "/*"},
					},
				},
			},
		},
		DependsOn: []string{LogicalFirehoseRole},
	}
}

func loggingConfiguration(cfg *config.Main, d Decisions, webACLARN Ref) Resource {
	// Destination selection is mutually exclusive: the Firehose stream
	// when Firehose materialized, else the CloudWatch log group.
	dest := Ref{Resource: LogicalLogGroup, Attribute: "arn"}
	deps := []string{LogicalWebACL, LogicalLogGroup}
	if d.Firehose {
		dest = Ref{Resource: LogicalDeliveryStream, Attribute: "arn"}
		deps = []string{LogicalWebACL, LogicalDeliveryStream}
	}

	props := LoggingConfigurationProperties{
		ResourceARN:           webACLARN,
		LogDestinationConfigs: []Ref{dest},
	}

	if len(cfg.Logging.Filters) > 0 {
		props.Filter = &LoggingFilterProperties{
			DefaultBehavior: cfg.Logging.DefaultBehavior,
			Filters:         cfg.Logging.Filters,
		}
	}

	return Resource{
		Type:       TypeLoggingConfiguration,
		Logical:    LogicalLoggingConfig,
		Properties: props,
		DependsOn:  deps,
	}
}
