package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns a configuration with the module defaults applied: a
// regional allow-by-default Web ACL with all built-in protections on and
// every optional subsystem off.
func Default() *Main {
	return &Main{
		WebACL: WebACL{
			Name:               "web-acl",
			Description:        "Web ACL managed by wafstack",
			Scope:              ScopeRegional,
			DefaultAction:      ActionAllow,
			EnableRateLimiting: true,
			RateLimit:          2000,
			EnableManagedRules: true,
			EnableSQLiRules:    true,
			EnableXSSRules:     true,
			EnableIPReputation: true,
		},
		Logging: Logging{
			RetentionDays:   30,
			DefaultBehavior: "KEEP",
		},
		CloudFront: CloudFront{
			DefaultBehavior: CacheBehavior{
				AllowedMethods:       []string{"GET", "HEAD"},
				CachedMethods:        []string{"GET", "HEAD"},
				ViewerProtocolPolicy: "redirect-to-https",
				DefaultTTL:           3600,
				MaxTTL:               86400,
				Compress:             true,
			},
			Certificate: Certificate{
				MinimumProtocolVersion: "TLSv1.2_2021",
			},
			GeoRestriction: GeoRestriction{Type: "none"},
		},
		ALB: ALB{
			TargetGroup: TargetGroup{
				Port:     80,
				Protocol: "HTTP",
				HealthCheck: HealthCheck{
					Path:               "/",
					Interval:           30,
					Timeout:            5,
					HealthyThreshold:   3,
					UnhealthyThreshold: 3,
					Matcher:            "200-399",
				},
			},
			Listener: Listener{
				Port:     80,
				Protocol: "HTTP",
			},
		},
	}
}

// LoadYAML reads a YAML configuration file, applies defaults for absent
// fields and validates the result.
func LoadYAML(path string) (*Main, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
