package config

import "time"

// DefaultThresholds returns the default ecological thresholds
func DefaultThresholds() ThresholdsConfig {
	return ThresholdsConfig{
		EcoThreshold:              50.0,
		TotalEnergyThresholdKJ:    10.0,  // 10 kJ
		TotalCarbonThresholdGrams: 2.0,   // 2 g CO2e
		EnergyPerFunctionJoules:   100.0, // 100 J per function
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:        "sustainabot",
			Version:     "0.2.0",
			Description: "Ecological & economic code analysis",
		},
		Scan: ScanConfig{
			Extensions:  []string{".go"},
			ExcludeDirs: []string{"target", "node_modules", ".git", "dist", "build", ".cache"},
			Exclusions: ExclusionsConfig{
				FilePatterns: []string{"**/testdata/**"},
			},
			SkipVendored:     true,
			FollowLinks:      false,
			MaxFileSize:      "1 MiB",
			MaxParallelFiles: 8,
		},
		Thresholds: DefaultThresholds(),
		Estimator: EstimatorConfig{
			JoulesPerOp:          0.05,
			JoulesPerCall:        0.5,
			JoulesPerAlloc:       1.0,
			MillisPerOp:          0.01,
			BytesPerAlloc:        64,
			AssumedLoopIters:     10,
			GridIntensityGPerKWh: 475,
			EcoReferenceJoules:   100,
			EconReferenceMillis:  20,
			Weights: HealthWeights{
				Eco:     0.4,
				Econ:    0.3,
				Quality: 0.3,
			},
			Patterns: PatternsConfig{
				NestedLoop:       true,
				AllocationInLoop: true,
				ConcatInLoop:     true,
				DeepNesting:      true,
				Recursion:        true,
				MaxNestingDepth:  4,
			},
		},
		Fleet: FleetConfig{
			Sink:    "memory",
			File:    ".sustainabot/findings.jsonl",
			URL:     "http://localhost:8282",
			Timeout: 10 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:   3,
				BackoffFactor: 1.5,
				InitialDelay:  100 * time.Millisecond,
				MaxDelay:      5 * time.Second,
				RetryOnStatus: []int{502, 503, 504},
			},
			Postgres: PostgresConfig{
				MaxOpenConns:    10,
				MaxIdleConns:    2,
				ConnMaxLifetime: 5 * time.Minute,
			},
		},
		Metrics: MetricsConfig{
			Enabled: false,
			JobName: "sustainabot",
		},
		Output: OutputConfig{
			Format:                 "text",
			OutputDir:              ".",
			IncludeRecommendations: true,
			IncludePatterns:        true,
			Color:                  true,
		},
		Logging: LoggingConfig{
			Level:            "info",
			Format:           "text",
			IncludeTimestamp: true,
		},
	}
}
