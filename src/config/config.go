package config

import "time"

// Config is the root configuration structure
type Config struct {
	Agent      AgentConfig      `yaml:"agent"`
	Scan       ScanConfig       `yaml:"scan"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Estimator  EstimatorConfig  `yaml:"estimator"`
	Fleet      FleetConfig      `yaml:"fleet"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AgentConfig contains agent metadata
type AgentConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// ScanConfig controls which files a directory scan hands to the estimator
type ScanConfig struct {
	Extensions       []string         `yaml:"extensions"`
	ExcludeDirs      []string         `yaml:"exclude_dirs"`
	Exclusions       ExclusionsConfig `yaml:"exclusions"`
	SkipVendored     bool             `yaml:"skip_vendored"`
	FollowLinks      bool             `yaml:"follow_links"`
	MaxFileSize      string           `yaml:"max_file_size"` // human size, e.g. "1 MiB"
	MaxParallelFiles int              `yaml:"max_parallel_files"`
}

// ExclusionsConfig contains exclusion patterns
type ExclusionsConfig struct {
	FilePatterns     []string `yaml:"file_patterns"`
	Files            []string `yaml:"files"`
	FunctionPatterns []string `yaml:"function_patterns"`
}

// ThresholdsConfig holds the ecological thresholds of a run.
// It is passed by value so a run cannot change it once started.
type ThresholdsConfig struct {
	EcoThreshold              float64 `yaml:"eco_threshold"`
	TotalEnergyThresholdKJ    float64 `yaml:"total_energy_threshold_kj"`
	TotalCarbonThresholdGrams float64 `yaml:"total_carbon_threshold_grams"`
	EnergyPerFunctionJoules   float64 `yaml:"energy_per_function_joules"`
}

// EstimatorConfig contains the cost coefficients of the reference estimator
type EstimatorConfig struct {
	JoulesPerOp          float64        `yaml:"joules_per_op"`
	JoulesPerCall        float64        `yaml:"joules_per_call"`
	JoulesPerAlloc       float64        `yaml:"joules_per_alloc"`
	MillisPerOp          float64        `yaml:"millis_per_op"`
	BytesPerAlloc        uint64         `yaml:"bytes_per_alloc"`
	AssumedLoopIters     int            `yaml:"assumed_loop_iterations"`
	GridIntensityGPerKWh float64        `yaml:"grid_intensity_g_per_kwh"`
	EcoReferenceJoules   float64        `yaml:"eco_reference_joules"`
	EconReferenceMillis  float64        `yaml:"econ_reference_millis"`
	Weights              HealthWeights  `yaml:"weights"`
	Patterns             PatternsConfig `yaml:"patterns"`
}

// HealthWeights controls how the overall health score combines sub-scores
type HealthWeights struct {
	Eco     float64 `yaml:"eco"`
	Econ    float64 `yaml:"econ"`
	Quality float64 `yaml:"quality"`
}

// PatternsConfig contains pattern detector settings
type PatternsConfig struct {
	NestedLoop       bool `yaml:"nested_loop"`
	AllocationInLoop bool `yaml:"allocation_in_loop"`
	ConcatInLoop     bool `yaml:"string_concat_in_loop"`
	DeepNesting      bool `yaml:"deep_nesting"`
	Recursion        bool `yaml:"recursion"`
	MaxNestingDepth  int  `yaml:"max_nesting_depth"`
}

// FleetConfig selects and configures the shared context sink
type FleetConfig struct {
	Sink     string         `yaml:"sink"` // memory, file, http, postgres
	File     string         `yaml:"file"`
	URL      string         `yaml:"url"`
	Timeout  time.Duration  `yaml:"timeout"`
	Retry    RetryConfig    `yaml:"retry"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// RetryConfig contains retry settings for remote sink calls
type RetryConfig struct {
	MaxAttempts   int           `yaml:"max_attempts"`
	BackoffFactor float64       `yaml:"backoff_factor"`
	InitialDelay  time.Duration `yaml:"initial_delay"`
	MaxDelay      time.Duration `yaml:"max_delay"`
	RetryOnStatus []int         `yaml:"retry_on_status"`
}

// PostgresConfig contains the postgres sink connection settings
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// MetricsConfig contains run telemetry export settings
type MetricsConfig struct {
	Enabled        bool   `yaml:"enabled"`
	TextfilePath   string `yaml:"textfile_path"`
	PushgatewayURL string `yaml:"pushgateway_url"`
	JobName        string `yaml:"job_name"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Format                 string `yaml:"format"` // text, json, sarif, markdown
	OutputDir              string `yaml:"output_dir"`
	IncludeRecommendations bool   `yaml:"include_recommendations"`
	IncludePatterns        bool   `yaml:"include_patterns"`
	Color                  bool   `yaml:"color"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level            string `yaml:"level"`
	Format           string `yaml:"format"` // text, json
	File             string `yaml:"file"`
	IncludeTimestamp bool   `yaml:"include_timestamp"`
}
