package config

type (
	// Graphbench configuration. Each of the below fields can also be set
	// through an environment variable with the same name, prefixed, and in uppercase. E.g.
	// `Batch.TimeLimit` can be set with `GRAPHBENCH_BATCH_TIME_LIMIT`. The `env_aliases` tag below specifies
	// alternative (alias) environment variable names (comma-separated).
	Config struct {
		// LogLevel is the log level of the CLI
		LogLevel string `json:"log_level" mapstructure:"log_level" yaml:"log_level"`
		// Machine is the default machine type (shared, supermuc, horeka, generic-job-file)
		Machine string `json:"machine" mapstructure:"machine" yaml:"machine" env_aliases:"MACHINE"`
		// BuildDir is the directory benchmark executables are looked up in
		BuildDir string `json:"build_dir" mapstructure:"build_dir" yaml:"build_dir" env_aliases:"BUILD_DIR"`
		// SuiteSearchPath is a colon separated list of directories searched for suite files
		SuiteSearchPath string `json:"suite_search_path" mapstructure:"suite_search_path" yaml:"suite_search_path" env_aliases:"SUITE_SEARCH_PATH"`
		// InputDescriptions is a colon separated list of input catalog files
		InputDescriptions string `json:"input_descriptions" mapstructure:"input_descriptions" yaml:"input_descriptions" env_aliases:"INPUT_DESCRIPTIONS"`
		// ExperimentDataDir holds the generated job files and outputs
		ExperimentDataDir string `json:"experiment_data_dir" mapstructure:"experiment_data_dir" yaml:"experiment_data_dir" env_aliases:"EXPERIMENT_DATA_DIR"`

		// Settings for running jobs on the local machine
		Shared Shared `json:"shared" mapstructure:"shared" yaml:"shared"`
		// Settings for job file generation
		Batch Batch `json:"batch" mapstructure:"batch" yaml:"batch"`
	}

	Shared struct {
		// MaxCores caps the core counts run locally, 0 uses all logical CPUs
		MaxCores int `json:"max_cores" mapstructure:"max_cores" yaml:"max_cores"`
		// Shell runs each command line, commands are executed directly if empty
		Shell string `json:"shell" mapstructure:"shell" yaml:"shell"`
	}

	Batch struct {
		// TasksPerNode overrides the machine's tasks per node, 0 uses the machine default
		TasksPerNode int `json:"tasks_per_node" mapstructure:"tasks_per_node" yaml:"tasks_per_node" env_aliases:"TASKS_PER_NODE"`
		// TimeLimit is the time limit per job in minutes
		TimeLimit int `json:"time_limit" mapstructure:"time_limit" yaml:"time_limit" env_aliases:"TIME_LIMIT"`
		// Project is the account jobs are billed to
		Project string `json:"project" mapstructure:"project" yaml:"project" env_aliases:"PROJECT"`
		// ModuleRestoreCmd restores a module configuration in job files
		ModuleRestoreCmd string `json:"module_restore_cmd" mapstructure:"module_restore_cmd" yaml:"module_restore_cmd"`
	}
)
