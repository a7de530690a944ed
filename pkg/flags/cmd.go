package flags

// This file contains all the flags used in the cmd package.

type Flag struct {
	Full  string
	Short string
}

var (
	// Suite and input discovery
	SearchDirsFlag        = Flag{Full: "search-dirs", Short: "d"}
	SuiteFilesFlag        = Flag{Full: "suite-files", Short: "s"}
	InputDescriptionsFlag = Flag{Full: "input-descriptions", Short: "i"}

	// Directories
	BuildDirFlag          = Flag{Full: "build-dir", Short: "b"}
	OutputDirFlag         = Flag{Full: "output-dir", Short: "o"}
	ExperimentDataDirFlag = Flag{Full: "experiment-data-dir"}
	JobOutputDirFlag      = Flag{Full: "job-output-dir", Short: "j"}

	// Templates and modules
	SbatchTemplateFlag   = Flag{Full: "sbatch-template"}
	CommandTemplateFlag  = Flag{Full: "command-template"}
	ModuleConfigFlag     = Flag{Full: "module-config"}
	ModuleRestoreCmdFlag = Flag{Full: "module-restore-cmd"}

	// Run behavior
	MachineFlag        = Flag{Full: "machine", Short: "m"}
	TasksPerNodeFlag   = Flag{Full: "tasks-per-node"}
	TimeLimitFlag      = Flag{Full: "time-limit", Short: "t"}
	TestFlag           = Flag{Full: "test"}
	MaxCoresFlag       = Flag{Full: "max-cores"}
	ShellFlag          = Flag{Full: "shell"}
	OmitOutputPathFlag = Flag{Full: "omit-output-path"}
	OmitSeedFlag       = Flag{Full: "omit-seed"}
	FreshFlag          = Flag{Full: "fresh"}
	ProjectFlag        = Flag{Full: "project"}

	// Parent flags
	ConfigFlag    = Flag{Full: "config"}
	ConfigDirFlag = Flag{Full: "config-dir"}
	LogLevelFlag  = Flag{Full: "log-level"}

	// Docs
	DocsDirFlag = Flag{Full: "dir"}
	ManFlag     = Flag{Full: "man"}
)
