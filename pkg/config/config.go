package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cedana/graphbench/pkg/utils"
	"github.com/spf13/viper"
)

const (
	DIR_NAME   = ".graphbench"
	FILE_NAME  = "config"
	FILE_TYPE  = "json"
	DIR_PERM   = 0o755
	FILE_PERM  = 0o644
	ENV_PREFIX = "GRAPHBENCH"

	DEFAULT_LOG_LEVEL           = "info"
	DEFAULT_MACHINE             = "generic-job-file"
	DEFAULT_EXPERIMENT_DATA_DIR = "experiment_data"

	DEFAULT_SHARED_SHELL = "bash"

	DEFAULT_BATCH_TIME_LIMIT         = 20
	DEFAULT_BATCH_MODULE_RESTORE_CMD = "module restore"
)

// The default global config. This will get overwritten
// by the config file or env vars during startup, if they exist.
var Global Config = Config{
	LogLevel:          DEFAULT_LOG_LEVEL,
	Machine:           DEFAULT_MACHINE,
	ExperimentDataDir: DEFAULT_EXPERIMENT_DATA_DIR,
	Shared: Shared{
		Shell: DEFAULT_SHARED_SHELL,
	},
	Batch: Batch{
		TimeLimit:        DEFAULT_BATCH_TIME_LIMIT,
		ModuleRestoreCmd: DEFAULT_BATCH_MODULE_RESTORE_CMD,
	},
}

// The current config directory, set during Init
var Dir string

func init() {
	setDefaults()
	bindEnvVars()
	viper.Unmarshal(&Global)
}

type InitArgs struct {
	Config    string
	ConfigDir string
}

func Init(args InitArgs) error {
	if args.ConfigDir == "" {
		user, err := utils.GetUser()
		if err != nil {
			return err
		}
		Dir = filepath.Join(user.HomeDir, DIR_NAME)
	} else {
		Dir = args.ConfigDir
	}

	viper.AddConfigPath(Dir)
	viper.SetConfigPermissions(FILE_PERM)
	viper.SetConfigType(FILE_TYPE)
	viper.SetConfigName(FILE_NAME)

	// Create config directory if it does not exist
	if _, err := os.Stat(Dir); os.IsNotExist(err) {
		if err := os.MkdirAll(Dir, DIR_PERM); err != nil {
			return err
		}
	}

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("Config file %s is either outdated or invalid. Please delete or update it: %w", viper.ConfigFileUsed(), err)
		}
	}

	if args.Config != "" {
		err = viper.MergeConfig(strings.NewReader(args.Config))
		if err != nil {
			return fmt.Errorf("Provided config string is invalid: %w", err)
		}
	} else {
		viper.SafeWriteConfig() // Will only overwrite if file does not exist, ignore other errors
	}

	err = viper.UnmarshalExact(&Global)
	if err != nil {
		return fmt.Errorf("Config file %s is either outdated or invalid. Please delete or update it: %w", viper.ConfigFileUsed(), err)
	}

	return nil
}

// SearchDirs splits the suite search path, defaulting to the working
// directory.
func SearchDirs() []string {
	return splitPath(Global.SuiteSearchPath, ".")
}

// InputDescriptionFiles splits the input description list.
func InputDescriptionFiles() []string {
	return splitPath(Global.InputDescriptions)
}

func splitPath(list string, fallback ...string) []string {
	var dirs []string
	for _, dir := range filepath.SplitList(list) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return fallback
	}
	return dirs
}

// Loads the global defaults into viper
func setDefaults() {
	for _, field := range utils.ListLeaves(Config{}) {
		tag := utils.GetTag(Config{}, field, FILE_TYPE)
		defaultVal := utils.GetValue(Global, field)
		viper.SetDefault(tag, defaultVal)
	}
	viper.SetTypeByDefaultValue(true)
}

// Add bindings for env vars so env vars can be used as backup
// when a value is not found in config. Goes through all the json keys
// in the config type and binds an env var for it. The env var
// is prefixed with the envVarPrefix, all uppercase.
//
// Example: The field `batch.time_limit` will bind to env var `GRAPHBENCH_BATCH_TIME_LIMIT`,
// and to its alias `TIME_LIMIT`.
func bindEnvVars() {
	for _, field := range utils.ListLeaves(Config{}) {
		tag := utils.GetTag(Config{}, field, FILE_TYPE)
		envVar := ENV_PREFIX + "_" + strings.ToUpper(strings.ReplaceAll(tag, ".", "_"))

		// get env aliases from the leaf's struct tag
		aliasTag := utils.GetTag(Config{}, field, "env_aliases")
		aliasTag = aliasTag[strings.LastIndex(aliasTag, ".")+1:]

		aliases := []string{tag, envVar}
		for _, alias := range strings.Split(aliasTag, ",") {
			if alias = strings.TrimSpace(alias); alias != "" {
				aliases = append(aliases, alias)
			}
		}

		viper.MustBindEnv(aliases...)
	}

	viper.AutomaticEnv()
}
