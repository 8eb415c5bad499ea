package config

const (
	defaultDataDir       = "~/.local/share/spdxgen"
	defaultScratchDir    = "~/.local/share/spdxgen/scratch"
	defaultOutputDir     = "~/.local/share/spdxgen/output"
	defaultLogDir        = "~/.local/share/spdxgen/logs"
	defaultProbeBinary   = "file"
	defaultProbeTimeout  = 30
	defaultNamespaceBase = "https://spdx.example.org/spdxdocs"
	defaultCreator       = "Tool: spdxgen"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"

	databaseFileName = "spdxgen.db"
	lockFileName     = "spdxgen.lock"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			ScratchDir: defaultScratchDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		// ProbeBinary and NamespaceBase stay empty here; normalize fills them
		// from the environment first, then the package defaults.
		Scanner: Scanner{
			ProbeTimeout: defaultProbeTimeout,
		},
		Document: Document{
			Creator: defaultCreator,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
