package config

const (
	defaultDataDir           = "~/.local/share/retain"
	defaultLogDir            = "~/.local/share/retain/logs"
	defaultChunkSize         = 10
	defaultMaxConcurrency    = 4
	defaultRetentionYears    = 6
	defaultMaxContextLines   = 100
	defaultMaxContextChars   = 4000
	defaultAgeBasis          = "modified"
	defaultBackend           = "ollama"
	defaultOllamaBaseURL     = "http://localhost:11434"
	defaultModel             = "records-classifier-phi2:latest"
	defaultTemperature       = 0.1
	defaultTimeoutSeconds    = 60
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultHistoryEnabled    = true
)

// Supported document extensions, matching the extraction registry defaults.
func defaultIncludeExt() []string {
	return []string{
		".txt", ".csv", ".docx", ".xlsx", ".pptx", ".pdf", ".html", ".htm",
		".md", ".rtf", ".odt", ".xml", ".json", ".yaml", ".yml", ".log", ".tsv",
	}
}

// Extensions that are never worth classifying (archives, binaries, databases).
func defaultExcludeExt() []string {
	return []string{
		".tmp", ".bak", ".old", ".zip", ".rar", ".tar", ".gz", ".7z",
		".exe", ".dll", ".sys", ".iso", ".dmg", ".apk", ".msi",
		".ps1", ".psd1", ".psm1", ".db", ".mdb", ".accdb",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Scan: Scan{
			ChunkSize:       defaultChunkSize,
			MaxConcurrency:  defaultMaxConcurrency,
			RetentionYears:  defaultRetentionYears,
			MaxContextLines: defaultMaxContextLines,
			MaxContextChars: defaultMaxContextChars,
			AgeBasis:        defaultAgeBasis,
			IncludeExt:      defaultIncludeExt(),
			ExcludeExt:      defaultExcludeExt(),
		},
		Classifier: Classifier{
			Backend:        defaultBackend,
			BaseURL:        defaultOllamaBaseURL,
			Model:          defaultModel,
			Temperature:    defaultTemperature,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
	}
}
