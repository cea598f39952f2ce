package main

// newTestConfig mirrors the default configuration without going through
// viper, so tests can tweak individual knobs in isolation.
func newTestConfig() *Config {
	cfg := &Config{
		Whitelist:             make(map[string]bool),
		NoExtNames:            make(map[string]bool),
		ExcludeDirs:           append([]string{}, defaultExcludeDirs...),
		ExcludeGlobs:          append([]string{}, defaultExcludeGlobs...),
		MaxFileSize:           defaultMaxFileSize,
		MaxPathDisplayLen:     defaultMaxPathDisplay,
		NonPrintableThreshold: defaultNPThreshold,
		SampleSize:            defaultSampleSize,
		MinSampleRunes:        defaultMinSampleRunes,
		Workers:               4,
		RespectGitignore:      true,
	}
	for _, ext := range defaultWhitelist {
		cfg.Whitelist[ext] = true
	}
	for _, name := range defaultNoExtNames {
		cfg.NoExtNames[name] = true
	}
	return cfg
}
