package config

import "github.com/nao1215/profilescan/internal/rules"

// File represents the structure of the .profilescan.yaml configuration file.
// All sections are optional; an empty file is equivalent to no file at all.
type File struct {
	// DefaultMode sets the privacy mode used when the --mode flag is absent.
	DefaultMode string `yaml:"defaultMode,omitempty"`

	// Database holds history database settings.
	Database DatabaseConfig `yaml:"database,omitempty"`

	// Keywords extends the built-in check vocabularies. Entries are added
	// to the defaults, never replacing them.
	Keywords KeywordConfig `yaml:"keywords,omitempty"`
}

// DatabaseConfig holds history database settings from the config file.
type DatabaseConfig struct {
	// Directory overrides the default database directory.
	Directory string `yaml:"directory,omitempty"`
}

// KeywordConfig extends the detection vocabularies of the check battery.
type KeywordConfig struct {
	// Scam adds keywords to the suspicious bio check.
	Scam []string `yaml:"scam,omitempty"`

	// Telegram adds patterns to the Telegram promotion check.
	Telegram []string `yaml:"telegram,omitempty"`

	// US adds indicators to the declared-location side of the geography check.
	US []string `yaml:"us,omitempty"`

	// Nigeria adds indicators to the technical-location side of the
	// geography check.
	Nigeria []string `yaml:"nigeria,omitempty"`
}

// ApplyTo merges file settings into the given Config. Command line flags
// win: a file value is applied only where the Config still holds the
// built-in default, so an explicit flag is never overridden.
func (cf *File) ApplyTo(c *Config) {
	if cf.DefaultMode != "" && c.Mode == DefaultMode {
		c.Mode = cf.DefaultMode
	}
	if cf.Database.Directory != "" && c.DBDir == XDGDataDir() {
		c.DBDir = cf.Database.Directory
	}
}

// RuleOptions converts the keyword sections into check battery options.
// Returns nil when no section extends anything.
func (cf *File) RuleOptions() []func(*rules.Options) {
	var opts []func(*rules.Options)
	if len(cf.Keywords.Scam) > 0 {
		opts = append(opts, rules.WithExtraScamKeywords(cf.Keywords.Scam...))
	}
	if len(cf.Keywords.Telegram) > 0 {
		opts = append(opts, rules.WithExtraTelegramPatterns(cf.Keywords.Telegram...))
	}
	if len(cf.Keywords.US) > 0 {
		opts = append(opts, rules.WithExtraUSIndicators(cf.Keywords.US...))
	}
	if len(cf.Keywords.Nigeria) > 0 {
		opts = append(opts, rules.WithExtraNigeriaIndicators(cf.Keywords.Nigeria...))
	}
	return opts
}
