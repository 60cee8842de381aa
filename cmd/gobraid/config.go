package main

import (
	"github.com/2x3systems/gobraid/libbraid"
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds gobraid settings read from a TOML file.
// Command line flags override any value set here.
type Config struct {
	Presentation string `toml:"presentation"` // "artin" or "band"
	Index        int    `toml:"index"`        // strand count used when a command is given a word
	Catalog      string `toml:"catalog"`      // class catalog db path ("" for in-memory)
	MaxSummit    int    `toml:"max_summit"`   // catalog refuses classes with a larger USS (0 means no limit)
	Verbosity    int    `toml:"verbosity"`    // klog -v level
	Sliding      bool   `toml:"sliding"`      // check the sliding circuit before the USS when classifying
}

func DefaultConfig() Config {
	return Config{
		Presentation: libbraid.PresArtin,
		Index:        4,
	}
}

// LoadConfig reads pathname over the defaults.  An empty pathname yields the defaults.
func LoadConfig(pathname string) (Config, error) {
	cfg := DefaultConfig()
	if pathname == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(pathname, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %q", pathname)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("config %q: unknown key %q", pathname, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

func (cfg *Config) Validate() error {
	_, err := libbraid.NewPresentation(cfg.Presentation, cfg.Index)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	if cfg.MaxSummit < 0 {
		return errors.New("config: max_summit must be >= 0")
	}
	return nil
}
