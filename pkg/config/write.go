package config

import (
	"os"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/MystenLabs/suiup/pkg/errors"
)

// Save writes the configuration as TOML, for seeding a user's
// suiup.toml from the resolved defaults.
func Save(cfg *Config, path string) error {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode configuration")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", path)
	}
	return nil
}
