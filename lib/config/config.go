package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pescuma/churn/lib/filters"
	"github.com/pescuma/churn/lib/metrics"
)

const FileName = ".churn.yaml"

type Config struct {
	Branch                    string   `yaml:"branch,omitempty"`
	FirstParentOnly           bool     `yaml:"first_parent_only,omitempty"`
	Paths                     []string `yaml:"paths,omitempty"`
	FileTypes                 []string `yaml:"file_types,omitempty"`
	SkipVendored              bool     `yaml:"skip_vendored,omitempty"`
	Commits                   []string `yaml:"commits,omitempty"`
	MinorContributorThreshold float64  `yaml:"minor_contributor_threshold,omitempty"`
}

func Default() *Config {
	return &Config{
		MinorContributorThreshold: metrics.MinorContributorThreshold,
	}
}

// Find returns the path of the config file inside the repository, or an empty string if there is none.
func Find(repoDir string) (string, error) {
	file := filepath.Join(repoDir, FileName)

	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		return "", nil
	} else if err != nil {
		return "", errors.Wrapf(err, "error reading %v", file)
	}

	return file, nil
}

// Load reads the config file, filling the missing values with the defaults.
// An empty file name or a missing file returns the defaults.
func Load(file string) (*Config, error) {
	result := Default()

	if file == "" {
		return result, nil
	}

	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return result, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "error reading %v", file)
	}

	err = yaml.Unmarshal(data, result)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file %v", file)
	}

	if result.MinorContributorThreshold < 0 || result.MinorContributorThreshold > 1 {
		return nil, errors.Errorf("invalid config file %v: minor_contributor_threshold must be between 0 and 1", file)
	}
	if result.MinorContributorThreshold == 0 {
		result.MinorContributorThreshold = metrics.MinorContributorThreshold
	}

	return result, nil
}

func (c *Config) Save(file string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	err = os.WriteFile(file, data, 0o600)
	if err != nil {
		return errors.Wrapf(err, "error writing %v", file)
	}

	return nil
}

func (c *Config) PathOptions() filters.PathOptions {
	return filters.PathOptions{
		Patterns:     c.Paths,
		FileTypes:    c.FileTypes,
		SkipVendored: c.SkipVendored,
	}
}
