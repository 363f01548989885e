package configutil

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrReadYaml = errors.New("failed to read config file")

// EnvConfigurable applies environment overrides on top of a decoded config.
type EnvConfigurable[T any] func(conf *T, lookup LookupFunc) error

// GenericLoadConfig starts from defaultConfig, decodes the optional yaml file
// at filepath over it and then applies the environment overrides. Unknown
// yaml fields are rejected.
func GenericLoadConfig[T any](filepath string, lookup LookupFunc, defaultConfig func() T, loadEnv EnvConfigurable[T]) (*T, error) {
	conf := defaultConfig()

	if filepath != "" {
		if err := loadYamlFile(filepath, &conf); err != nil {
			return nil, err
		}
	}

	if loadEnv != nil {
		if err := loadEnv(&conf, lookup); err != nil {
			return nil, err
		}
	}

	return &conf, nil
}

func loadYamlFile[T any](filepath string, conf *T) error {
	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadYaml, err)
	}
	defer func() { _ = file.Close() }()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil {
		return fmt.Errorf("%w: %w", ErrReadYaml, err)
	}
	return nil
}
