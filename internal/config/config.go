package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Names looked up, in order, next to the executable
var FileNames = []string{"config.json", "config.yaml", "config.yml"}

type Config struct {
	Workers  int  `mapstructure:"workers"`  // Goroutines expanding a layer of the diagram
	MaxWidth int  `mapstructure:"maxWidth"` // Largest layer allowed, 0 for no limit
	Verify   bool `mapstructure:"verify"`   // Cross-check optima with gophersat
}

func Default() Config {
	return Config{Workers: runtime.NumCPU()}
}

// Load reads a JSON or YAML config file. Keys missing from the file keep their default value.
func Load(filePath string) (Config, error) {
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}

	var raw map[string]any
	switch filepath.Ext(filePath) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		err = json.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot parse config file %q: %w", filePath, err)
	}

	config := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config file %q: %w", filePath, err)
	}
	if config.Workers < 0 || config.MaxWidth < 0 {
		return Config{}, fmt.Errorf("workers and maxWidth must not be negative: %+v", config)
	}
	return config, nil
}

// Locate returns the path of the config file lying next to the executable, if any
func Locate() (string, bool) {
	execPath, err := os.Executable()
	if err != nil {
		return "", false
	}
	return locateIn(path.Dir(execPath))
}

func locateIn(directory string) (string, bool) {
	files, err := os.ReadDir(directory)
	if err != nil {
		return "", false
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })

	name, ok := lo.Find(FileNames, func(name string) bool { return slices.Contains(fileNames, name) })
	if !ok {
		return "", false
	}
	return filepath.Join(directory, name), true
}
