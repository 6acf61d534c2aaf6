package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	IO struct {
		Input  string `yaml:"input"`
		Output string `yaml:"output"`
	} `yaml:"io"`
	Book struct {
		// Index selects the price tree: "rbtree" or "btree"
		Index string `yaml:"index"`
	} `yaml:"book"`
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Metrics struct {
		// Textfile receives the metrics in text exposition format at exit
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
}

func defaultConfig() Config {
	var c Config
	c.IO.Input = "input.txt"
	c.IO.Output = "output.txt"
	c.Book.Index = "rbtree"
	c.Logging.Level = "info"
	c.Logging.Pretty = false
	c.Metrics.Textfile = ""
	return c
}

// Load builds the configuration from defaults, the YAML file named by
// ORDERBOOK_CONFIG, ORDERBOOK_* variables and finally positional args
// (input path, then output path), later sources winning.
func Load(args []string) (Config, error) {
	c := defaultConfig()
	if path := os.Getenv("ORDERBOOK_CONFIG"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if v := os.Getenv("ORDERBOOK_INPUT"); v != "" {
		c.IO.Input = v
	}
	if v := os.Getenv("ORDERBOOK_OUTPUT"); v != "" {
		c.IO.Output = v
	}
	if v := os.Getenv("ORDERBOOK_INDEX"); v != "" {
		c.Book.Index = v
	}
	if v := os.Getenv("ORDERBOOK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ORDERBOOK_LOG_PRETTY"); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("ORDERBOOK_LOG_PRETTY: %w", err)
		}
		c.Logging.Pretty = pretty
	}
	if v := os.Getenv("ORDERBOOK_METRICS_FILE"); v != "" {
		c.Metrics.Textfile = v
	}
	if len(args) > 0 {
		c.IO.Input = args[0]
	}
	if len(args) > 1 {
		c.IO.Output = args[1]
	}
	return c, nil
}
