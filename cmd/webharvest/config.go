package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/steneberg/webharvest/pkg/harvest"
)

// fileConfig is the yaml config file layout.
//
//	targets:
//	  - name: books
//	    url: "http://books.toscrape.com/catalogue/page-%d.html"
//	    pages: 3
//	    delay: 1s
//	    output: books.csv
//	    schema:
//	      container: "article.product_pod"
//	      fields:
//	        - name: title
//	          selector: "h3 a"
//	          attr: title
type fileConfig struct {
	Targets []harvest.Target `yaml:"targets"`
}

// loadConfig reads and validates a yaml target configuration.
func loadConfig(path string) (*fileConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	cfg := &fileConfig{}
	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("config file %s: no targets defined", path)
	}
	for _, target := range cfg.Targets {
		if err := target.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
