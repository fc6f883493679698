// Package config reads the optional graphc.hcl compiler configuration.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"graphc/internal/compiler"
)

// DefaultFile is looked up in the working directory when no path is given
const DefaultFile = "graphc.hcl"

// Config is the decoded configuration file
type Config struct {
	// Verbosity is passed to commonlog.Configure: 0 quiet, 1 info, 2 debug
	Verbosity int        `hcl:"verbosity,optional"`
	Kinds     []KindDecl `hcl:"kind,block"`
}

// KindDecl binds an extra node kind identifier to a built-in dispatch kind:
//
//	kind "Add" {
//	  dispatch = "binaryOp"
//	}
type KindDecl struct {
	ID       string `hcl:"id,label"`
	Dispatch string `hcl:"dispatch"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{}
}

// Load reads and decodes the file at path
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	return decode(file)
}

// Resolve loads path. An empty path means DefaultFile in the working directory, or the
// default configuration when that file does not exist.
func Resolve(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return Default(), nil
		}
		path = DefaultFile
	}
	return Load(path)
}

// Parse decodes src; filename is only used in diagnostics
func Parse(filename string, src []byte) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, diags
	}
	if _, err := cfg.Bindings(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Bindings returns the built-in kind bindings followed by the configured ones
func (c *Config) Bindings() ([]compiler.KindBinding, error) {
	bindings := compiler.DefaultBindings()
	for _, k := range c.Kinds {
		kind, ok := compiler.ParseNodeKind(k.Dispatch)
		if !ok {
			return nil, fmt.Errorf("kind %q: unknown dispatch %q (want input, constant or binaryOp)", k.ID, k.Dispatch)
		}
		bindings = append(bindings, compiler.KindBinding{ID: k.ID, Kind: kind})
	}
	return bindings, nil
}
