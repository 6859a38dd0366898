package config

import (
	"context"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/crlserver/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// fileRoot mirrors the top level of a configuration file. Every attribute is
// optional; absent ones keep their default.
type fileRoot struct {
	GamesDir      *string        `hcl:"games_dir,optional"`
	PlaygroundDir *string        `hcl:"playground_dir,optional"`
	MiscDir       *string        `hcl:"misc_dir,optional"`
	Log           *logBlock      `hcl:"log,block"`
	Terminal      *terminalBlock `hcl:"terminal,block"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type terminalBlock struct {
	MinRows *int `hcl:"min_rows,optional"`
	MinCols *int `hcl:"min_cols,optional"`
}

// overrides are read from the environment after the file.
type overrides struct {
	GamesDir      string `env:"CRLSERVER_GAMES_DIR"`
	PlaygroundDir string `env:"CRLSERVER_PLAYGROUND_DIR"`
	MiscDir       string `env:"CRLSERVER_MISC_DIR"`
	LogLevel      string `env:"CRLSERVER_LOG_LEVEL"`
	LogFormat     string `env:"CRLSERVER_LOG_FORMAT"`
}

// Load builds the configuration from the defaults, the HCL file at path (if
// path is not empty) and the process environment. The result is not
// validated: callers merge their own overrides first and then call Validate.
func Load(ctx context.Context, path string) (*Config, error) {
	return LoadWithEnv(ctx, path, env.ToMap(os.Environ()))
}

// LoadWithEnv is Load with an explicit environment.
func LoadWithEnv(ctx context.Context, path string, environ map[string]string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := Default()

	if path != "" {
		logger.Debug("Loading configuration file...", "path", path)
		if err := applyFile(cfg, path, environ); err != nil {
			return nil, err
		}
	}

	var o overrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	applyOverrides(cfg, &o)

	logger.Debug("Configuration loaded.", "games_dir", cfg.GamesDir, "playground_dir", cfg.PlaygroundDir, "misc_dir", cfg.MiscDir)
	return cfg, nil
}

func applyFile(cfg *Config, path string, environ map[string]string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse configuration file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(environ), &root)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode configuration file %s: %w", path, diags)
	}

	setString(&cfg.GamesDir, root.GamesDir)
	setString(&cfg.PlaygroundDir, root.PlaygroundDir)
	setString(&cfg.MiscDir, root.MiscDir)
	if root.Log != nil {
		setString(&cfg.LogLevel, root.Log.Level)
		setString(&cfg.LogFormat, root.Log.Format)
	}
	if root.Terminal != nil {
		if root.Terminal.MinRows != nil {
			cfg.MinRows = *root.Terminal.MinRows
		}
		if root.Terminal.MinCols != nil {
			cfg.MinCols = *root.Terminal.MinCols
		}
	}
	return nil
}

// evalContext exposes the environment as the `env` object and a few string
// helpers to configuration expressions.
func evalContext(environ map[string]string) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(environ))
	for k, v := range environ {
		vals[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vals),
		},
		Functions: map[string]function.Function{
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"trimspace": stdlib.TrimSpaceFunc,
		},
	}
}

func applyOverrides(cfg *Config, o *overrides) {
	setNonEmpty(&cfg.GamesDir, o.GamesDir)
	setNonEmpty(&cfg.PlaygroundDir, o.PlaygroundDir)
	setNonEmpty(&cfg.MiscDir, o.MiscDir)
	setNonEmpty(&cfg.LogLevel, o.LogLevel)
	setNonEmpty(&cfg.LogFormat, o.LogFormat)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setNonEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
