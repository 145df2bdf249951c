package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
)

// ConfigRenderer renders local config
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{out: out}
}

// Render renders the current local config
func (r *ConfigRenderer) Render(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintln(r.out, "No local config file found")
		fmt.Fprintln(r.out, "Set values with: metalinks config set <key> <value>")
		return nil
	}

	fmt.Fprintln(r.out, "📋 Current config:")
	for _, key := range config.ValidConfigKeys() {
		value := result.Config.Get(key)
		if value == "" {
			value = color.New(color.Faint).Sprint("(not set)")
		}
		fmt.Fprintf(r.out, "%-10s %s\n", titleKey(key)+":", value)
	}
	fmt.Fprintf(r.out, "\n📁 Config file: %s\n", result.ConfigPath)
	return nil
}

// RenderSet reports a changed key
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	if result.Value == "" {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed %s from config", result.Key)))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to: %s", result.Key, result.Value)))
	}
	fmt.Fprintf(r.out, "📁 Config saved to: %s\n", result.ConfigPath)
	return nil
}

func titleKey(key config.ConfigKey) string {
	return networkTitle(string(key))
}

var _ Renderer[*usecase.ShowConfigResult] = (*ConfigRenderer)(nil)
