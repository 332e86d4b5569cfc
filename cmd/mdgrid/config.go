package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rjkroege/mdgrid/layout"
	"github.com/rjkroege/mdgrid/table"
	"github.com/rjkroege/mdgrid/undo"
	"gopkg.in/yaml.v3"
)

// config is the contents of the YAML configuration file. All sizes are
// in terminal cells.
type config struct {
	Table     tableConfig  `yaml:"table"`
	Layout    layoutConfig `yaml:"layout"`
	UndoLimit int          `yaml:"undo_limit"`
}

type tableConfig struct {
	DragThreshold    int  `yaml:"drag_threshold"`
	EdgeHoverSnap    int  `yaml:"edge_hover_snap"`
	OutsideClickSnap int  `yaml:"outside_click_snap"`
	EmacsKeys        bool `yaml:"emacs_keys"`
	WordKeys         bool `yaml:"word_keys"`
}

type layoutConfig struct {
	Gutter     int `yaml:"gutter"`
	Padding    int `yaml:"padding"`
	Spacing    int `yaml:"spacing"`
	ColumnMin  int `yaml:"column_min"`
	ColumnMax  int `yaml:"column_max"`
	ListIndent int `yaml:"list_indent"`
}

func defaultConfig() config {
	return config{
		Table: tableConfig{
			DragThreshold:    1,
			EdgeHoverSnap:    0,
			OutsideClickSnap: 1,
			EmacsKeys:        true,
			WordKeys:         true,
		},
		Layout: layoutConfig{
			Gutter:     2,
			Padding:    0,
			Spacing:    1,
			ColumnMin:  3,
			ColumnMax:  32,
			ListIndent: 2,
		},
		UndoLimit: undo.DefaultLimit,
	}
}

// loadConfig reads the configuration at path over the defaults. An
// empty path gives the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c config) validate() error {
	t, l := c.Table, c.Layout
	switch {
	case t.DragThreshold < 0, t.EdgeHoverSnap < 0, t.OutsideClickSnap < 0:
		return errors.New("table thresholds must not be negative")
	case l.Gutter < 1:
		return errors.New("layout gutter must be at least 1")
	case l.Padding < 0, l.Spacing < 0, l.ListIndent < 0:
		return errors.New("layout sizes must not be negative")
	case l.ColumnMin < 1 || l.ColumnMax < l.ColumnMin:
		return fmt.Errorf("bad column width range %d..%d", l.ColumnMin, l.ColumnMax)
	}
	return nil
}

// engineConfig returns the table engine's tuning constants.
func (c config) engineConfig() table.Config {
	tc := table.DefaultConfig()
	tc.DragThreshold = c.Table.DragThreshold
	tc.EdgeHoverSnap = c.Table.EdgeHoverSnap
	tc.OutsideClickSnap = c.Table.OutsideClickSnap
	tc.HandleSize = c.Layout.Gutter
	tc.ProbeStep = 1
	tc.ProbeSpan = c.Layout.ColumnMax
	tc.EmacsKeys = c.Table.EmacsKeys
	tc.WordKeys = c.Table.WordKeys
	return tc
}

// layoutOptions returns the layout of a page width cells wide.
func (c config) layoutOptions(width int) []layout.Option {
	l := c.Layout
	return []layout.Option{
		layout.WithWidth(width),
		layout.WithGutter(l.Gutter),
		layout.WithPadding(l.Padding),
		layout.WithBorder(1),
		layout.WithSpacing(l.Spacing),
		layout.WithColumnWidth(l.ColumnMin, l.ColumnMax),
		layout.WithListIndent(l.ListIndent),
	}
}
