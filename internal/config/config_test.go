package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taigrr/picklist/internal/ui/layout"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Equal(t, "vertical", cfg.Axis)
	require.Equal(t, 1, cfg.Constraint)
	require.Equal(t, Template{Path: "row", Width: 48, Height: 1}, cfg.Template)
	require.Equal(t, 1000, cfg.Dataset.Size)
	require.NotEmpty(t, cfg.LogFile)
	require.NoError(t, cfg.Validate())

	opts := cfg.PickOptions()
	require.True(t, opts.SingleUnpickable)
	require.False(t, opts.MultiPickable)
	require.False(t, opts.DisablePick)
}

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`
axis: horizontal
constraint: 3
spacing:
  x: 2
padding:
  left: 1
  top: 1
template:
  width: 12
  height: 3
pick:
  single_unpickable: false
  multi_pickable: true
dataset:
  size: 250
  seed: 7
  filter: log
log_file: /tmp/picklist-test.log
`))
	require.NoError(t, err)
	require.Equal(t, layout.Horizontal, cfg.LayoutAxis())
	require.Equal(t, 3, cfg.Constraint)
	require.Equal(t, Spacing{X: 2}, cfg.Spacing)
	require.Equal(t, Padding{Left: 1, Top: 1}, cfg.Padding)
	require.Equal(t, Template{Path: "row", Width: 12, Height: 3}, cfg.Template)
	require.Equal(t, Dataset{Size: 250, Seed: 7, Filter: "log"}, cfg.Dataset)
	require.Equal(t, "/tmp/picklist-test.log", cfg.LogFile)

	opts := cfg.PickOptions()
	require.False(t, opts.SingleUnpickable)
	require.True(t, opts.MultiPickable)
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"axis", "axis: diagonal"},
		{"constraint", "constraint: -2"},
		{"template", "template: {width: -1}"},
		{"dataset", "dataset: {size: -5}"},
		{"spacing", "spacing: {y: -1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse([]byte("axis: [nope"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "picklist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("constraint: 2\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Constraint)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
