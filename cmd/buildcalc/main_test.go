package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/simu/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Content.WeaponsDir = filepath.Join("..", "..", "content", "weapons")
	return cfg
}

func repoBuild(name string) string {
	return filepath.Join("..", "..", "content", "builds", name)
}

func TestRun_PrintsSheet(t *testing.T) {
	var out bytes.Buffer
	err := run(testConfig(t), zap.NewNop(), []string{repoBuild("berserker.yaml")}, false, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "== Berserker (melee, Livid Dagger)")
	assert.Contains(t, text, "tags")
	assert.Contains(t, text, "Undead")
	assert.Contains(t, text, "Smite: 70.00 % (Undead)")
	assert.Contains(t, text, "damage per second")
}

func TestRun_Compare(t *testing.T) {
	cfg := testConfig(t)
	cfg.Calculator.Instrument = true
	var out bytes.Buffer
	err := run(cfg, zap.NewNop(), []string{repoBuild("berserker.yaml"), repoBuild("mage.yaml")}, true, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "== Mage vs Berserker")
}

func TestRun_MissingWeapons(t *testing.T) {
	cfg := testConfig(t)
	cfg.Content.WeaponsDir = filepath.Join(t.TempDir(), "none")
	err := run(cfg, zap.NewNop(), []string{repoBuild("mage.yaml")}, false, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_InvalidBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Bad\nweapon: Nonexistent\n"), 0o644))
	err := run(testConfig(t), zap.NewNop(), []string{path}, false, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown weapon")
}
