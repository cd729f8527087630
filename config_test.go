// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testConfig = `
nodesize: 500
maxNodeSize: 100000
exists: self-substitution
growth:
  small: 50
  large: 10
  smallTable: 1000
  largeTable: 100000
caches:
  binary:
    divisor: 3
    minSize: 64
    ways: 8
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(testConfig))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Nodesize)
	assert.Equal(t, 100000, cfg.MaxNodeSize)
	assert.Equal(t, SelfSubstitution, cfg.Exists)
	assert.Equal(t, GrowthConfig{Small: 50, Large: 10, SmallTable: 1000, LargeTable: 100000}, cfg.Growth)
	assert.Equal(t, CacheConfig{Divisor: 3, MinSize: 64, Ways: 8}, cfg.Caches.Binary)
	// missing fields keep their default value
	def := DefaultConfig()
	assert.Equal(t, def.MinFreeNodes, cfg.MinFreeNodes)
	assert.Equal(t, def.MaxNodeIncrease, cfg.MaxNodeIncrease)
	assert.Equal(t, def.Caches.Unary, cfg.Caches.Unary)

	b, err := NewWithConfig(3, cfg)
	require.NoError(t, err)
	assert.Equal(t, 503, b.Capacity())
	assert.Len(t, b.binarycache.table, primeGte((503/3+7)/8)*8)
	n := b.Reference(b.And(b.Ithvar(0), b.Ithvar(1)))
	assert.Equal(t, b.Ithvar(1), b.Exists(n, varset(0)))
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("exists: magic\n"))
	assert.ErrorIs(t, err, ErrConfig)
	_, err = LoadConfig(strings.NewReader("nodesize: [1, 2]\n"))
	assert.ErrorIs(t, err, ErrConfig)
	_, err = LoadConfig(strings.NewReader("minFreeNodes: 120\nnodesize: -1\n"))
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "minFreeNodes")
	assert.Contains(t, err.Error(), "negative nodesize")
	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bdd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Nodesize)
}

func TestMarshalConfig(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "exists: shannon")
	cfg, err := LoadConfig(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestExistsStrategy(t *testing.T) {
	assert.Equal(t, "shannon", Shannon.String())
	assert.Equal(t, "self-substitution", SelfSubstitution.String())
	assert.Equal(t, "ExistsStrategy(7)", ExistsStrategy(7).String())
	var s ExistsStrategy
	require.NoError(t, s.UnmarshalYAML([]byte(" Self-Substitution ")))
	assert.Equal(t, SelfSubstitution, s)
	assert.ErrorIs(t, s.UnmarshalYAML([]byte("other")), ErrConfig)
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	for _, opt := range []Option{
		Nodesize(42),
		Maxnodesize(1000),
		Maxnodeincrease(64),
		Minfreenodes(30),
		Cachesize(99),
		Cacheratio(25),
		CacheFor("ternary", CacheConfig{Divisor: 7, MinSize: 8, Ways: 1}),
		CacheFor("unknown", CacheConfig{}),
		ExistsWith(SelfSubstitution),
	} {
		opt(&cfg)
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 42, cfg.Nodesize)
	assert.Equal(t, 1000, cfg.MaxNodeSize)
	assert.Equal(t, 64, cfg.MaxNodeIncrease)
	assert.Equal(t, 30, cfg.MinFreeNodes)
	assert.Equal(t, CacheConfig{Divisor: 4, MinSize: 99, Ways: 4}, cfg.Caches.Binary)
	assert.Equal(t, CacheConfig{Divisor: 7, MinSize: 8, Ways: 1}, cfg.Caches.Ternary)
	assert.Equal(t, SelfSubstitution, cfg.Exists)

	Cacheratio(0)(&cfg)
	assert.Equal(t, 0, cfg.Caches.Unary.Divisor)
	Cacheratio(300)(&cfg)
	assert.Equal(t, 1, cfg.Caches.Unary.Divisor)
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := newTestBDD(t, 4, Logger(zap.New(core)))
	b.GarbageCollect()
	assert.NotZero(t, logs.FilterMessage("end GC").Len())
	assert.Equal(t, 4, logs.FilterMessage("new variable").Len())
	assert.Equal(t, b.Config().Logger, b.log)

	requirePanicsWith(t, ErrUnknownVariable, func() { b.Ithvar(9) })
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
