// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

// CacheConfig sets the dimensions of one operation cache. The number of
// entries is the capacity of the node table divided by Divisor, but never less
// than MinSize. A Divisor of 0 means that the cache keeps a constant size of
// MinSize entries. Entries are grouped in buckets of Ways entries, with an LRU
// eviction policy inside each bucket.
type CacheConfig struct {
	Divisor int `yaml:"divisor"`
	MinSize int `yaml:"minSize"`
	Ways    int `yaml:"ways"`
}

// CachesConfig groups the configuration of every kind of operation cache.
type CachesConfig struct {
	Unary    CacheConfig `yaml:"unary"`
	Binary   CacheConfig `yaml:"binary"`
	Ternary  CacheConfig `yaml:"ternary"`
	Compose  CacheConfig `yaml:"compose"`
	SatCount CacheConfig `yaml:"satcount"`
	Volatile CacheConfig `yaml:"volatile"`
}

// GrowthConfig controls how much the node table grows when a garbage
// collection does not free enough nodes. The increase, as a percentage of the
// current size, is Small for tables with at most SmallTable nodes and Large for
// tables with at least LargeTable nodes. We interpolate linearly between the
// two in between.
type GrowthConfig struct {
	Small      int `yaml:"small"`
	Large      int `yaml:"large"`
	SmallTable int `yaml:"smallTable"`
	LargeTable int `yaml:"largeTable"`
}

// ExistsStrategy selects the algorithm used by Exists.
type ExistsStrategy int

const (
	// Shannon eliminates quantified variables with a recursive descent that
	// replaces each quantified node by the disjunction of its branches.
	Shannon ExistsStrategy = iota
	// SelfSubstitution eliminates one variable at a time with the identity
	// ∃x.f = f[x := f[x := 1]], using Compose.
	SelfSubstitution
)

var existsnames = [...]string{
	Shannon:          "shannon",
	SelfSubstitution: "self-substitution",
}

func (s ExistsStrategy) String() string {
	if s < 0 || int(s) >= len(existsnames) {
		return fmt.Sprintf("ExistsStrategy(%d)", int(s))
	}
	return existsnames[s]
}

// MarshalYAML encodes the strategy by its name.
func (s ExistsStrategy) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML decodes a strategy from its name.
func (s *ExistsStrategy) UnmarshalYAML(data []byte) error {
	var name string
	if err := yaml.Unmarshal(data, &name); err != nil {
		return err
	}
	name = strings.ToLower(strings.TrimSpace(name))
	for k, v := range existsnames {
		if v == name {
			*s = ExistsStrategy(k)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown exists strategy %q", ErrConfig, name)
}

// Config stores the parameters of a BDD. It is usually built with
// DefaultConfig and modified using options, but it can also be loaded from a
// YAML file (see LoadConfig).
type Config struct {
	// Nodesize is the initial number of nodes in the table. We always create a
	// table large enough for the constants and the variables.
	Nodesize int `yaml:"nodesize"`
	// MaxNodeSize is a limit on the number of nodes in the table (0 if no
	// limit).
	MaxNodeSize int `yaml:"maxNodeSize"`
	// MaxNodeIncrease is a limit on the number of nodes added at each resize
	// (0 if no limit).
	MaxNodeIncrease int `yaml:"maxNodeIncrease"`
	// MinFreeNodes is the ratio of free nodes (%) that has to be left after a
	// garbage collection, otherwise the table is resized.
	MinFreeNodes int          `yaml:"minFreeNodes"`
	Growth       GrowthConfig `yaml:"growth"`
	Caches       CachesConfig `yaml:"caches"`
	// Exists is the default strategy used by method Exists.
	Exists ExistsStrategy `yaml:"exists"`
	// Logger receives debug traces about garbage collection and resizing.
	Logger *zap.Logger `yaml:"-"`
}

// DefaultConfig returns the default configuration of a BDD.
func DefaultConfig() Config {
	return Config{
		Nodesize:        10000,
		MaxNodeIncrease: _DEFAULTMAXNODEINC,
		MinFreeNodes:    _MINFREENODES,
		Growth: GrowthConfig{
			Small:      100,
			Large:      25,
			SmallTable: 1 << 16,
			LargeTable: 1 << 24,
		},
		Caches: CachesConfig{
			Unary:    CacheConfig{Divisor: 8, MinSize: 1 << 10, Ways: 2},
			Binary:   CacheConfig{Divisor: 2, MinSize: 1 << 12, Ways: 4},
			Ternary:  CacheConfig{Divisor: 4, MinSize: 1 << 11, Ways: 4},
			Compose:  CacheConfig{Divisor: 0, MinSize: 256, Ways: 2},
			SatCount: CacheConfig{Divisor: 8, MinSize: 1 << 10, Ways: 2},
			Volatile: CacheConfig{Divisor: 4, MinSize: 1 << 11, Ways: 2},
		},
		Exists: Shannon,
	}
}

// Validate checks that the values in c are consistent.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, a ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, a...)))
		}
	}
	check(c.Nodesize >= 0, "negative nodesize (%d)", c.Nodesize)
	check(c.MaxNodeSize >= 0, "negative maxNodeSize (%d)", c.MaxNodeSize)
	check(c.MaxNodeIncrease >= 0, "negative maxNodeIncrease (%d)", c.MaxNodeIncrease)
	check(c.MinFreeNodes >= 0 && c.MinFreeNodes < 100, "minFreeNodes (%d) should be in [0, 100)", c.MinFreeNodes)
	check(c.Growth.Small > 0 && c.Growth.Large > 0, "growth percentages should be positive (small: %d, large: %d)", c.Growth.Small, c.Growth.Large)
	check(c.Growth.SmallTable > 0 && c.Growth.SmallTable <= c.Growth.LargeTable,
		"growth thresholds should satisfy 0 < smallTable (%d) <= largeTable (%d)", c.Growth.SmallTable, c.Growth.LargeTable)
	for _, k := range c.Caches.kinds() {
		check(k.cfg.Divisor >= 0, "cache %s: negative divisor (%d)", k.name, k.cfg.Divisor)
		check(k.cfg.MinSize > 0, "cache %s: minSize (%d) should be positive", k.name, k.cfg.MinSize)
		check(k.cfg.Ways > 0, "cache %s: ways (%d) should be positive", k.name, k.cfg.Ways)
	}
	check(c.Exists == Shannon || c.Exists == SelfSubstitution, "unknown exists strategy (%d)", int(c.Exists))
	return errors.Join(errs...)
}

type namedCache struct {
	name string
	cfg  *CacheConfig
}

func (c *CachesConfig) kinds() []namedCache {
	return []namedCache{
		{"unary", &c.Unary},
		{"binary", &c.Binary},
		{"ternary", &c.Ternary},
		{"compose", &c.Compose},
		{"satcount", &c.SatCount},
		{"volatile", &c.Volatile},
	}
}

// LoadConfig reads a YAML configuration from r. Fields missing from the input
// keep their default value.
func LoadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	data, err := io.ReadAll(r)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return c, c.Validate()
}

// LoadConfigFile reads a YAML configuration from the file at path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultConfig(), err
	}
	defer f.Close()
	return LoadConfig(f)
}

// ************************************************************

// Option is the type of configuration options passed to New.
type Option func(*Config)

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial size for the node table. The size of the BDD can
// increase during computation. By default we create a table large enough to
// include the two constants and the variables used in the call to Ithvar and
// NIthvar.
func Nodesize(size int) Option {
	return func(c *Config) {
		c.Nodesize = size
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the BDD. An operation trying to
// raise the number of nodes above this limit panics with ErrOutOfMemory. The
// default value (0) means that there is no limit.
func Maxnodesize(size int) Option {
	return func(c *Config) {
		c.MaxNodeSize = size
	}
}

// Maxnodeincrease is a configuration option (function). Used as a parameter in
// New it sets a limit on the increase in size of the node table. The default
// value is about a million nodes. Set the value to zero to avoid imposing a
// limit.
func Maxnodeincrease(size int) Option {
	return func(c *Config) {
		c.MaxNodeIncrease = size
	}
}

// Minfreenodes is a configuration option (function). Used as a parameter in New
// it sets the ratio of free nodes (%) that has to be left after a Garbage
// Collection event. With a ratio of, say 25, we resize the table if the number
// of free nodes is less than 25% of the capacity of the table. The default
// value is 20%.
func Minfreenodes(ratio int) Option {
	return func(c *Config) {
		c.MinFreeNodes = ratio
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New it
// sets the minimal number of entries in every operation cache.
func Cachesize(size int) Option {
	return func(c *Config) {
		for _, k := range c.Caches.kinds() {
			k.cfg.MinSize = size
		}
	}
}

// Cacheratio is a configuration option (function). Used as a parameter in New
// it sets a "cache ratio" (%) so that caches can grow each time we resize the
// node table. With a cache ratio of r, we have r available entries in the cache
// for every 100 slots in the node table. A ratio of 0 means that the cache size
// never grows.
func Cacheratio(ratio int) Option {
	return func(c *Config) {
		div := 0
		if ratio > 0 {
			div = max(1, 100/ratio)
		}
		for _, k := range c.Caches.kinds() {
			k.cfg.Divisor = div
		}
	}
}

// Growth is a configuration option (function) that sets the growth policy of
// the node table.
func Growth(g GrowthConfig) Option {
	return func(c *Config) {
		c.Growth = g
	}
}

// CacheFor is a configuration option (function) that sets the configuration of
// a single cache. Kind is one of unary, binary, ternary, compose, satcount or
// volatile; other values are ignored.
func CacheFor(kind string, cc CacheConfig) Option {
	return func(c *Config) {
		for _, k := range c.Caches.kinds() {
			if k.name == kind {
				*k.cfg = cc
			}
		}
	}
}

// ExistsWith is a configuration option (function) that selects the algorithm
// used by Exists.
func ExistsWith(s ExistsStrategy) Option {
	return func(c *Config) {
		c.Exists = s
	}
}

// Logger is a configuration option (function) that sets the logger used by the
// BDD. By default, nothing is logged.
func Logger(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
