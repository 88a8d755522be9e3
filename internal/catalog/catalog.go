package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"meigen/internal/domain"
	"meigen/internal/emotion"
)

//go:embed default.yaml
var defaultCatalog []byte

// ErrUnknownLabel is returned by Pick for a label that is not in the catalog.
var ErrUnknownLabel = errors.New("unknown emotion label")

// Emotion is one configured emotion with its synonyms and matching sayings.
type Emotion struct {
	Label    string          `yaml:"label"`
	Synonyms []string        `yaml:"synonyms"`
	Sayings  []domain.Saying `yaml:"sayings"`
}

// Catalog is the ordered list of emotions the bot knows about.
// The order is significant: it breaks ties when ranking.
type Catalog struct {
	Emotions []Emotion `yaml:"emotions"`

	mu  sync.Mutex
	rng *rand.Rand
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path. An empty path selects the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	return &c, nil
}

// Validate checks that labels are present and unique and that every emotion
// has at least one synonym and one saying.
func (c *Catalog) Validate() error {
	if len(c.Emotions) == 0 {
		return errors.New("catalog has no emotions")
	}
	seen := make(map[string]struct{}, len(c.Emotions))
	for i, e := range c.Emotions {
		if e.Label == "" {
			return fmt.Errorf("emotion %d: missing label", i)
		}
		if _, dup := seen[e.Label]; dup {
			return fmt.Errorf("emotion %q: duplicate label", e.Label)
		}
		seen[e.Label] = struct{}{}
		if len(e.Synonyms) == 0 {
			return fmt.Errorf("emotion %q: no synonyms", e.Label)
		}
		if len(e.Sayings) == 0 {
			return fmt.Errorf("emotion %q: no sayings", e.Label)
		}
		for j, s := range e.Sayings {
			if s.Speaker == "" || s.Text == "" {
				return fmt.Errorf("emotion %q: saying %d: speaker and text are required", e.Label, j)
			}
		}
	}
	return nil
}

// Entries returns the labels and synonyms in catalog order.
func (c *Catalog) Entries() []emotion.Entry {
	out := make([]emotion.Entry, len(c.Emotions))
	for i, e := range c.Emotions {
		out[i] = emotion.Entry{Label: e.Label, Synonyms: append([]string(nil), e.Synonyms...)}
	}
	return out
}

// Seed makes Pick deterministic.
func (c *Catalog) Seed(seed int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rng = rand.New(rand.NewSource(seed))
}

// Pick returns a random saying for label.
func (c *Catalog) Pick(label string) (domain.Saying, error) {
	for _, e := range c.Emotions {
		if e.Label != label {
			continue
		}
		if len(e.Sayings) == 0 {
			return domain.Saying{}, fmt.Errorf("emotion %q: no sayings", label)
		}
		c.mu.Lock()
		if c.rng == nil {
			c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		i := c.rng.Intn(len(e.Sayings))
		c.mu.Unlock()
		return e.Sayings[i], nil
	}
	return domain.Saying{}, fmt.Errorf("%w: %s", ErrUnknownLabel, label)
}
