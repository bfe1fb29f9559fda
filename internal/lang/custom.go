package lang

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Custom describes a user-trained recognition network. The YAML layout
// matches the training tooling's export:
//
//	imgH: 64
//	lang_list:
//	  - en
//	character_list: "0123456789abc..."
type Custom struct {
	// Height is the model's input strip height in pixels.
	Height int `yaml:"imgH"`

	// Languages the network was trained on.
	Languages []string `yaml:"lang_list"`

	// Characters is the network's full output alphabet.
	Characters string `yaml:"character_list"`
}

// LoadCustom reads and validates a custom network description.
func LoadCustom(path string) (*Custom, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network config: %w", err)
	}

	var c Custom
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse network config: %w", err)
	}
	if c.Height <= 0 {
		return nil, fmt.Errorf("network config %s: imgH must be positive, got %d", path, c.Height)
	}
	if len(c.Languages) == 0 {
		return nil, fmt.Errorf("network config %s: lang_list is empty", path)
	}
	if c.Characters == "" {
		return nil, fmt.Errorf("network config %s: character_list is empty", path)
	}
	return &c, nil
}

// Group converts a custom network description into a model group so the
// pipeline can treat built-in and custom models uniformly.
func (c *Custom) Group(name string) *Group {
	return &Group{
		Key:       name,
		Model:     name,
		Languages: c.Languages,
		Charset:   c.Characters,
	}
}
