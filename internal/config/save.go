package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// SaveTheme writes the theme section to the config file, keeping comments
// and formatting elsewhere intact.
func SaveTheme(configPath string, theme ThemeConfig) error {
	node, err := buildThemeNode(theme)
	if err != nil {
		return fmt.Errorf("building theme node: %w", err)
	}
	return saveSection(configPath, "theme", node)
}

// SaveMarkupDialect updates markup.dialect, keeping the rest of the file.
func SaveMarkupDialect(configPath, dialect string) error {
	return updateConfig(configPath, func(root *yaml.Node) {
		markupNode := mappingValue(root, "markup")
		if markupNode == nil || markupNode.Kind != yaml.MappingNode {
			markupNode = &yaml.Node{Kind: yaml.MappingNode}
			setMappingValue(root, "markup", markupNode)
		}
		setMappingValue(markupNode, "dialect", &yaml.Node{Kind: yaml.ScalarNode, Value: dialect})
	})
}

func saveSection(configPath, key string, value *yaml.Node) error {
	return updateConfig(configPath, func(root *yaml.Node) {
		setMappingValue(root, key, value)
	})
}

// updateConfig parses the file into a yaml.Node, applies fn to the root
// mapping and writes the result atomically.
func updateConfig(configPath string, fn func(root *yaml.Node)) error {
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: user-selected config path
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}
	fn(root)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// writeAtomic writes to a temp file in the same directory and renames it.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".wamark.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func buildThemeNode(theme ThemeConfig) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if theme.Preset != "" {
		setMappingValue(node, "preset", &yaml.Node{Kind: yaml.ScalarNode, Value: theme.Preset})
	}

	colors := theme.FlattenedColors()
	if len(colors) == 0 {
		return node, nil
	}

	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	colorsNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		var value yaml.Node
		if err := value.Encode(colors[k]); err != nil {
			return nil, err
		}
		// Hex colors need quoting or YAML reads them as comments.
		value.Style = yaml.DoubleQuotedStyle
		colorsNode.Content = append(colorsNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&value,
		)
	}
	setMappingValue(node, "colors", colorsNode)
	return node, nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// setMappingValue replaces key in m, or appends it.
func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}
