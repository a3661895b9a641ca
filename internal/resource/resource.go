package resource

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
	FormatEnv  Format = "env"
)

var ErrUnsupportedFormat = errors.New("unsupported resource format")

var namePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Resource is a generated string resource.
type Resource struct {
	Name  string
	Value string
}

// NameFor derives a resource name from a configuration key:
// GOOGLE_MAPS_API_KEY becomes google_maps_api_key.
func NameFor(key string) string {
	return strings.ToLower(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func ValidateName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Match(namePattern).Error("must be lowercase letters, digits and underscores"),
	)
}

func (r Resource) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Match(namePattern)),
		validation.Field(&r.Value, validation.Required),
	)
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatXML, FormatYAML, FormatEnv:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Encode renders resources in the given format, sorted by name.
func Encode(format Format, resources []Resource) ([]byte, error) {
	sorted := append([]Resource(nil), resources...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	for _, r := range sorted {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("resource %q: %w", r.Name, err)
		}
	}

	switch format {
	case FormatXML:
		return encodeXML(sorted)
	case FormatYAML:
		return encodeYAML(sorted)
	case FormatEnv:
		return encodeEnv(sorted)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

type xmlResources struct {
	XMLName xml.Name    `xml:"resources"`
	Strings []xmlString `xml:"string"`
}

type xmlString struct {
	Name         string `xml:"name,attr"`
	Translatable string `xml:"translatable,attr"`
	Value        string `xml:",chardata"`
}

func encodeXML(resources []Resource) ([]byte, error) {
	doc := xmlResources{Strings: make([]xmlString, 0, len(resources))}
	for _, r := range resources {
		doc.Strings = append(doc.Strings, xmlString{
			Name:         r.Name,
			Translatable: "false",
			Value:        EscapeAndroid(r.Value),
		})
	}

	out, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<!-- Generated by resvalue. Do not edit. -->\n")
	buf.Write(out)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// EscapeAndroid escapes characters that aapt treats specially in string resources.
func EscapeAndroid(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '\\' || r == '\'' || r == '"':
			b.WriteByte('\\')
			b.WriteRune(r)
		case i == 0 && (r == '@' || r == '?'):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func encodeYAML(resources []Resource) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, r := range resources {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: r.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: r.Value, Style: yaml.DoubleQuotedStyle},
		)
	}

	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return out, nil
}

func encodeEnv(resources []Resource) ([]byte, error) {
	env := make(gotenv.Env, len(resources))
	for _, r := range resources {
		env[r.Name] = r.Value
	}

	out, err := gotenv.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode env: %w", err)
	}
	return []byte(out + "\n"), nil
}
