package notion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the database property type a value is written as.
type Kind string

const (
	KindTitle    Kind = "title"
	KindRichText Kind = "rich_text"
	KindEmail    Kind = "email"
	KindSelect   Kind = "select"
	KindStatus   Kind = "status"
)

// Notion rejects text objects longer than this many characters.
const maxTextContent = 2000

// Select option names are capped at 100 characters and may not contain commas.
const maxOptionName = 100

// Value is a typed property value.
type Value struct {
	Kind Kind
	Text string
}

func Title(s string) Value    { return Value{Kind: KindTitle, Text: s} }
func RichText(s string) Value { return Value{Kind: KindRichText, Text: s} }
func Email(s string) Value    { return Value{Kind: KindEmail, Text: s} }
func Select(s string) Value   { return Value{Kind: KindSelect, Text: OptionName(s)} }
func Status(s string) Value   { return Value{Kind: KindStatus, Text: s} }

// OptionName rewrites free text into a name Notion accepts as a select
// option: commas become semicolons and the result is cut to 100 characters.
func OptionName(s string) string {
	s = strings.ReplaceAll(s, ",", ";")
	if runes := []rune(s); len(runes) > maxOptionName {
		s = strings.TrimSpace(string(runes[:maxOptionName]))
	}
	return s
}

type textContent struct {
	Content string `json:"content"`
}

type textObject struct {
	Type string      `json:"type"`
	Text textContent `json:"text"`
}

type namedOption struct {
	Name string `json:"name"`
}

// MarshalJSON encodes the value in the page-create property shape, e.g.
// {"select":{"name":"Website Design"}}.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindTitle:
		return json.Marshal(map[string]interface{}{"title": textObjects(v.Text)})
	case KindRichText:
		return json.Marshal(map[string]interface{}{"rich_text": textObjects(v.Text)})
	case KindEmail:
		return json.Marshal(map[string]interface{}{"email": v.Text})
	case KindSelect:
		return json.Marshal(map[string]interface{}{"select": namedOption{Name: OptionName(v.Text)}})
	case KindStatus:
		return json.Marshal(map[string]interface{}{"status": namedOption{Name: v.Text}})
	default:
		return nil, fmt.Errorf("unsupported property kind %q", v.Kind)
	}
}

// textObjects splits s into chunks that respect the per-object length limit.
func textObjects(s string) []textObject {
	runes := []rune(s)
	out := make([]textObject, 0, len(runes)/maxTextContent+1)
	for len(runes) > maxTextContent {
		out = append(out, textObject{Type: "text", Text: textContent{Content: string(runes[:maxTextContent])}})
		runes = runes[maxTextContent:]
	}
	out = append(out, textObject{Type: "text", Text: textContent{Content: string(runes)}})
	return out
}

// Property is a single named column value.
type Property struct {
	Name  string
	Value Value
}

// Properties is an ordered set of property values. It encodes as a JSON
// object whose keys keep insertion order.
type Properties []Property

// Get returns the value stored under name.
func (p Properties) Get(name string) (Value, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return Value{}, false
}

// Names lists the property names in order.
func (p Properties) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}
	return names
}

func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(prop.Value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", prop.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
