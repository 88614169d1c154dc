package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReasonDeclarationNotAtStart identifies the one response malformation the
// DokuWiki server is known to produce on otherwise successful writes: a
// blank line emitted before the XML declaration. Callers match on it to
// treat the write as acknowledged.
const ReasonDeclarationNotAtStart = "XML or text declaration not at start of response: line 2, column 0"

// parseResponse decodes an XML-RPC methodResponse body. A remote fault is
// returned as *Fault; any framing problem as *ParseError.
func parseResponse(body []byte) (any, error) {
	if reason := framingDefect(body); reason != "" {
		return nil, &ParseError{Reason: reason}
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, &ParseError{Reason: "no methodResponse element in response"}
		}
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "methodResponse" {
			return nil, &ParseError{Reason: fmt.Sprintf("unexpected root element <%s>", start.Name.Local)}
		}
		return parseResponseBody(dec)
	}
}

// framingDefect reports the canonical reason string when the body starts
// with a blank line followed by an XML declaration, and "" otherwise.
func framingDefect(body []byte) string {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == len(body) {
		return ""
	}
	lead := body[:len(body)-len(trimmed)]
	if bytes.ContainsRune(lead, '\n') && bytes.HasPrefix(trimmed, []byte("<?xml")) {
		return ReasonDeclarationNotAtStart
	}
	return ""
}

func parseResponseBody(dec *xml.Decoder) (any, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			if _, done := tok.(xml.EndElement); done {
				return nil, &ParseError{Reason: "methodResponse carries neither params nor fault"}
			}
			continue
		}
		switch start.Name.Local {
		case "params":
			return parseParams(dec)
		case "fault":
			return nil, parseFault(dec)
		default:
			return nil, &ParseError{Reason: fmt.Sprintf("unexpected element <%s> in methodResponse", start.Name.Local)}
		}
	}
}

func parseParams(dec *xml.Decoder) (any, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "value" {
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			return v, nil
		}
		if end, ok := tok.(xml.EndElement); ok && end.Name.Local == "params" {
			// A void response; DokuWiki write acknowledgements may omit
			// the value entirely.
			return nil, nil
		}
	}
}

// parseFault reads the fault <struct> and returns it as *Fault, falling
// back to *ParseError when the struct is not shaped as expected.
func parseFault(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return &ParseError{Reason: err.Error()}
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "value" {
			v, err := parseValue(dec)
			if err != nil {
				return err
			}
			members, ok := v.(map[string]any)
			if !ok {
				return &ParseError{Reason: "fault value is not a struct"}
			}
			fault := &Fault{Message: asString(members["faultString"])}
			if code, ok := members["faultCode"].(int); ok {
				fault.Code = code
			}
			return fault
		}
	}
}

// parseValue decodes the contents of a <value> element, positioned just
// after its start tag. Untyped text content is an implicit string.
func parseValue(dec *xml.Decoder) (any, error) {
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			// Bare </value>: the accumulated character data is the value.
			return text.String(), nil
		case xml.StartElement:
			v, err := parseTyped(dec, t.Name.Local)
			if err != nil {
				return nil, err
			}
			if err := skipToEnd(dec, "value"); err != nil {
				return nil, err
			}
			return v, nil
		}
	}
}

func parseTyped(dec *xml.Decoder, name string) (any, error) {
	switch name {
	case "string":
		return elementText(dec, name)
	case "int", "i4":
		s, err := elementText(dec, name)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("bad integer value %q", s)}
		}
		return n, nil
	case "boolean":
		s, err := elementText(dec, name)
		if err != nil {
			return nil, err
		}
		return strings.TrimSpace(s) == "1", nil
	case "double":
		s, err := elementText(dec, name)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("bad double value %q", s)}
		}
		return f, nil
	case "base64":
		s, err := elementText(dec, name)
		if err != nil {
			return nil, err
		}
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return nil, &ParseError{Reason: "bad base64 payload: " + err.Error()}
		}
		return Binary(data), nil
	case "dateTime.iso8601":
		s, err := elementText(dec, name)
		if err != nil {
			return nil, err
		}
		return DateTime(strings.TrimSpace(s)), nil
	case "nil":
		if err := skipToEnd(dec, name); err != nil {
			return nil, err
		}
		return nil, nil
	case "array":
		return parseArray(dec)
	case "struct":
		return parseStruct(dec)
	default:
		return nil, &ParseError{Reason: fmt.Sprintf("unsupported value type <%s>", name)}
	}
}

func parseArray(dec *xml.Decoder) (any, error) {
	items := []any{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "value" {
				v, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, v)
			}
		case xml.EndElement:
			if t.Name.Local == "array" {
				return items, nil
			}
		}
	}
}

func parseStruct(dec *xml.Decoder) (any, error) {
	members := map[string]any{}
	var name string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				name, err = elementText(dec, "name")
				if err != nil {
					return nil, err
				}
			case "value":
				v, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				members[name] = v
			}
		case xml.EndElement:
			if t.Name.Local == "struct" {
				return members, nil
			}
		}
	}
}

// elementText reads character data up to the matching end tag.
func elementText(dec *xml.Decoder, name string) (string, error) {
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", &ParseError{Reason: err.Error()}
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if t.Name.Local == name {
				return text.String(), nil
			}
		}
	}
}

// skipToEnd discards tokens until the end tag of the named element.
func skipToEnd(dec *xml.Decoder, name string) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return &ParseError{Reason: err.Error()}
		}
		if end, ok := tok.(xml.EndElement); ok && end.Name.Local == name {
			return nil
		}
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
