package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Binary is a value transmitted as an XML-RPC <base64> payload.
type Binary []byte

// DateTime is the raw payload of an XML-RPC <dateTime.iso8601> value.
// DokuWiki emits it in two different formats depending on the server
// version, so the codec preserves it verbatim and leaves parsing to the
// caller.
type DateTime string

// marshalRequest renders a complete XML-RPC methodCall document.
func marshalRequest(method string, args []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<methodCall><methodName>")
	if err := escape(&buf, method); err != nil {
		return nil, err
	}
	buf.WriteString("</methodName><params>")
	for _, arg := range args {
		buf.WriteString("<param>")
		if err := writeValue(&buf, arg); err != nil {
			return nil, err
		}
		buf.WriteString("</param>")
	}
	buf.WriteString("</params></methodCall>")
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	buf.WriteString("<value>")
	switch val := v.(type) {
	case string:
		buf.WriteString("<string>")
		if err := escape(buf, val); err != nil {
			return err
		}
		buf.WriteString("</string>")
	case int:
		buf.WriteString("<int>")
		buf.WriteString(strconv.Itoa(val))
		buf.WriteString("</int>")
	case int64:
		buf.WriteString("<int>")
		buf.WriteString(strconv.FormatInt(val, 10))
		buf.WriteString("</int>")
	case bool:
		if val {
			buf.WriteString("<boolean>1</boolean>")
		} else {
			buf.WriteString("<boolean>0</boolean>")
		}
	case float64:
		buf.WriteString("<double>")
		buf.WriteString(strconv.FormatFloat(val, 'f', -1, 64))
		buf.WriteString("</double>")
	case Binary:
		buf.WriteString("<base64>")
		buf.WriteString(base64.StdEncoding.EncodeToString(val))
		buf.WriteString("</base64>")
	case []byte:
		buf.WriteString("<base64>")
		buf.WriteString(base64.StdEncoding.EncodeToString(val))
		buf.WriteString("</base64>")
	case DateTime:
		buf.WriteString("<dateTime.iso8601>")
		if err := escape(buf, string(val)); err != nil {
			return err
		}
		buf.WriteString("</dateTime.iso8601>")
	case time.Time:
		buf.WriteString("<dateTime.iso8601>")
		buf.WriteString(val.Format("20060102T15:04:05"))
		buf.WriteString("</dateTime.iso8601>")
	case []any:
		buf.WriteString("<array><data>")
		for _, item := range val {
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteString("</data></array>")
	case []string:
		buf.WriteString("<array><data>")
		for _, item := range val {
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteString("</data></array>")
	case map[string]any:
		// Sorted member order keeps request bodies deterministic.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteString("<struct>")
		for _, k := range keys {
			buf.WriteString("<member><name>")
			if err := escape(buf, k); err != nil {
				return err
			}
			buf.WriteString("</name>")
			if err := writeValue(buf, val[k]); err != nil {
				return err
			}
			buf.WriteString("</member>")
		}
		buf.WriteString("</struct>")
	default:
		return fmt.Errorf("xmlrpc: unsupported argument type %T", v)
	}
	buf.WriteString("</value>")
	return nil
}

func escape(buf *bytes.Buffer, s string) error {
	return xml.EscapeText(buf, []byte(s))
}
