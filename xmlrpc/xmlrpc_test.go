package xmlrpc

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMarshalRequest(t *testing.T) {
	payload, err := marshalRequest("wiki.putPage", []any{
		"ns:page",
		"content",
		map[string]any{"sum": "edit", "minor": true},
	})
	if err != nil {
		t.Fatalf("marshalRequest failed: %v", err)
	}

	body := string(payload)
	if !strings.Contains(body, "<methodName>wiki.putPage</methodName>") {
		t.Error("request should contain the method name")
	}
	if !strings.Contains(body, "<string>ns:page</string>") {
		t.Error("request should contain the first positional argument")
	}
	if !strings.Contains(body, "<name>sum</name>") {
		t.Error("request should contain the options struct member name")
	}
	if !strings.Contains(body, "<boolean>1</boolean>") {
		t.Error("request should encode true as boolean 1")
	}
	// Struct members are emitted in sorted key order
	if strings.Index(body, "<name>minor</name>") > strings.Index(body, "<name>sum</name>") {
		t.Error("struct members should be sorted by key")
	}
}

func TestMarshalRequest_Types(t *testing.T) {
	tests := []struct {
		name string
		arg  any
		want string
	}{
		{"int", 42, "<int>42</int>"},
		{"negative int", -7, "<int>-7</int>"},
		{"false", false, "<boolean>0</boolean>"},
		{"double", 1.5, "<double>1.5</double>"},
		{"binary", Binary("hi"), "<base64>aGk=</base64>"},
		{"datetime", DateTime("20160101T00:00:00"), "<dateTime.iso8601>20160101T00:00:00</dateTime.iso8601>"},
		{"escaped string", "a<b&c", "<string>a&lt;b&amp;c</string>"},
		{"array", []any{"x", 1}, "<array><data><value><string>x</string></value><value><int>1</int></value></data></array>"},
		{"string slice", []string{"a", "b"}, "<array><data><value><string>a</string></value><value><string>b</string></value></data></array>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := marshalRequest("test", []any{tt.arg})
			if err != nil {
				t.Fatalf("marshalRequest failed: %v", err)
			}
			if !strings.Contains(string(payload), tt.want) {
				t.Errorf("request %q should contain %q", payload, tt.want)
			}
		})
	}
}

func TestMarshalRequest_UnsupportedType(t *testing.T) {
	_, err := marshalRequest("test", []any{struct{}{}})
	if err == nil {
		t.Fatal("expected error for unsupported argument type")
	}
	if !strings.Contains(err.Error(), "unsupported argument type") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseResponse_Scalar(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{
			"typed string",
			`<?xml version="1.0"?><methodResponse><params><param><value><string>Release 2024-02-06</string></value></param></params></methodResponse>`,
			"Release 2024-02-06",
		},
		{
			"implicit string",
			`<?xml version="1.0"?><methodResponse><params><param><value>plain</value></param></params></methodResponse>`,
			"plain",
		},
		{
			"int",
			`<?xml version="1.0"?><methodResponse><params><param><value><int>255</int></value></param></params></methodResponse>`,
			255,
		},
		{
			"i4",
			`<?xml version="1.0"?><methodResponse><params><param><value><i4>8</i4></value></param></params></methodResponse>`,
			8,
		},
		{
			"boolean",
			`<?xml version="1.0"?><methodResponse><params><param><value><boolean>1</boolean></value></param></params></methodResponse>`,
			true,
		},
		{
			"double",
			`<?xml version="1.0"?><methodResponse><params><param><value><double>2.5</double></value></param></params></methodResponse>`,
			2.5,
		},
		{
			"datetime",
			`<?xml version="1.0"?><methodResponse><params><param><value><dateTime.iso8601>20160101T10:20:30</dateTime.iso8601></value></param></params></methodResponse>`,
			DateTime("20160101T10:20:30"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse([]byte(tt.body))
			if err != nil {
				t.Fatalf("parseResponse failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseResponse = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestParseResponse_Base64(t *testing.T) {
	body := `<?xml version="1.0"?><methodResponse><params><param><value><base64>aGVsbG8=</base64></value></param></params></methodResponse>`
	got, err := parseResponse([]byte(body))
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	data, ok := got.(Binary)
	if !ok {
		t.Fatalf("expected Binary, got %T", got)
	}
	if string(data) != "hello" {
		t.Errorf("expected decoded payload 'hello', got %q", data)
	}
}

func TestParseResponse_Composite(t *testing.T) {
	body := `<?xml version="1.0"?>
<methodResponse><params><param><value><array><data>
<value><struct>
<member><name>id</name><value><string>wiki:start</string></value></member>
<member><name>rev</name><value><int>1706000000</int></value></member>
</struct></value>
</data></array></value></param></params></methodResponse>`

	got, err := parseResponse([]byte(body))
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	list, ok := got.([]any)
	if !ok {
		t.Fatalf("expected []any, got %T", got)
	}
	if len(list) != 1 {
		t.Fatalf("expected one element, got %d", len(list))
	}
	entry, ok := list[0].(map[string]any)
	if !ok {
		t.Fatalf("expected map element, got %T", list[0])
	}
	if entry["id"] != "wiki:start" {
		t.Errorf("expected id 'wiki:start', got %v", entry["id"])
	}
	if entry["rev"] != 1706000000 {
		t.Errorf("expected rev 1706000000, got %v", entry["rev"])
	}
}

func TestParseResponse_Fault(t *testing.T) {
	body := `<?xml version="1.0"?>
<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>111</int></value></member>
<member><name>faultString</name><value><string>refused to write page</string></value></member>
</struct></value></fault></methodResponse>`

	_, err := parseResponse([]byte(body))
	var fault *Fault
	if !errors.As(err, &fault) {
		t.Fatalf("expected *Fault, got %T: %v", err, err)
	}
	if fault.Code != 111 {
		t.Errorf("expected fault code 111, got %d", fault.Code)
	}
	if fault.Message != "refused to write page" {
		t.Errorf("expected fault message, got %q", fault.Message)
	}
}

func TestParseResponse_DeclarationNotAtStart(t *testing.T) {
	body := "\n" + `<?xml version="1.0"?><methodResponse><params><param><value><string>ok</string></value></param></params></methodResponse>`

	_, err := parseResponse([]byte(body))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if parseErr.Reason != ReasonDeclarationNotAtStart {
		t.Errorf("expected canonical reason, got %q", parseErr.Reason)
	}
}

func TestParseResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not xml", "this is not xml"},
		{"wrong root", `<?xml version="1.0"?><html></html>`},
		{"empty body", ""},
		{"empty response", `<?xml version="1.0"?><methodResponse></methodResponse>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseResponse([]byte(tt.body))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if parseErr.Reason == ReasonDeclarationNotAtStart {
				t.Error("generic malformation should not map to the benign reason")
			}
		})
	}
}

func TestCall_RoundTrip(t *testing.T) {
	var gotBody string
	var gotContentType string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(`<?xml version="1.0"?><methodResponse><params><param><value><string>pong</string></value></param></params></methodResponse>`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, WithTimeout(5*time.Second), WithUserAgent("test/1.0"))
	got, err := client.Call(context.Background(), "dokuwiki.getVersion", nil)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if got != "pong" {
		t.Errorf("expected 'pong', got %v", got)
	}
	if !strings.Contains(gotBody, "<methodName>dokuwiki.getVersion</methodName>") {
		t.Error("request body should carry the method name")
	}
	if gotContentType != "text/xml" {
		t.Errorf("expected Content-Type text/xml, got %q", gotContentType)
	}
}

func TestCall_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.Call(context.Background(), "dokuwiki.getVersion", nil)

	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected *ProtocolError, got %T: %v", err, err)
	}
	if protoErr.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", protoErr.Status)
	}
}

func TestCall_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(ts.URL)
	_, err := client.Call(ctx, "dokuwiki.getVersion", nil)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
