package dokuwiki

import (
	"context"
	"strings"
	"testing"
)

func TestStructs_GetData(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("plugin.struct.getData", `<?xml version="1.0"?><methodResponse><params><param><value><struct>
<member><name>contacts</name><value><struct>
<member><name>email</name><value><string>alice@example.com</string></value></member>
</struct></value></member>
</struct></value></param></params></methodResponse>`)
	client := newTestClient(t, fw, nil)

	result, err := client.Structs.GetData(context.Background(), "wiki:alice", "contacts", 0)
	if err != nil {
		t.Fatalf("GetData failed: %v", err)
	}
	data, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected struct result, got %T", result)
	}
	if _, ok := data["contacts"]; !ok {
		t.Error("result should carry the requested schema")
	}

	body, _ := fw.lastRequest("plugin.struct.getData")
	for _, want := range []string{"<string>wiki:alice</string>", "<string>contacts</string>", "<int>0</int>"} {
		if !strings.Contains(body, want) {
			t.Errorf("request should contain %q", want)
		}
	}
}

func TestStructs_SaveData(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("plugin.struct.saveData", boolResponse(true))
	client := newTestClient(t, fw, nil)

	_, err := client.Structs.SaveData(context.Background(), "wiki:alice",
		map[string]any{"contacts": map[string]any{"email": "alice@example.com"}},
		"update contact", false)
	if err != nil {
		t.Fatalf("SaveData failed: %v", err)
	}

	body, _ := fw.lastRequest("plugin.struct.saveData")
	if !strings.Contains(body, "<name>contacts</name>") {
		t.Error("nested data struct should reach the wire")
	}
	if !strings.Contains(body, "update contact") {
		t.Error("summary should be passed positionally")
	}
}

func TestStructs_GetSchema(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("plugin.struct.getSchema", `<?xml version="1.0"?><methodResponse><params><param><value><struct></struct></value></param></params></methodResponse>`)
	client := newTestClient(t, fw, nil)

	if _, err := client.Structs.GetSchema(context.Background(), ""); err != nil {
		t.Fatalf("GetSchema failed: %v", err)
	}
}

func TestStructs_GetAggregationData(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("plugin.struct.getAggregationData", `<?xml version="1.0"?><methodResponse><params><param><value><array><data></data></array></value></param></params></methodResponse>`)
	client := newTestClient(t, fw, nil)

	// A nil filter is sent as an empty array, not omitted.
	_, err := client.Structs.GetAggregationData(context.Background(),
		[]string{"contacts"}, []string{"%pageid%", "email"}, nil, "")
	if err != nil {
		t.Fatalf("GetAggregationData failed: %v", err)
	}

	body, _ := fw.lastRequest("plugin.struct.getAggregationData")
	if !strings.Contains(body, "<array><data></data></array>") {
		t.Error("nil filter should be encoded as an empty array")
	}
	if !strings.Contains(body, "%pageid%") {
		t.Error("columns should reach the wire")
	}
}
