package dokuwiki

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const pagelistResponse = `<?xml version="1.0"?><methodResponse><params><param><value><array><data>
<value><struct>
<member><name>id</name><value><string>wiki:start</string></value></member>
<member><name>rev</name><value><int>1706000000</int></value></member>
<member><name>size</name><value><int>42</int></value></member>
</struct></value>
</data></array></value></param></params></methodResponse>`

func TestPages_List(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("dokuwiki.getPagelist", pagelistResponse)
	client := newTestClient(t, fw, nil)

	pages, err := client.Pages.List(context.Background(), "wiki", nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected one page, got %d", len(pages))
	}
	page, ok := pages[0].(map[string]any)
	if !ok {
		t.Fatalf("expected page struct, got %T", pages[0])
	}
	if page["id"] != "wiki:start" {
		t.Errorf("expected id 'wiki:start', got %v", page["id"])
	}

	// The options struct is always passed, even when no option is set.
	body, _ := fw.lastRequest("dokuwiki.getPagelist")
	if !strings.Contains(body, "<struct>") {
		t.Error("getPagelist should always carry the options struct argument")
	}
}

func TestPages_ListOptions(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("dokuwiki.getPagelist", pagelistResponse)
	client := newTestClient(t, fw, nil)

	depth := 2
	_, err := client.Pages.List(context.Background(), "wiki", &ListOptions{Depth: &depth, Hash: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	body, _ := fw.lastRequest("dokuwiki.getPagelist")
	if !strings.Contains(body, "<name>depth</name>") || !strings.Contains(body, "<int>2</int>") {
		t.Error("depth option should reach the wire")
	}
	if !strings.Contains(body, "<name>hash</name>") {
		t.Error("hash option should reach the wire")
	}
	if strings.Contains(body, "<name>skipacl</name>") {
		t.Error("unset options should stay off the wire")
	}
}

func TestPages_GetAndSet(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("wiki.getPage", stringResponse("===== Start ====="))
	fw.respond("wiki.putPage", boolResponse(true))
	client := newTestClient(t, fw, nil)

	content, err := client.Pages.Get(context.Background(), "wiki:start")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if content != "===== Start =====" {
		t.Errorf("unexpected content %q", content)
	}

	err = client.Pages.Set(context.Background(), "wiki:start", "new content", &EditOptions{Summary: "rewrite", Minor: true})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	body, _ := fw.lastRequest("wiki.putPage")
	if !strings.Contains(body, "<name>sum</name>") || !strings.Contains(body, "rewrite") {
		t.Error("edit summary should reach the wire")
	}
	if !strings.Contains(body, "<name>minor</name>") {
		t.Error("minor flag should reach the wire")
	}
}

func TestPages_Delete(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("wiki.putPage", boolResponse(true))
	client := newTestClient(t, fw, nil)

	if err := client.Pages.Delete(context.Background(), "wiki:obsolete"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Deletion is a putPage with empty content.
	body, ok := fw.lastRequest("wiki.putPage")
	if !ok {
		t.Fatal("Delete should go through wiki.putPage")
	}
	if !strings.Contains(body, "<string>wiki:obsolete</string>") {
		t.Error("putPage should target the deleted page")
	}
	if !strings.Contains(body, "<string></string>") {
		t.Error("putPage should carry empty content")
	}
}

func TestPages_Append(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("dokuwiki.appendPage", boolResponse(true))
	client := newTestClient(t, fw, nil)

	err := client.Pages.Append(context.Background(), "wiki:log", "\n  * entry", nil)
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Even without options the trailing struct is present.
	body, _ := fw.lastRequest("dokuwiki.appendPage")
	if !strings.Contains(body, "<struct>") {
		t.Error("appendPage should always carry the options struct argument")
	}
}

func TestPages_LockUnlock(t *testing.T) {
	okResponse := `<?xml version="1.0"?><methodResponse><params><param><value><struct>
<member><name>locked</name><value><array><data><value><string>wiki:start</string></value></data></array></value></member>
<member><name>lockfail</name><value><array><data></data></array></value></member>
<member><name>unlocked</name><value><array><data></data></array></value></member>
<member><name>unlockfail</name><value><array><data></data></array></value></member>
</struct></value></param></params></methodResponse>`

	fw := newFakeWiki()
	fw.respond("dokuwiki.setLocks", okResponse)
	client := newTestClient(t, fw, nil)

	if err := client.Pages.Lock(context.Background(), "wiki:start"); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	body, _ := fw.lastRequest("dokuwiki.setLocks")
	if !strings.Contains(body, "<name>lock</name>") {
		t.Error("setLocks request should carry a lock list")
	}

	if err := client.Pages.Unlock(context.Background(), "wiki:start"); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
}

func TestPages_LockFailure(t *testing.T) {
	failResponse := `<?xml version="1.0"?><methodResponse><params><param><value><struct>
<member><name>locked</name><value><array><data></data></array></value></member>
<member><name>lockfail</name><value><array><data><value><string>wiki:start</string></value></data></array></value></member>
</struct></value></param></params></methodResponse>`

	fw := newFakeWiki()
	fw.respond("dokuwiki.setLocks", failResponse)
	client := newTestClient(t, fw, nil)

	err := client.Pages.Lock(context.Background(), "wiki:start")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error for a reported lock failure, got %T: %v", err, err)
	}
	if !strings.Contains(apiErr.Error(), "unable to lock") {
		t.Errorf("unexpected message %q", apiErr.Error())
	}
}

func TestPages_UnlockFailure(t *testing.T) {
	failResponse := `<?xml version="1.0"?><methodResponse><params><param><value><struct>
<member><name>unlockfail</name><value><array><data><value><string>wiki:start</string></value></data></array></value></member>
</struct></value></param></params></methodResponse>`

	fw := newFakeWiki()
	fw.respond("dokuwiki.setLocks", failResponse)
	client := newTestClient(t, fw, nil)

	err := client.Pages.Unlock(context.Background(), "wiki:start")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error for a reported unlock failure, got %T: %v", err, err)
	}
}

func TestPages_Search(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("dokuwiki.search", faultResponse(FaultEmptyArray, "no results"))
	client := newTestClient(t, fw, nil)

	hits, err := client.Pages.Search(context.Background(), "nonexistent term")
	if err != nil {
		t.Fatalf("an empty search should succeed, got %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestPages_Permission(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("wiki.aclCheck", intResponse(8))
	client := newTestClient(t, fw, nil)

	perm, err := client.Pages.Permission(context.Background(), "wiki:start")
	if err != nil {
		t.Fatalf("Permission failed: %v", err)
	}
	if perm != 8 {
		t.Errorf("expected permission 8, got %d", perm)
	}
}

func TestPages_Versions(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("wiki.getPageVersions", `<?xml version="1.0"?><methodResponse><params><param><value><array><data></data></array></value></param></params></methodResponse>`)
	client := newTestClient(t, fw, nil)

	versions, err := client.Pages.Versions(context.Background(), "wiki:start", 10)
	if err != nil {
		t.Fatalf("Versions failed: %v", err)
	}
	if len(versions) != 0 {
		t.Errorf("expected no versions, got %v", versions)
	}

	body, _ := fw.lastRequest("wiki.getPageVersions")
	if !strings.Contains(body, "<int>10</int>") {
		t.Error("offset should be passed positionally")
	}
}

func TestPages_Info(t *testing.T) {
	fw := newFakeWiki()
	fw.respond("wiki.getPageInfo", `<?xml version="1.0"?><methodResponse><params><param><value><struct>
<member><name>name</name><value><string>wiki:start</string></value></member>
<member><name>author</name><value><string>alice</string></value></member>
</struct></value></param></params></methodResponse>`)
	client := newTestClient(t, fw, nil)

	info, err := client.Pages.Info(context.Background(), "wiki:start")
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info["author"] != "alice" {
		t.Errorf("expected author 'alice', got %v", info["author"])
	}
}
