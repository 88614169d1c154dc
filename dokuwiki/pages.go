package dokuwiki

import "context"

// Pages groups the page management methods of a wiki. Access it through
// the Pages field of a connected Client:
//
//	wiki, err := dokuwiki.New(ctx, config, logger)
//	...
//	pages, err := wiki.Pages.List(ctx, "/", nil)
type Pages struct {
	client *Client
}

// List lists all pages of the given namespace.
func (p *Pages) List(ctx context.Context, namespace string, opts *ListOptions) ([]any, error) {
	v, err := p.client.Invoke(ctx, "dokuwiki.getPagelist", []any{namespace, opts.values()}, nil)
	if err != nil {
		return nil, err
	}
	return toList(v)
}

// Changes returns the pages changed since the given Unix timestamp.
func (p *Pages) Changes(ctx context.Context, timestamp int) ([]any, error) {
	v, err := p.client.Invoke(ctx, "wiki.getRecentChanges", []any{timestamp}, nil)
	if err != nil {
		return nil, err
	}
	return toList(v)
}

// Search performs a fulltext search and returns the first 15 results.
func (p *Pages) Search(ctx context.Context, query string) ([]any, error) {
	v, err := p.client.Invoke(ctx, "dokuwiki.search", []any{query}, nil)
	if err != nil {
		return nil, err
	}
	return toList(v)
}

// Versions returns the available versions of a page. offset selects
// earlier entries in the history.
func (p *Pages) Versions(ctx context.Context, page string, offset int) ([]any, error) {
	v, err := p.client.Invoke(ctx, "wiki.getPageVersions", []any{page, offset}, nil)
	if err != nil {
		return nil, err
	}
	return toList(v)
}

// Info returns information about the last version of a page.
func (p *Pages) Info(ctx context.Context, page string) (map[string]any, error) {
	v, err := p.client.Invoke(ctx, "wiki.getPageInfo", []any{page}, nil)
	if err != nil {
		return nil, err
	}
	return toMap(v)
}

// InfoVersion returns information about a specific version of a page.
func (p *Pages) InfoVersion(ctx context.Context, page string, version int) (map[string]any, error) {
	v, err := p.client.Invoke(ctx, "wiki.getPageInfoVersion", []any{page, version}, nil)
	if err != nil {
		return nil, err
	}
	return toMap(v)
}

// Get returns the content of the last version of a page.
func (p *Pages) Get(ctx context.Context, page string) (string, error) {
	v, err := p.client.Invoke(ctx, "wiki.getPage", []any{page}, nil)
	if err != nil {
		return "", err
	}
	return toString(v)
}

// GetVersion returns the content of a specific version of a page.
func (p *Pages) GetVersion(ctx context.Context, page string, version int) (string, error) {
	v, err := p.client.Invoke(ctx, "wiki.getPageVersion", []any{page, version}, nil)
	if err != nil {
		return "", err
	}
	return toString(v)
}

// HTML returns the rendered HTML of the last version of a page.
func (p *Pages) HTML(ctx context.Context, page string) (string, error) {
	v, err := p.client.Invoke(ctx, "wiki.getPageHTML", []any{page}, nil)
	if err != nil {
		return "", err
	}
	return toString(v)
}

// HTMLVersion returns the rendered HTML of a specific version of a page.
func (p *Pages) HTMLVersion(ctx context.Context, page string, version int) (string, error) {
	v, err := p.client.Invoke(ctx, "wiki.getPageHTMLVersion", []any{page, version}, nil)
	if err != nil {
		return "", err
	}
	return toString(v)
}

// Append appends content to a page.
func (p *Pages) Append(ctx context.Context, page, content string, opts *EditOptions) error {
	_, err := p.client.Invoke(ctx, "dokuwiki.appendPage", []any{page, content, opts.values()}, nil)
	return err
}

// Set replaces the content of a page. The server's broken write
// acknowledgement (blank line before the XML declaration) is handled in
// Invoke, so a successful write never surfaces a framing error.
func (p *Pages) Set(ctx context.Context, page, content string, opts *EditOptions) error {
	_, err := p.client.Invoke(ctx, "wiki.putPage", []any{page, content, opts.values()}, nil)
	return err
}

// Delete deletes a page by setting an empty content.
func (p *Pages) Delete(ctx context.Context, page string) error {
	return p.Set(ctx, page, "", nil)
}

// Lock locks a page. The underlying call succeeds even when the lock was
// not taken; the per-page failure list in the result decides the outcome.
func (p *Pages) Lock(ctx context.Context, page string) error {
	v, err := p.client.Invoke(ctx, "dokuwiki.setLocks", nil, map[string]any{
		"lock":   []any{page},
		"unlock": []any{},
	})
	if err != nil {
		return err
	}
	result, err := toMap(v)
	if err != nil {
		return err
	}
	if len(getList(result, "lockfail")) > 0 {
		return &Error{Message: "unable to lock page"}
	}
	return nil
}

// Unlock unlocks a page.
func (p *Pages) Unlock(ctx context.Context, page string) error {
	v, err := p.client.Invoke(ctx, "dokuwiki.setLocks", nil, map[string]any{
		"lock":   []any{},
		"unlock": []any{page},
	})
	if err != nil {
		return err
	}
	result, err := toMap(v)
	if err != nil {
		return err
	}
	if len(getList(result, "unlockfail")) > 0 {
		return &Error{Message: "unable to unlock page"}
	}
	return nil
}

// Permission returns the permission level of a page.
func (p *Pages) Permission(ctx context.Context, page string) (int, error) {
	v, err := p.client.Invoke(ctx, "wiki.aclCheck", []any{page}, nil)
	if err != nil {
		return 0, err
	}
	return toInt(v)
}

// Links returns all links contained in a page.
func (p *Pages) Links(ctx context.Context, page string) ([]any, error) {
	v, err := p.client.Invoke(ctx, "wiki.listLinks", []any{page}, nil)
	if err != nil {
		return nil, err
	}
	return toList(v)
}

// Backlinks returns all pages referencing a page.
func (p *Pages) Backlinks(ctx context.Context, page string) ([]any, error) {
	v, err := p.client.Invoke(ctx, "wiki.getBackLinks", []any{page}, nil)
	if err != nil {
		return nil, err
	}
	return toList(v)
}
