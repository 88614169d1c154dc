package dokuwiki

// Per-call option structs. DokuWiki commands take their optional
// parameters as one trailing struct; these types enumerate the keys each
// command recognizes instead of passing an open-ended map around.

// ListOptions control Pages.List.
type ListOptions struct {
	// Depth is the recursion level; 0 lists everything.
	Depth *int

	// Hash requests an md5 sum of each page's content.
	Hash bool

	// SkipACL lists everything regardless of ACL.
	SkipACL bool
}

func (o *ListOptions) values() map[string]any {
	m := map[string]any{}
	if o == nil {
		return m
	}
	if o.Depth != nil {
		m["depth"] = *o.Depth
	}
	if o.Hash {
		m["hash"] = true
	}
	if o.SkipACL {
		m["skipacl"] = true
	}
	return m
}

// EditOptions control Pages.Set and Pages.Append.
type EditOptions struct {
	// Summary of the change.
	Summary string

	// Minor marks the change as minor.
	Minor bool
}

func (o *EditOptions) values() map[string]any {
	m := map[string]any{}
	if o == nil {
		return m
	}
	if o.Summary != "" {
		m["sum"] = o.Summary
	}
	if o.Minor {
		m["minor"] = true
	}
	return m
}

// MediaListOptions control Medias.List.
type MediaListOptions struct {
	// Depth is the recursion level; 0 lists everything.
	Depth *int

	// SkipACL skips ACL checking.
	SkipACL bool

	// Pattern filters media names.
	Pattern string

	// Hash adds hashes to the result list.
	Hash bool
}

func (o *MediaListOptions) values() map[string]any {
	m := map[string]any{}
	if o == nil {
		return m
	}
	if o.Depth != nil {
		m["depth"] = *o.Depth
	}
	if o.SkipACL {
		m["skipacl"] = true
	}
	if o.Pattern != "" {
		m["pattern"] = o.Pattern
	}
	if o.Hash {
		m["hash"] = true
	}
	return m
}

// SaveOptions control Medias.Save.
type SaveOptions struct {
	// Filename overrides the local file name; by default the last
	// component of the media id is used.
	Filename string

	// Overwrite allows replacing an existing local file.
	Overwrite bool
}
