package model

// ReleaseInfo is one release record. Per the standardized payload-driven
// constructor decision (spec Open Questions), IsImmutable is authoritative
// only when the payload carries a structured "immutable" field; REST
// payloads that lack it default to false rather than guessing.
type ReleaseInfo struct {
	ID           int64
	TagName      string
	SHA          string
	HTMLURL      string
	IsDraft      bool
	IsPrerelease bool
	IsImmutable  bool
	IsLatest     bool
	IsIgnored    bool
}

// ReleasePayload is the provider-neutral shape a transport materializes
// before handing it to NewReleaseInfoFromPayload. ImmutableKnown
// distinguishes "the structured query told us" from "we don't know" so the
// constructor never has to guess.
type ReleasePayload struct {
	ID             int64
	TagName        string
	SHA            string
	HTMLURL        string
	IsDraft        bool
	IsPrerelease   bool
	Immutable      bool
	ImmutableKnown bool
	IsLatest       bool
}

// NewReleaseInfoFromPayload is the sole ReleaseInfo constructor. The source
// system had a second constructor taking immutability as an explicit
// parameter; that form is not carried forward here (see DESIGN.md).
func NewReleaseInfoFromPayload(p ReleasePayload) ReleaseInfo {
	immutable := p.ImmutableKnown && p.Immutable
	if p.IsDraft {
		immutable = false // a draft is never immutable, regardless of payload
	}
	return ReleaseInfo{
		ID:           p.ID,
		TagName:      p.TagName,
		SHA:          p.SHA,
		HTMLURL:      p.HTMLURL,
		IsDraft:      p.IsDraft,
		IsPrerelease: p.IsPrerelease,
		IsImmutable:  immutable,
		IsLatest:     p.IsLatest,
	}
}
