package remediation

// Constructors are the only way external packages (the rule set) build
// action instances, since refTarget/releaseTarget are unexported — the
// variant set stays closed.

func NewDeleteTag(t Transport, owner, repo, ref string) *DeleteTag {
	return &DeleteTag{Transport: t, Target: refTarget{Owner: owner, Repo: repo, Ref: ref}}
}

func NewDeleteBranch(t Transport, owner, repo, ref string) *DeleteBranch {
	return &DeleteBranch{Transport: t, Target: refTarget{Owner: owner, Repo: repo, Ref: ref}}
}

func NewCreateTag(t Transport, owner, repo, ref, sha string) *CreateTag {
	return &CreateTag{Transport: t, Target: refTarget{Owner: owner, Repo: repo, Ref: ref, SHA: sha}}
}

func NewUpdateTag(t Transport, owner, repo, ref, sha string) *UpdateTag {
	return &UpdateTag{Transport: t, Target: refTarget{Owner: owner, Repo: repo, Ref: ref, SHA: sha}}
}

func NewCreateBranch(t Transport, owner, repo, ref, sha string) *CreateBranch {
	return &CreateBranch{Transport: t, Target: refTarget{Owner: owner, Repo: repo, Ref: ref, SHA: sha}}
}

func NewUpdateBranch(t Transport, owner, repo, ref, sha string) *UpdateBranch {
	return &UpdateBranch{Transport: t, Target: refTarget{Owner: owner, Repo: repo, Ref: ref, SHA: sha}}
}

func NewCreateRelease(t Transport, owner, repo, tagName, sha string, draft, latest bool) *CreateRelease {
	return &CreateRelease{
		Transport: t,
		Target:    releaseTarget{Owner: owner, Repo: repo, TagName: tagName, SHA: sha},
		Draft:     draft,
		Latest:    latest,
	}
}

func NewPublishRelease(t Transport, owner, repo, tagName string, releaseID int64, latest bool) *PublishRelease {
	return &PublishRelease{
		Transport: t,
		Target:    releaseTarget{Owner: owner, Repo: repo, TagName: tagName},
		ReleaseID: releaseID,
		Latest:    latest,
	}
}

func NewRepublishRelease(t Transport, owner, repo, tagName string, releaseID int64) *RepublishRelease {
	return &RepublishRelease{
		Transport: t,
		Target:    releaseTarget{Owner: owner, Repo: repo, TagName: tagName},
		ReleaseID: releaseID,
	}
}

func NewSetReleaseLatest(t Transport, owner, repo, tagName string, releaseID int64) *SetReleaseLatest {
	return &SetReleaseLatest{
		Transport: t,
		Target:    releaseTarget{Owner: owner, Repo: repo, TagName: tagName},
		ReleaseID: releaseID,
	}
}

func NewDeleteRelease(t Transport, owner, repo, tagName string, releaseID int64) *DeleteRelease {
	return &DeleteRelease{
		Transport: t,
		Target:    releaseTarget{Owner: owner, Repo: repo, TagName: tagName},
		ReleaseID: releaseID,
	}
}
