package model

import "testing"

func TestNewReleaseInfoFromPayload(t *testing.T) {
	t.Parallel()

	t.Run("immutable_known_true", func(t *testing.T) {
		t.Parallel()
		r := NewReleaseInfoFromPayload(ReleasePayload{
			TagName: "v1.0.0", Immutable: true, ImmutableKnown: true,
		})
		if !r.IsImmutable {
			t.Fatal("expected IsImmutable=true")
		}
	})

	t.Run("immutable_unknown_defaults_false", func(t *testing.T) {
		t.Parallel()
		r := NewReleaseInfoFromPayload(ReleasePayload{TagName: "v1.0.0"})
		if r.IsImmutable {
			t.Fatal("expected IsImmutable=false when ImmutableKnown is false")
		}
	})

	t.Run("draft_forces_not_immutable", func(t *testing.T) {
		t.Parallel()
		r := NewReleaseInfoFromPayload(ReleasePayload{
			TagName: "v1.0.0", IsDraft: true, Immutable: true, ImmutableKnown: true,
		})
		if r.IsImmutable {
			t.Fatal("expected a draft release to never be immutable")
		}
	})
}
