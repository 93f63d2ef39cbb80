package githubbridge

import "testing"

func TestParseAuthMode(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		raw     string
		want    AuthMode
		wantErr bool
	}{
		{name: "app", raw: "app", want: AuthModeApp},
		{name: "oauth_mixed_case", raw: "OAuth", want: AuthModeOAuth},
		{name: "padded", raw: "  app  ", want: AuthModeApp},
		{name: "empty", raw: "", wantErr: true},
		{name: "unknown", raw: "token", wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseAuthMode(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseAuthMode(%q)=%q want=%q", tc.raw, got, tc.want)
			}
		})
	}
}
