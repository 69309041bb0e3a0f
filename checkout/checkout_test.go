package checkout

import (
	"testing"

	"github.com/kbukum/depbatch/errors"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name    string
		vcs     string
		pattern string
		params  Params
		want    string
	}{
		{
			name:    "git default branch",
			vcs:     "git",
			pattern: "https://github.com/acme/${PROJECT}.git",
			params:  Params{Project: "core", Branch: "master", Directory: "core"},
			want:    "git clone 'https://github.com/acme/core.git' 'core'",
		},
		{
			name:    "git other branch",
			vcs:     "git",
			pattern: "git@host:${PROJECT}",
			params:  Params{Project: "app", Branch: "develop", Directory: "apps/app"},
			want:    "git clone 'git@host:app' 'apps/app'; git checkout 'develop'",
		},
		{
			name:    "svn trunk",
			vcs:     "svn",
			pattern: "svn://svn/${PROJECT}",
			params:  Params{Project: "util", Branch: "trunk", Directory: "util"},
			want:    "svn checkout 'svn://svn/util/trunk' 'util'",
		},
		{
			name:    "svn empty branch",
			vcs:     "svn",
			pattern: "svn://svn/${PROJECT}/custom",
			params:  Params{Project: "util", Branch: "", Directory: "u"},
			want:    "svn checkout 'svn://svn/util/custom' 'u'",
		},
		{
			name:    "svn branch",
			vcs:     "svn",
			pattern: "svn://svn/${PROJECT}",
			params:  Params{Project: "util", Branch: "1.x", Directory: "util"},
			want:    "svn checkout 'svn://svn/util/branches/1.x' 'util'",
		},
		{
			name:    "repeated placeholder",
			vcs:     "git",
			pattern: "https://${PROJECT}.example.org/${PROJECT}.git",
			params:  Params{Project: "x", Branch: "master", Directory: "x"},
			want:    "git clone 'https://x.example.org/x.git' 'x'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Command(tt.vcs, tt.pattern, tt.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestCommand_UnknownType(t *testing.T) {
	_, err := Command("cvs", "x", Params{})
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	Register("hg", func(url string, p Params) string {
		return "hg clone " + url + " " + p.Directory
	})
	t.Cleanup(func() {
		mu.Lock()
		delete(builders, "hg")
		mu.Unlock()
	})

	got, err := Command("hg", "https://hg/${PROJECT}", Params{Project: "p", Directory: "d"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hg clone https://hg/p d" {
		t.Fatalf("unexpected command %q", got)
	}
	types := Types()
	if len(types) != 3 || types[1] != "hg" {
		t.Fatalf("unexpected types %v", types)
	}
}
