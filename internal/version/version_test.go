package version

import "testing"

func TestUserAgent(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3"
	if got := UserAgent(); got != "commander-analyzer/v1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
}
