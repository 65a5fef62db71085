package version

import (
	"context"
	"strings"

	"github.com/google/go-github/github"
	"golang.org/x/mod/semver"
)

const versionLocal = "local"

var Version = versionLocal

func getLatestReleaseTag(ctx context.Context) (string, error) {
	latest, _, err := github.
		NewClient(nil).
		Repositories.
		GetLatestRelease(ctx, "harry-hov", "docwriter")
	if err != nil {
		return "", err
	}

	if latest.TagName == nil {
		return "", nil
	}

	return *latest.TagName, nil
}

func GetVersion(ctx context.Context) string {
	if Version != versionLocal {
		return Version
	}

	tag, err := getLatestReleaseTag(ctx)
	if err != nil {
		return Version
	}

	return localVersion(tag)
}

// localVersion marks the release a local build is based on,
// e.g. v0.2.1-rc1 becomes v0.2.1-local.
func localVersion(tag string) string {
	base := strings.Split(tag, "-")[0]
	if !semver.IsValid(base) {
		return Version
	}
	return semver.Canonical(base) + "-" + versionLocal
}
