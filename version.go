package main

// Set with -ldflags "-X main.gitSHA1=..." at build time.
var (
	gitSHA1   string = "unknown"
	gitDirty  string = "unknown"
	buildID   string = ""
	buildDate string = ""
)

func RespGitSHA1() string {
	return gitSHA1
}

func RespGitDirty() string {
	return gitDirty
}

func RespBuildIdRaw() string {
	return buildID + buildDate
}
