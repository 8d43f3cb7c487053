// Package hints appends a short remedy to common CLI errors. Every hint
// renders as "\n  hint: <text>" so it lines up under the error message.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-lexical2html/internal/fileutil"
)

const prefix = "\n  hint: "

// getenv and statFile are swapped out in tests.
var (
	getenv   = os.Getenv
	statFile = fileutil.FileExists
)

// ciVars are set by the CI providers we recognize.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether a known CI provider variable is set.
func InCI() bool {
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// DetectContainer reports whether the process runs in a container and names
// the signal that said so. LEXICAL2HTML_CONTAINER=1 forces detection.
func DetectContainer() (bool, string) {
	switch {
	case getenv("LEXICAL2HTML_CONTAINER") == "1":
		return true, "LEXICAL2HTML_CONTAINER=1"
	case statFile("/.dockerenv"):
		return true, "/.dockerenv"
	case getenv("container") != "":
		return true, "container=" + getenv("container")
	case getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// ForBrowserConnect suggests the Chrome settings PDF output depends on.
func ForBrowserConnect() string {
	var parts []string

	inContainer, _ := DetectContainer()
	if (InCI() || inContainer) && getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 in containers and CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "point ROD_BROWSER_BIN at a Chrome binary")
	}
	parts = append(parts, "run 'lexical2html doctor' to check PDF support")

	return join(parts...)
}

// ForTimeout suggests a longer PDF timeout.
func ForTimeout() string {
	return join("raise the PDF timeout with --timeout (e.g. 2m)")
}

// ForConfigNotFound lists where a config may be created.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "pass --config with a path to a .yaml file"
	for _, p := range searchedPaths {
		if strings.Contains(strings.ReplaceAll(p, `\`, "/"), "/go-lexical2html/") {
			hint += ", or create " + p
			break
		}
	}
	return join(hint)
}

// ForOutputDirectory is appended when an output directory cannot be created.
func ForOutputDirectory() string {
	return join("check that the parent directory exists and is writable")
}

// ForStyleNotFound lists the names the user could have meant.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("available: " + strings.Join(available, ", "))
}

func ForInvalidDocument() string {
	return join("input must be the JSON from editorState.toJSON(), with a top-level \"root\" object")
}

func ForAddressInUse(addr string) string {
	return join("another process is listening on " + addr + "; use --addr to pick a different one")
}

// join renders parts as one hint line. No parts, no hint.
func join(parts ...string) string {
	if len(parts) == 0 || (len(parts) == 1 && parts[0] == "") {
		return ""
	}
	return prefix + strings.Join(parts, "; ")
}
