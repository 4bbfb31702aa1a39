package safety

import "path"

// protectedBasenames may not be written at any depth.
var protectedBasenames = map[string]struct{}{
	"go.mod": {},
	"go.sum": {},
}

// ValidateWritePath resolves relPath against absRoot for writing. On top of the
// read checks it denies writes under .git/ and .agent/ and to go.mod/go.sum.
func ValidateWritePath(absRoot, relPath string) (string, error) {
	abs, rel, err := resolve(absRoot, relPath)
	if err != nil {
		return "", err
	}
	if underDir(rel, ".git") || underDir(rel, ".agent") {
		return "", ToolError{Code: CodeDeniedWrite, Message: "writes under .git/ or .agent/ are not allowed"}
	}
	if _, ok := protectedBasenames[path.Base(rel)]; ok {
		return "", ToolError{Code: CodeDeniedWrite, Message: "writes to " + path.Base(rel) + " are not allowed"}
	}
	return abs, nil
}
