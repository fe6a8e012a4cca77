package powershell

import (
	"os/exec"
)

// candidates are tried in order; pwsh is PowerShell 7+, powershell.exe is Windows PowerShell.
var candidates = []string{`pwsh`, `powershell.exe`, `powershell`}

// Lookup returns the path of the first PowerShell executable found in PATH.
func Lookup() (string, bool) {
	for _, c := range candidates {
		if ps, err := exec.LookPath(c); err == nil {
			return ps, true
		}
	}
	return "", false
}

// Interpreter returns the command prefix used to run a .ps1 file non-interactively.
// When no PowerShell is installed the bare name pwsh is used so the failure
// surfaces at run time rather than at startup.
func Interpreter() []string {
	ps, ok := Lookup()
	if !ok {
		ps = candidates[0]
	}
	return []string{ps, `-NoProfile`, `-NonInteractive`, `-File`}
}
