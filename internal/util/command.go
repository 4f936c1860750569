package util

import "os/exec"

// CommandPath resolves name against PATH. The second result is false when the
// command cannot be run.
func CommandPath(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}
