package input

import "os/exec"

type execLauncher struct{}

// Spawn starts the command detached: the child is released immediately and
// never reaped by the script run.
func (execLauncher) Spawn(command string, args []string, dir string) error {
	cmd := exec.Command(command, args...)
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
