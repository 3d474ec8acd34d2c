package factory

import (
	"os"
	"os/exec"
)

// EditorOpener opens files in a terminal editor.
type EditorOpener struct {
	Editor string
}

// Open runs the editor on path with the terminal attached.
func (o EditorOpener) Open(path string) error {
	editor := o.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim" // fallback
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
