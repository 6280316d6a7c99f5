// SPDX-License-Identifier: AGPL-3.0-only
package jobs

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileState is the declared filesystem condition a File job asserts.
type FileState string

const (
	StateAbsent    FileState = "absent"
	StateDirectory FileState = "directory"
	StateFile      FileState = "file"
	StateHard      FileState = "hard"
	StateLink      FileState = "link"
	StateTouch     FileState = "touch"
)

// File is the spec for asserting a filesystem condition.
type File struct {
	Path  string
	State FileState
	Src   string
	Force bool
}

// Execute asserts the declared state, returning the observed transition.
func (f *File) Execute() (Status, error) {
	switch f.State {
	case StateAbsent:
		return executeAbsent(f.Path)
	case StateDirectory:
		return executeDirectory(f.Path, f.Force)
	case StateLink:
		if f.Src == "" {
			return Status{}, errStateRequiresSrc(f.State)
		}
		return executeLink(f.Src, f.Path, f.Force)
	case StateTouch:
		return executeTouch(f.Path)
	default:
		return Status{}, errStateNotImplemented(f.State)
	}
}

// Summary renders a shell-style one-line description of this job, used
// as its name when none is declared.
func (f *File) Summary() string {
	switch f.State {
	case StateAbsent:
		if f.Force {
			return fmt.Sprintf("rm -rf %s", f.Path)
		}
		return fmt.Sprintf("rm -r %s", f.Path)
	case StateDirectory:
		return fmt.Sprintf("mkdir -p %s", f.Path)
	case StateLink:
		if f.Force {
			return fmt.Sprintf("ln -sf %s %s", f.Src, f.Path)
		}
		return fmt.Sprintf("ln -s %s %s", f.Src, f.Path)
	case StateTouch:
		return fmt.Sprintf("touch %s", f.Path)
	default:
		return fmt.Sprintf("file(path=%s, state=%s)", f.Path, f.State)
	}
}

func executeAbsent(path string) (Status, error) {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return NewNoChange(path), nil
	}
	if err != nil {
		return Status{}, &fileError{op: "unable to read", path: path, err: err}
	}

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return Status{}, &fileError{op: "unable to remove", path: path, err: err}
	}
	return NewChanged(path, "absent"), nil
}

func executeDirectory(path string, force bool) (Status, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return NewNoChange("directory: " + path), nil
	case err == nil:
		if !force {
			return Status{}, errPathExists(path)
		}
		if _, aerr := executeAbsent(path); aerr != nil {
			return Status{}, aerr
		}
		return createDirectory(path, "not directory")
	case os.IsNotExist(err):
		return createDirectory(path, "absent")
	default:
		return Status{}, &fileError{op: "unable to read", path: path, err: err}
	}
}

func createDirectory(path, previously string) (Status, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Status{}, &fileError{op: "unable to create", path: path, err: err}
	}
	return NewChanged(previously, "directory: "+path), nil
}

func executeLink(src, dest string, force bool) (Status, error) {
	if _, err := os.Lstat(src); err != nil && !force {
		return Status{}, errSrcNotFound(src)
	}

	previously := "absent"

	if target, err := os.Readlink(dest); err == nil {
		previously = fmt.Sprintf("%s -> %s", target, dest)
		if target == src {
			return NewNoChange(previously), nil
		}
		if !force {
			return Status{}, errPathExists(dest)
		}
	}
	// dest does not exist, or is the wrong symlink, or is not a symlink at all.

	if info, err := os.Lstat(dest); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			previously = "existing: " + dest
		}
		if !force {
			return Status{}, errPathExists(dest)
		}
		if _, aerr := executeAbsent(dest); aerr != nil {
			return Status{}, aerr
		}
	} else if parent := filepath.Dir(dest); parent != "" {
		if _, derr := executeDirectory(parent, force); derr != nil {
			return Status{}, derr
		}
	}

	if err := symbolicLink(src, dest); err != nil {
		return Status{}, &fileError{op: "unable to link", path: dest, src: src, err: err}
	}

	return NewChanged(previously, fmt.Sprintf("%s -> %s", src, dest)), nil
}

func executeTouch(path string) (Status, error) {
	if _, err := os.Lstat(path); err == nil {
		// TODO: consider bumping access/modify time like real `touch`
		return NewNoChange(path), nil
	}
	if parent := filepath.Dir(path); parent != "" {
		if _, err := executeDirectory(parent, false); err != nil {
			return Status{}, err
		}
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return Status{}, &fileError{op: "unable to write", path: path, err: err}
	}
	return NewChanged("absent", path), nil
}
