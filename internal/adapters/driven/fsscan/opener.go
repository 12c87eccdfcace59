package fsscan

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Opener returns a filesystem rooted at dir.
type Opener func(dir string) (billy.Filesystem, error)

// OSOpener roots an OS filesystem at dir.
func OSOpener(dir string) (billy.Filesystem, error) {
	return osfs.New(dir), nil
}

// ChrootOpener roots sub-directories of fs, typically a memfs in tests.
func ChrootOpener(fs billy.Filesystem) Opener {
	return func(dir string) (billy.Filesystem, error) {
		return fs.Chroot(dir)
	}
}
