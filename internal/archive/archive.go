// Package archive extracts a filtered subset of an in-memory zip archive.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/planarally/pa-installer/internal/messages"
)

// ExtractionError reports a malformed archive or a filter entry the archive lacks.
// Entry is empty when the archive itself could not be read.
type ExtractionError struct {
	Entry string
	Err   error
}

func (e *ExtractionError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf(messages.InstallExtractionArchiveFmt, e.Err)
	}
	return fmt.Sprintf(messages.InstallExtractionErrorFmt, e.Entry, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ErrEntryMissing is wrapped by ExtractionError when a filter entry matches no member.
var ErrEntryMissing = errors.New(messages.ArchiveEntryMissing)

func open(data []byte) (*zip.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Err: fmt.Errorf(messages.ArchiveOpenFmt, err)}
	}
	return r, nil
}

// Names lists the member names of the archive in data.
func Names(data []byte) ([]string, error) {
	r, err := open(data)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// TopLevelPrefix returns the single top-level directory shared by every member,
// e.g. "PlanarAlly-master" for a GitHub branch snapshot.
func TopLevelPrefix(data []byte) (string, error) {
	names, err := Names(data)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", &ExtractionError{Err: errors.New(messages.ArchiveEmpty)}
	}
	prefix := ""
	for _, name := range names {
		first, _, found := strings.Cut(cleanName(name), "/")
		if !found || first == "" {
			return "", &ExtractionError{Err: errors.New(messages.ArchiveNoCommonPrefix)}
		}
		if prefix == "" {
			prefix = first
		} else if first != prefix {
			return "", &ExtractionError{Err: errors.New(messages.ArchiveNoCommonPrefix)}
		}
	}
	return prefix, nil
}

// Extract writes the members selected by filter into dest, preserving their
// archive paths. A filter entry selects the member with exactly that name and
// every member below it. A nil filter extracts everything.
//
// Every filter entry is checked against the archive listing before any file is
// written, so a missing entry fails the whole call with nothing on disk.
func Extract(data []byte, dest string, filter []string) error {
	r, err := open(data)
	if err != nil {
		return err
	}

	selected, err := selectMembers(r.File, filter)
	if err != nil {
		return err
	}
	for _, f := range selected {
		if _, err := memberPath(dest, f.Name); err != nil {
			return &ExtractionError{Entry: f.Name, Err: err}
		}
	}
	for _, f := range selected {
		if err := extractMember(f, dest); err != nil {
			return &ExtractionError{Entry: f.Name, Err: err}
		}
	}
	return nil
}

// selectMembers resolves filter against files, keeping archive order.
func selectMembers(files []*zip.File, filter []string) ([]*zip.File, error) {
	if filter == nil {
		return files, nil
	}
	matched := make([]bool, len(filter))
	var selected []*zip.File
	for _, f := range files {
		keep := false
		for i, entry := range filter {
			if matches(f.Name, entry) {
				matched[i] = true
				keep = true
			}
		}
		if keep {
			selected = append(selected, f)
		}
	}
	for i, entry := range filter {
		if strings.Trim(entry, "/") == "" {
			return nil, &ExtractionError{Entry: entry, Err: errors.New(messages.ArchiveEmptyFilterEntry)}
		}
		if !matched[i] {
			return nil, &ExtractionError{Entry: entry, Err: ErrEntryMissing}
		}
	}
	return selected, nil
}

func matches(name string, entry string) bool {
	entry = strings.TrimSuffix(entry, "/")
	if entry == "" {
		return false
	}
	name = strings.TrimSuffix(cleanName(name), "/")
	return name == entry || strings.HasPrefix(name, entry+"/")
}

// cleanName drops leading "./" segments some archivers write.
func cleanName(name string) string {
	for strings.HasPrefix(name, "./") {
		name = name[2:]
	}
	return name
}

// memberPath joins name onto dest and rejects names that escape dest.
func memberPath(dest string, name string) (string, error) {
	slashed := strings.ReplaceAll(name, `\`, "/")
	if slashed == "" || path.IsAbs(slashed) || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf(messages.ArchiveUnsafeMemberFmt, name)
	}
	for _, segment := range strings.Split(slashed, "/") {
		if segment == ".." {
			return "", fmt.Errorf(messages.ArchiveUnsafeMemberFmt, name)
		}
	}
	return filepath.Join(dest, filepath.FromSlash(slashed)), nil
}

func extractMember(f *zip.File, dest string) error {
	target, err := memberPath(dest, f.Name)
	if err != nil {
		return err
	}
	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf(messages.ArchiveCreateDirFmt, target, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf(messages.ArchiveCreateDirFmt, filepath.Dir(target), err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf(messages.ArchiveOpenMemberFmt, f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf(messages.ArchiveWriteMemberFmt, target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return fmt.Errorf(messages.ArchiveWriteMemberFmt, target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf(messages.ArchiveWriteMemberFmt, target, err)
	}
	return nil
}
