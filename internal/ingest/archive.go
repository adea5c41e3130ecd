package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// macOSMetadataDir holds Finder resource forks, which also end in .csv.
const macOSMetadataDir = "__MACOSX/"

// DefaultMaxMemberSize caps how far an archive member may decompress.
const DefaultMaxMemberSize = 1 << 30

// resolveArchive returns the name and content of the first member, in
// archive listing order, whose name ends in ".csv". Every other member is
// ignored. A member that decompresses past limit bytes is rejected.
func resolveArchive(data []byte, limit int64) (string, []byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("open zip: %w", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, macOSMetadataDir) {
			continue
		}
		if !strings.HasSuffix(f.Name, ".csv") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return f.Name, nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(io.LimitReader(rc, limit+1))
		rc.Close()
		if err != nil {
			return f.Name, nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		if int64(len(content)) > limit {
			return f.Name, nil, fmt.Errorf("%w: %s expands past %d bytes", ErrMemberTooLarge, f.Name, limit)
		}
		return f.Name, content, nil
	}

	return "", nil, ErrNoTabularMember
}
