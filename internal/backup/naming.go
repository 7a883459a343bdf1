package backup

import (
	"regexp"
	"strings"
	"time"
)

const (
	backupPrefix = "backup-"
	exportPrefix = "export-"
	jsonExt      = ".json"
	zstExt       = ".json.zst"

	isoLayout = "2006-01-02T15:04:05.000Z"
)

var (
	fileSafe     = strings.NewReplacer(":", "-", ".", "-")
	backupNameRe = regexp.MustCompile(`^backup-\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}-\d{3}Z\.json(\.zst)?$`)
)

// stamp renders t as an ISO-8601 UTC timestamp with millisecond precision,
// with ':' and '.' replaced so it is safe in a file name.
func stamp(t time.Time) string {
	return fileSafe.Replace(t.UTC().Format(isoLayout))
}

func backupName(t time.Time, compressed bool) string {
	ext := jsonExt
	if compressed {
		ext = zstExt
	}
	return backupPrefix + stamp(t) + ext
}

func exportName(t time.Time) string {
	return exportPrefix + stamp(t) + jsonExt
}

// ValidName reports whether name is a plain backup file name. Anything with
// a path component is rejected.
func ValidName(name string) bool {
	return backupNameRe.MatchString(name)
}

func isCompressed(name string) bool {
	return strings.HasSuffix(name, zstExt)
}
