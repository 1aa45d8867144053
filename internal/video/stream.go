package video

import (
	"fmt"
	"strconv"
	"strings"
)

// byteRange is a parsed, bounds-checked HTTP byte range.
type byteRange struct {
	Start int64
	End   int64 // inclusive
}

// Length returns the number of bytes covered by the range.
func (r byteRange) Length() int64 { return r.End - r.Start + 1 }

// ContentRange renders the Content-Range header value for a file of size total.
func (r byteRange) ContentRange(total int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, total)
}

// parseRange parses a header of the form "bytes=<start>-<end>" against a file
// of the given size. The end offset is optional and defaults to the final
// byte. Multi-range requests are not supported.
func parseRange(header string, size int64) (byteRange, error) {
	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) {
		return byteRange{}, fmt.Errorf("unsupported range unit: %q", header)
	}

	spec := strings.TrimPrefix(header, prefix)
	if strings.Contains(spec, ",") {
		return byteRange{}, fmt.Errorf("multiple ranges not supported: %q", header)
	}

	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 || parts[0] == "" {
		return byteRange{}, fmt.Errorf("malformed range: %q", header)
	}

	start, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || start < 0 {
		return byteRange{}, fmt.Errorf("invalid range start: %q", header)
	}

	end := size - 1
	if strings.TrimSpace(parts[1]) != "" {
		end, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil || end < 0 {
			return byteRange{}, fmt.Errorf("invalid range end: %q", header)
		}
	}
	if end > size-1 {
		end = size - 1
	}
	if start > end || start >= size {
		return byteRange{}, fmt.Errorf("unsatisfiable range %d-%d for size %d", start, end, size)
	}

	return byteRange{Start: start, End: end}, nil
}
