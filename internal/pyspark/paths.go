package pyspark

// deprecatedSchemes are the URI schemes that count as direct filesystem
// access. Paths with any other scheme are left alone; paths with no scheme
// at all are only flagged on matchers carrying the DBFS default flag.
var deprecatedSchemes = []string{
	"s3", "s3a", "s3n",
	"wasb", "wasbs",
	"abfs", "abfss",
	"dbfs", "hdfs", "file",
}

// pathScheme returns the URI scheme of a path, lowercased to the extent the
// grammar allows, or "" when the path has none. A scheme is a leading
// letter followed by letters, digits, '+', '-' or '.' up to the first ':'.
func pathScheme(path string) string {
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == ':' {
			if i == 0 {
				return ""
			}
			return lowerASCII(path[:i])
		}
		if i == 0 {
			if !isAlpha(c) {
				return ""
			}
			continue
		}
		if !isAlpha(c) && !(c >= '0' && c <= '9') && c != '+' && c != '-' && c != '.' {
			return ""
		}
	}
	return ""
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
