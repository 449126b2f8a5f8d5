package command

import (
	"strings"

	"github.com/bnema/snapdb/internal/domain"
)

// secretFlags take a value that must never be logged.
var secretFlags = map[string]bool{
	"--password": true,
	"--pass":     true,
}

// redactArgs returns a copy of args safe for logging: secret flag values are masked
// and connection URIs lose their userinfo.
func redactArgs(args []string) []string {
	redacted := make([]string, len(args))
	maskNext := false
	for i, arg := range args {
		switch {
		case maskNext:
			redacted[i] = "***"
			maskNext = false
		case secretFlags[arg]:
			redacted[i] = arg
			maskNext = true
		default:
			redacted[i] = redactArg(arg)
		}
	}
	return redacted
}

func redactArg(arg string) string {
	if strings.HasPrefix(arg, "-") {
		if flag, value, ok := strings.Cut(arg, "="); ok {
			if secretFlags[flag] {
				return flag + "=***"
			}
			if strings.Contains(value, "://") {
				return flag + "=" + domain.RedactURI(value)
			}
			return arg
		}
	}
	if strings.Contains(arg, "://") {
		return domain.RedactURI(arg)
	}
	// libpq key/value connection strings
	if strings.Contains(strings.ToLower(arg), "password=") {
		return "***"
	}
	return arg
}
