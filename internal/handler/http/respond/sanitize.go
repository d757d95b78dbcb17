package respond

import "regexp"

// redactions run in order; the Anthropic key pattern must precede the
// generic sk- one.
var redactions = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`), "sk-ant-****"},
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`), "sk-****"},
	{regexp.MustCompile(`hf_[a-zA-Z0-9]{10,}`), "hf_****"},
	{regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._\-]+`), "Bearer ****"},
	{regexp.MustCompile(`(?i)\b(api_key|access_token|token)=[^&\s]+`), "$1=****"},
	// DSN password
	{regexp.MustCompile(`://([^:/]+):([^@]+)@`), "://$1:****@"},
}

// SanitizeError returns the error message with API keys, tokens and DSN
// passwords masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, r := range redactions {
		msg = r.re.ReplaceAllString(msg, r.repl)
	}
	return msg
}
