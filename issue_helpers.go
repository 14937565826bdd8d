package goguard

import "github.com/reoring/goguard/i18n"

// issueAt creates an Issue for the given field with a translated message.
// Engines construct their Issues directly so engine messages stay verbatim;
// this helper is only for failures raised by this package itself.
func issueAt(field, code string, data map[string]string) Issue {
	return Issue{Field: field, Type: code, Message: i18n.T(code, data)}
}
