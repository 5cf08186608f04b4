package stdlib

import "strconv"

// parseInt and parseFloat back STRINGTOINT/STRINGTODOUBLE; kept as thin
// strconv wrappers so the built-ins in builtins_strings.go stay focused on
// argument/result plumbing.
func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
