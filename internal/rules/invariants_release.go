//go:build !rulesdebug

package rules

// checkInvariants is a no-op outside the rulesdebug build: the real
// checker in invariants_debug.go is compiled only with -tags rulesdebug.
func checkInvariants(*Board) {}
