package munge

import (
	"fmt"
	"os"
)

// Fatal is invoked on conditions the harness cannot continue from: a
// truncated record description, a malformed or out-of-range edit, or an
// unknown edit action. The default handler prints the message to stderr and
// terminates the process. Tests may replace it; a replacement must not
// return normally (panic is the usual choice).
var Fatal = func(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Fatal error: "+format+"\n", args...)
	os.Exit(1)
}
