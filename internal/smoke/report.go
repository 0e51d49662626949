package smoke

import (
	"fmt"
	"io"
)

// Report prints the outcome the way operators expect to read it:
// "Status:" and "Body:" lines on success, a single "Error:" line otherwise.
// The returned error only concerns writing to w.
func Report(w io.Writer, o Outcome) error {
	if o.Err != nil {
		_, err := fmt.Fprintf(w, "Error: %v\n", o.Err)
		return err
	}
	if o.Response == nil {
		_, err := fmt.Fprintln(w, "Error: no response")
		return err
	}
	if _, err := fmt.Fprintf(w, "Status: %d\n", o.Response.StatusCode); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Body: %s\n", o.Response.Body)
	return err
}
