package cli

import (
	"bytes"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// ExecuteCommand runs a command and returns its output
func ExecuteCommand(root *cobra.Command, args ...string) (output string, err error) {
	_, output, err = ExecuteCommandC(root, nil, args...)
	return output, err
}

// ExecuteCommandWithInput runs a command that reads input, e.g. the terminal
func ExecuteCommandWithInput(root *cobra.Command, input string, args ...string) (output string, err error) {
	_, output, err = ExecuteCommandC(root, strings.NewReader(input), args...)
	return output, err
}

// ExecuteCommandC runs a command and returns the command, its output, and any error.
// A nil in leaves the command's input untouched.
func ExecuteCommandC(root *cobra.Command, in io.Reader, args ...string) (c *cobra.Command, output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	if in != nil {
		root.SetIn(in)
	}
	root.SetArgs(args)

	c, err = root.ExecuteC()

	return c, buf.String(), err
}
