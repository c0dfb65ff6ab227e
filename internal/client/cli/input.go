package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophaccount/internal/client/forms"
	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a secret without echo when stdin is a terminal. Piped
// input falls back to a plain line read so scripted sessions still work.
func GetPassword(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return GetSimpleText(reader, prompt, w)
	}

	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// fillForm prompts for every schema field missing from preset, in schema
// order. Secret fields are read with getPassword.
func fillForm(reader *bufio.Reader, w io.Writer, schema forms.Schema, preset map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(schema.Fields))
	for k, v := range preset {
		values[k] = v
	}

	for _, f := range schema.Fields {
		if _, ok := values[f.Name]; ok {
			continue
		}
		read := getSimpleText
		if f.Secret {
			read = getPassword
		}
		v, err := read(reader, f.Label, w)
		if err != nil {
			return nil, err
		}
		values[f.Name] = v
	}
	return values, nil
}
