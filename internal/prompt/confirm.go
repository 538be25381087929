package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/oukeidos/qrscan/internal/files"
)

type Confirmer struct {
	In            io.Reader
	Out           io.Writer
	IsInteractive func() bool
}

func DefaultConfirmer() Confirmer {
	return Confirmer{
		In:  os.Stdin,
		Out: os.Stderr,
		IsInteractive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

func (c Confirmer) ConfirmOverwrite(path string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if c.IsInteractive == nil || !c.IsInteractive() {
		return false, fmt.Errorf("non-interactive stdin: use -y to overwrite existing output")
	}
	if c.Out != nil {
		fmt.Fprintf(c.Out, "Warning: Output file %s already exists. Overwrite? (y/n): ", path)
	}
	reader := bufio.NewReader(c.In)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

// ResolveOutput picks the path a result is written to. A free path is used
// as is. An existing one is overwritten when force is set or the user agrees;
// otherwise a collision-free sibling from files.SafePath is returned.
func (c Confirmer) ResolveOutput(path string, force bool) (string, error) {
	if force {
		return path, nil
	}
	alt, changed, err := files.SafePath(path)
	if err != nil {
		return "", err
	}
	if !changed {
		return path, nil
	}
	if c.IsInteractive != nil && c.IsInteractive() {
		ok, err := c.ConfirmOverwrite(path, false)
		if err != nil {
			return "", err
		}
		if ok {
			return path, nil
		}
	}
	if c.Out != nil {
		fmt.Fprintf(c.Out, "Output file %s exists; writing to %s instead\n", path, alt)
	}
	return alt, nil
}
