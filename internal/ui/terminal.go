package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/patrickprogramme/ytexport/internal/clipboard"
	"github.com/patrickprogramme/ytexport/internal/yt"
)

// Prompt affiché quand ni l'argument ni le presse-papier ne fournissent de vidéo.
const Prompt = "🔗 URL/ID : "

// ErrNoInput est retournée quand l'entrée standard est fermée sans saisie valide.
var ErrNoInput = errors.New("aucune URL ou ID fourni")

type terminalUI struct {
	reader   *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	readClip func() (string, error)
}

func NewTerminal() Interface {
	readClip := clipboard.ReadAll
	if clipboard.Unsupported() {
		readClip = nil
	}
	return NewTerminalWith(os.Stdin, os.Stdout, os.Stderr, readClip)
}

// NewTerminalWith construit un terminal sur des flux arbitraires ; readClip nil => pas de presse-papier.
func NewTerminalWith(in io.Reader, out, errOut io.Writer, readClip func() (string, error)) Interface {
	if readClip == nil {
		readClip = func() (string, error) { return "", errors.New("presse-papier désactivé") }
	}
	return &terminalUI{
		reader:   bufio.NewReader(in),
		out:      out,
		errOut:   errOut,
		readClip: readClip,
	}
}

func (t *terminalUI) GetVideoInput(ctx context.Context) (string, error) {
	// 1) clipboard
	if clip, err := t.readClip(); err == nil {
		if _, err := yt.ExtractVideoID(clip); err == nil {
			t.PrintInfo(ctx, fmt.Sprintf("📋 Depuis le presse-papier : %s", clip))
			return clip, nil
		}
	}
	// 2) prompt
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(t.out, Prompt)
		input, err := t.reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if _, verr := yt.ExtractVideoID(input); verr == nil {
			return input, nil
		}
		if err != nil {
			// EOF : plus rien à lire
			return "", ErrNoInput
		}
		fmt.Fprintln(t.out, "❌ URL ou ID invalide. Essayez à nouveau.")
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(t.errOut, s)
}

func (t *terminalUI) Step(ctx context.Context, label string, fn func() error) error {
	fmt.Fprintf(t.out, "⏳ %s...\n", label)
	start := time.Now()
	err := fn()
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		fmt.Fprintf(t.errOut, "❌ %s (%s) : %v\n", label, elapsed, err)
		return err
	}
	fmt.Fprintf(t.out, "✅ %s (%s)\n", label, elapsed)
	return nil
}
