package subtitles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/patrickprogramme/ytexport/pkg/model"
)

const timingSeparator = "-->"

// ParseTimestamp convertit un timestamp VTT "HH:MM:SS.mmm" (ou "MM:SS.mmm") en secondes.
func ParseTimestamp(ts string) (float64, error) {
	ts = strings.TrimSpace(ts)
	clock, frac, ok := strings.Cut(ts, ".")
	if !ok {
		return 0, fmt.Errorf("timestamp sans millisecondes: %q", ts)
	}
	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("timestamp invalide: %q", ts)
	}
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}

	var fields [4]int
	for i, p := range append(parts, frac) {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("timestamp invalide: %q", ts)
		}
		fields[i] = n
	}
	h, m, s, ms := fields[0], fields[1], fields[2], fields[3]
	if m >= 60 || s >= 60 || ms >= 1000 {
		return 0, fmt.Errorf("timestamp hors bornes: %q", ts)
	}
	return float64(h)*3600 + float64(m)*60 + float64(s) + float64(ms)/1000, nil
}

// ParseVTTFile ouvre path et le parse avec ParseVTT.
func ParseVTTFile(path string) ([]model.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ouverture du fichier vtt %s: %w", path, err)
	}
	defer f.Close()
	return ParseVTT(f)
}

// ParseVTT lit un fichier de sous-titres à base de cues (WebVTT) et retourne
// un segment par cue ayant du texte.
//
// Une cue mal formée (ligne de timing qui ne se découpe pas en deux, timestamp
// illisible) est ignorée : ses lignes de texte sont consommées et le parcours
// continue. Les lignes ne sont pas bornées en longueur. Seule une erreur de
// lecture du flux est retournée, avec les segments déjà extraits.
func ParseVTT(r io.Reader) ([]model.Segment, error) {
	lr := &lineReader{r: bufio.NewReader(r)}

	var segs []model.Segment
	for line, more := lr.next(); more; line, more = lr.next() {
		if !strings.Contains(line, timingSeparator) {
			continue
		}

		start, end, ok := parseTimingLine(line)

		// lignes de texte jusqu'à la première ligne vide (fin du bloc) ou EOF
		var text []string
		for tline, more := lr.next(); more; tline, more = lr.next() {
			tline = strings.TrimRight(tline, " \t\r\n")
			if tline == "" {
				break
			}
			text = append(text, tline)
		}

		if !ok || len(text) == 0 {
			continue
		}
		segs = append(segs, model.Segment{
			Start:    start,
			Duration: end - start,
			Text:     strings.Join(text, " "),
		})
	}
	if lr.err != nil {
		return segs, fmt.Errorf("lecture vtt: %w", lr.err)
	}
	return segs, nil
}

// lineReader lit ligne par ligne sans limite de taille ; err garde la
// première erreur autre que io.EOF.
type lineReader struct {
	r    *bufio.Reader
	err  error
	done bool
}

func (lr *lineReader) next() (string, bool) {
	if lr.done {
		return "", false
	}
	line, err := lr.r.ReadString('\n')
	if err != nil {
		lr.done = true
		if !errors.Is(err, io.EOF) {
			lr.err = err
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimSuffix(line, "\n"), true
}

// parseTimingLine découpe "start --> end [réglages]" ; ok == false si la ligne est inexploitable.
func parseTimingLine(line string) (start, end float64, ok bool) {
	parts := strings.Split(strings.TrimSpace(line), " "+timingSeparator+" ")
	if len(parts) != 2 {
		return 0, 0, false
	}
	startFields := strings.Fields(parts[0])
	endFields := strings.Fields(parts[1])
	if len(startFields) == 0 || len(endFields) == 0 {
		return 0, 0, false
	}

	start, err := ParseTimestamp(startFields[0])
	if err != nil {
		return 0, 0, false
	}
	end, err = ParseTimestamp(endFields[0])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
