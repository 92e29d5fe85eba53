// Package wrap breaks headline text into lines that fit a pixel budget.
package wrap

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to the last kept line when text is cut short.
const Ellipsis = "…"

// ErrTooNarrow is returned when a single character does not fit the width.
var ErrTooNarrow = errors.New("wrap: width too narrow")

// MeasureFunc returns the rendered width of s.
type MeasureFunc func(s string) float64

// Lines greedily word-wraps text so that every returned line measures at
// most width. Words wider than width are split between characters. When
// maxLines > 0 and the text needs more lines, the result is cut to maxLines
// and the last line ends in Ellipsis; truncated reports that case.
func Lines(text string, width float64, maxLines int, measure MeasureFunc) (lines []string, truncated bool, err error) {
	if width <= 0 {
		return nil, false, ErrTooNarrow
	}

	var cur string
	for _, word := range strings.Fields(text) {
		cand := word
		if cur != "" {
			cand = cur + " " + word
		}
		if measure(cand) <= width {
			cur = cand
			continue
		}

		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
		if measure(word) <= width {
			cur = word
		} else {
			pieces, err := breakWord(word, width, measure)
			if err != nil {
				return nil, false, err
			}
			lines = append(lines, pieces[:len(pieces)-1]...)
			cur = pieces[len(pieces)-1]
		}

		// One line past the cap is enough to know we truncate.
		if maxLines > 0 && len(lines) > maxLines {
			break
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = withEllipsis(lines[maxLines-1], width, measure)
		truncated = true
	}
	return lines, truncated, nil
}

// breakWord splits a word that is wider than width into pieces that fit.
func breakWord(word string, width float64, measure MeasureFunc) ([]string, error) {
	var pieces []string
	var piece string
	for _, r := range word {
		cand := piece + string(r)
		if measure(cand) <= width {
			piece = cand
			continue
		}
		if piece == "" {
			return nil, ErrTooNarrow
		}
		pieces = append(pieces, piece)
		piece = string(r)
		if measure(piece) > width {
			return nil, ErrTooNarrow
		}
	}
	return append(pieces, piece), nil
}

// withEllipsis shortens s, whole words first, until s+Ellipsis fits.
func withEllipsis(s string, width float64, measure MeasureFunc) string {
	orig := s
	for {
		s = strings.TrimRight(s, " ")
		if measure(s+Ellipsis) <= width {
			return s + Ellipsis
		}
		if s == "" {
			// Even the marker alone is too wide.
			return orig
		}
		if i := strings.LastIndexByte(s, ' '); i > 0 {
			s = s[:i]
		} else {
			_, size := utf8.DecodeLastRuneInString(s)
			s = s[:len(s)-size]
		}
	}
}
