package ui

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/subject"
)

// minNameSimilarity is the lowest similarity ratio accepted for a fuzzy subject match.
const minNameSimilarity = 0.6

var ErrSubjectNotFound = errors.New("disciplina não encontrada")

// ResolveSubject finds a subject by ID or by name.
// Names are matched exactly, then as a unique substring, then by similarity (ignoring case).
func ResolveSubject(subjects []subject.Subject, query string) (subject.Subject, error) {
	query = core.CleanString(query)
	if query == "" {
		return subject.Subject{}, ErrSubjectNotFound
	}
	if id, err := strconv.Atoi(query); err == nil {
		for _, s := range subjects {
			if s.ID == id {
				return s, nil
			}
		}
		return subject.Subject{}, ErrSubjectNotFound
	}

	lquery := strings.ToLower(query)
	var partial []subject.Subject
	for _, s := range subjects {
		name := strings.ToLower(s.Name)
		if name == lquery {
			return s, nil
		}
		if strings.Contains(name, lquery) {
			partial = append(partial, s)
		}
	}
	if len(partial) == 1 {
		return partial[0], nil
	}

	var (
		best      subject.Subject
		bestRatio float64
	)
	for _, s := range subjects {
		if r := similarity(lquery, strings.ToLower(s.Name)); r > bestRatio {
			best, bestRatio = s, r
		}
	}
	if bestRatio < minNameSimilarity {
		return subject.Subject{}, ErrSubjectNotFound
	}
	return best, nil
}

func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}
