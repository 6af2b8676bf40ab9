package importer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Tsames/lograt/internal/models"
)

var (
	// sessionHeaderRe matches: "Push Day";"2026-02-19 18:54"
	sessionHeaderRe = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2}\s+\d+:\d+)"$`)

	// exerciseHeaderRe matches: "1. Bench Press"[;"notes"]
	exerciseHeaderRe = regexp.MustCompile(`^"(\d+)\.\s+(.+?)"(?:;"(.*)")?$`)

	// setDataRe matches: 1;80;8;120 or W1;52,5;10; — the W prefix marks a
	// warmup set, weight and rest may be empty or "BW".
	setDataRe = regexp.MustCompile(`^(W?)(\d+);([^;]*);(\d+);([^;]*)$`)

	// columnHeaderRe matches: #;KG;REPS;REST
	columnHeaderRe = regexp.MustCompile(`^#;KG;REPS;REST$`)
)

// Parse reads a session CSV export and returns the parsed sessions.
func Parse(r io.Reader) ([]models.ImportedSession, error) {
	scanner := bufio.NewScanner(r)
	var sessions []models.ImportedSession
	var current *models.ImportedSession
	var currentExercise *models.ImportedExercise

	flushExercise := func() {
		if current != nil && currentExercise != nil {
			current.Exercises = append(current.Exercises, *currentExercise)
			currentExercise = nil
		}
	}
	flushSession := func() {
		flushExercise()
		if current != nil {
			sessions = append(sessions, *current)
			current = nil
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Blank line = session boundary
		if line == "" {
			flushSession()
			continue
		}

		// Skip column headers
		if columnHeaderRe.MatchString(line) {
			continue
		}

		if m := sessionHeaderRe.FindStringSubmatch(line); m != nil {
			flushSession()
			date, err := parseSessionDate(m[2])
			if err != nil {
				return nil, fmt.Errorf("parsing session date %q: %w", m[2], err)
			}
			current = &models.ImportedSession{Name: m[1], Date: date}
			continue
		}

		if m := exerciseHeaderRe.FindStringSubmatch(line); m != nil {
			if current == nil {
				return nil, fmt.Errorf("exercise without session: %q", line)
			}
			flushExercise()
			num, _ := strconv.Atoi(m[1])
			currentExercise = &models.ImportedExercise{
				Number: num,
				Name:   strings.TrimSpace(m[2]),
				Notes:  m[3],
			}
			continue
		}

		if m := setDataRe.FindStringSubmatch(line); m != nil {
			if currentExercise == nil {
				return nil, fmt.Errorf("set data without exercise: %q", line)
			}
			setNum, _ := strconv.Atoi(m[2])
			reps, _ := strconv.Atoi(m[4])
			currentExercise.Sets = append(currentExercise.Sets, models.ImportedSet{
				Number:   setNum,
				WeightKg: parseWeight(m[3]),
				Reps:     reps,
				RestSec:  parseRest(m[5]),
				IsWarmup: m[1] == "W",
			})
			continue
		}

		// Unknown line — skip silently (could be notes or other metadata)
	}

	flushSession()
	return sessions, scanner.Err()
}

// parseSessionDate parses "2026-02-19 18:54" into a time.Time.
func parseSessionDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 3:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

// parseWeight handles European decimals and bodyweight notation.
// "102,5" -> 102.5, "" or "BW" -> nil.
func parseWeight(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "BW") {
		return nil
	}
	w := parseEuropeanFloat(s)
	return &w
}

// parseRest parses the rest column as whole seconds. "" -> nil.
func parseRest(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &sec
}

// parseEuropeanFloat converts a European decimal string to float64.
// "102,5" -> 102.5, "0,5" -> 0.5
func parseEuropeanFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
