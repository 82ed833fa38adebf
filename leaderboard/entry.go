package leaderboard

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/lixenwraith/pinball/parameter"
)

var (
	ErrInvalidScore = errors.New("invalid score")
	ErrRateLimited  = errors.New("rate limited")
)

// Entry is one leaderboard row
type Entry struct {
	Name  string `json:"name" msgpack:"name" db:"name"`
	Score int64  `json:"score" msgpack:"score" db:"score"`
}

// SanitizeName keeps letters, digits, '_', '-' and spaces, collapses runs of
// spaces and caps the result at NameMaxRunes; empty names become Anonymous
func SanitizeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == ' ' {
			sb.WriteRune(r)
		}
	}

	clean := strings.Join(strings.Fields(sb.String()), " ")
	if runes := []rune(clean); len(runes) > parameter.NameMaxRunes {
		clean = strings.TrimRight(string(runes[:parameter.NameMaxRunes]), " ")
	}
	if clean == "" {
		return parameter.DefaultPlayerName
	}
	return clean
}

// ValidateScore accepts 1..MaxScore
func ValidateScore(score int64) error {
	if score <= 0 || score > parameter.MaxScore {
		return ErrInvalidScore
	}
	return nil
}

// ScoreFromFloat floors a JSON number into a score, rejecting NaN and infinities
func ScoreFromFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidScore
	}
	f = math.Floor(f)
	if f <= 0 || f > parameter.MaxScore {
		return 0, ErrInvalidScore
	}
	return int64(f), nil
}

// ClampLimit bounds a top-N request; zero means the default
func ClampLimit(n int) int {
	if n == 0 {
		n = parameter.TopDefault
	}
	return max(1, min(parameter.TopMax, n))
}

// ParseLimit reads a limit query value; unparsable input means the default
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		n = 0
	}
	return ClampLimit(n)
}

// Normalize sanitizes names, drops non-positive scores and sorts best first
// Ties keep their input order
func Normalize(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Score <= 0 {
			continue
		}
		out = append(out, Entry{Name: SanitizeName(e.Name), Score: e.Score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
