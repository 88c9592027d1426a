package wordcheck

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed common_words.txt
var commonWordsRaw string

var (
	commonOnce sync.Once
	commonSet  map[string]struct{}
)

func commonWords() map[string]struct{} {
	commonOnce.Do(func() {
		commonSet = make(map[string]struct{})
		for _, line := range strings.Split(commonWordsRaw, "\n") {
			w := strings.TrimSpace(line)
			if w != "" && !strings.HasPrefix(w, "#") {
				commonSet[w] = struct{}{}
			}
		}
	})
	return commonSet
}

const (
	minWordLen = 2
	maxWordLen = 20

	sameCharRunLimit  = 5 // same character repeated this many times consecutively
	unitRepeatLimit   = 4 // same short unit repeated this many times
	consonantRunLimit = 5 // consecutive consonants
)

// rareLetters is the small set a token may not be entirely drawn from.
const rareLetters = "jqxz"

// heuristicAccept is the deterministic fallback used when the dictionary
// service is unreachable. The bundled common-word list is consulted first;
// otherwise a token passes when it contains a vowel, its length is within
// bounds, and it matches none of the spam patterns.
func heuristicAccept(word string) bool {
	if _, ok := commonWords()[word]; ok {
		return true
	}
	if len(word) < minWordLen || len(word) > maxWordLen {
		return false
	}
	if !strings.ContainsAny(word, "aeiou") {
		return false
	}
	if hasCharRun(word, sameCharRunLimit) {
		return false
	}
	if hasRepeatedUnit(word, 2, unitRepeatLimit) || hasRepeatedUnit(word, 3, unitRepeatLimit) {
		return false
	}
	if maxConsonantRun(word) >= consonantRunLimit {
		return false
	}
	if allFrom(word, rareLetters) {
		return false
	}
	return true
}

func hasCharRun(s string, limit int) bool {
	run := 0
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run >= limit {
			return true
		}
		prev = r
	}
	return false
}

// hasRepeatedUnit reports whether any substring unit of unitLen repeats at
// least times consecutively anywhere in s. The standard regexp package has
// no backreferences, so this is done by scanning.
func hasRepeatedUnit(s string, unitLen, times int) bool {
	need := unitLen * times
	for start := 0; start+need <= len(s); start++ {
		unit := s[start : start+unitLen]
		ok := true
		for k := 1; k < times; k++ {
			if s[start+k*unitLen:start+(k+1)*unitLen] != unit {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func maxConsonantRun(s string) int {
	best, run := 0, 0
	for _, r := range s {
		if r >= 'a' && r <= 'z' && !strings.ContainsRune("aeiou", r) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

func allFrom(s, set string) bool {
	for _, r := range s {
		if !strings.ContainsRune(set, r) {
			return false
		}
	}
	return len(s) > 0
}
