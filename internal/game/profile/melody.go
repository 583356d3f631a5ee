package profile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownSong is returned for a melody song key that is not in the song table.
var ErrUnknownSong = errors.New("unknown melody song")

// MelodyModifierID is the ID of the intelligence modifier melody completions grant.
const MelodyModifierID = "Melody"

// Song is one harp song whose perfect completion grants intelligence.
type Song struct {
	Key          string
	DisplayName  string
	Intelligence int64
}

var songs = map[string]Song{}

func init() {
	for _, s := range []Song{
		{"song_hymn_joy_perfect_completions", "Hymn to the Joy", 1},
		{"song_frere_jacques_perfect_completions", "Frère Jacques", 1},
		{"song_amazing_grace_perfect_completions", "Amazing Grace", 1},
		{"song_brahms_perfect_completions", "Brahm's Lullaby", 2},
		{"song_happy_birthday_perfect_completions", "Happy Birthday to You", 2},
		{"song_greensleeves_perfect_completions", "Greensleeves", 2},
		{"song_jeopardy_perfect_completions", "Geothermy?", 3},
		{"song_minuet_perfect_completions", "Minuet", 3},
		{"song_joy_world_perfect_completions", "Joy to the World", 3},
		{"song_pure_imagination_perfect_completions", "Godly Imagination", 4},
		{"song_vie_en_rose_perfect_completions", "La Vie en Rose", 4},
		{"song_fire_and_flame_perfect_completions", "Through the Campfire", 1},
		{"song_pachelbel_perfect_completions", "Pachelbel", 1},
	} {
		songs[s.Key] = s
	}
}

// Songs returns every known song ordered by key.
func Songs() []Song {
	out := make([]Song, 0, len(songs))
	for _, s := range songs {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b Song) int { return strings.Compare(a.Key, b.Key) })
	return out
}

// MelodyIntelligence sums the intelligence granted by the completed songs.
//
// Postcondition: Returns an error wrapping ErrUnknownSong naming the first
// unrecognised key; the sum is zero in that case.
func MelodyIntelligence(keys []string) (decimal.Decimal, error) {
	var sum int64
	for _, k := range keys {
		s, ok := songs[k]
		if !ok {
			return decimal.Zero, fmt.Errorf("%q: %w", k, ErrUnknownSong)
		}
		sum += s.Intelligence
	}
	return decimal.NewFromInt(sum), nil
}
