package charts

// TopPlayEntry is one row of the top report. PreviousRank is nil when the
// song did not make the previous period's ranking; a rank of 0 means it
// topped it.
type TopPlayEntry struct {
	Title         string `json:"title"`
	Performer     string `json:"performer"`
	Plays         int    `json:"plays"`
	PreviousPlays int    `json:"previous_plays"`
	Rank          int    `json:"rank"`
	PreviousRank  *int   `json:"previous_rank"`
}

type standing struct {
	count int
	rank  int
}

// Merge attaches each current song's previous-period count and rank, matched
// by song ID. Only songs present in previous are matched, so a song that had
// plays before but fell outside the previous ranking's limit reports no
// previous rank and zero previous plays.
func Merge(current, previous []RankedSong) []TopPlayEntry {
	before := make(map[uint]standing, len(previous))
	for _, r := range previous {
		before[r.Song.ID] = standing{count: r.Count, rank: r.Rank}
	}

	entries := make([]TopPlayEntry, 0, len(current))
	for _, r := range current {
		entry := TopPlayEntry{
			Title:     r.Song.Title,
			Performer: r.Song.PerformerName(),
			Plays:     r.Count,
			Rank:      r.Rank,
		}
		if s, ok := before[r.Song.ID]; ok {
			rank := s.rank
			entry.PreviousPlays = s.count
			entry.PreviousRank = &rank
		}
		entries = append(entries, entry)
	}
	return entries
}
