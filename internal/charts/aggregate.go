package charts

import "radio-charts/internal/models"

// SongCount is the number of plays of one song.
type SongCount struct {
	Song  models.Song
	Count int
}

// Aggregate counts plays per song. Songs are keyed by ID, so equal titles by
// different performers stay apart. Every play record counts, including
// simultaneous plays on different stations.
func Aggregate(plays []models.Play) map[uint]*SongCount {
	counts := make(map[uint]*SongCount)
	for _, p := range plays {
		sc, ok := counts[p.SongID]
		if !ok {
			sc = &SongCount{Song: p.Song}
			sc.Song.ID = p.SongID
			counts[p.SongID] = sc
		}
		sc.Count++
	}
	return counts
}
