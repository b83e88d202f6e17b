package fitness

const DefaultSeriesLength = 7

type VolumePoint struct {
	Date      string  `json:"date"`
	Volume    float64 `json:"volume"`
	Exercises int     `json:"exercises"`
}

// VolumeSeries returns the last n sessions as chart points, oldest first.
func VolumeSeries(history []SessionRecord, n int) []VolumePoint {
	if n <= 0 {
		n = DefaultSeriesLength
	}

	start := 0
	if len(history) > n {
		start = len(history) - n
	}

	points := make([]VolumePoint, 0, len(history)-start)
	for _, sr := range history[start:] {
		points = append(points, VolumePoint{
			Date:      sr.Date,
			Volume:    sr.TotalVolume,
			Exercises: len(sr.ExercisesCompleted),
		})
	}
	return points
}

type Totals struct {
	Sessions int     `json:"sessions"`
	Sets     int     `json:"sets"`
	Volume   float64 `json:"volume"`
}

func HistoryTotals(history []SessionRecord) Totals {
	t := Totals{Sessions: len(history)}
	for _, sr := range history {
		t.Sets += sr.TotalSets()
		t.Volume += sr.TotalVolume
	}
	return t
}
