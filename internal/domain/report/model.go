package report

// AllGames selects every ingested game in read-side queries.
const AllGames int64 = 0

// UnknownLabel buckets plays whose grouping column is null.
const UnknownLabel = "unknown"

type PlayTypeCount struct {
	PlayType string
	Plays    int
}

type FormationCount struct {
	Formation string
	Plays     int
}

type DownYards struct {
	Down         int
	Plays        int
	AverageYards *float64
}

// Summary is the tendency report the dashboard renders for one game or all games.
type Summary struct {
	GameID        int64
	TotalPlays    int
	PlayTypes     []PlayTypeCount
	TopFormations []FormationCount
	YardsByDown   []DownYards
}

// RunPassSplit returns the share of run and pass plays among all plays.
func (s Summary) RunPassSplit() (run, pass float64) {
	if s.TotalPlays == 0 {
		return 0, 0
	}
	for _, item := range s.PlayTypes {
		switch item.PlayType {
		case "run":
			run = float64(item.Plays) / float64(s.TotalPlays)
		case "pass":
			pass = float64(item.Plays) / float64(s.TotalPlays)
		}
	}
	return run, pass
}
