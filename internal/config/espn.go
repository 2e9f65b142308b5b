package config

// ESPNConfig controls how we talk to the ESPN fantasy API.
type ESPNConfig struct {
	ReadBaseURL       string
	WriteBaseURL      string
	ScoreboardBaseURL string
	EspnS2            string
	SWID              string
	LeagueID          int
	TeamID            int
	SeasonYear        int
}

func loadESPN() ESPNConfig {
	return ESPNConfig{
		ReadBaseURL:       envOrDefault(envEspnReadBaseURL, ""),
		WriteBaseURL:      envOrDefault(envEspnWriteBaseURL, ""),
		ScoreboardBaseURL: envOrDefault(envEspnScoreboard, ""),
		EspnS2:            envOrDefault(envEspnS2, ""),
		SWID:              envOrDefault(envEspnSWID, ""),
		LeagueID:          intEnvOrDefault(envLeagueID, 0),
		TeamID:            intEnvOrDefault(envTeamID, 0),
		SeasonYear:        intEnvOrDefault(envSeasonYear, 0),
	}
}
