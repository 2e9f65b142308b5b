package lineup

import (
	"time"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/domain"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/timeutil"
)

// BuildGameDays produces one GameDay per scoring period in the inclusive
// range [currentPeriod, finalPeriod], assuming one period per calendar day
// anchored at today: period currentPeriod+k falls on today+k.
//
// calendar is keyed by 8-digit YYYYMMDD date strings; dates with no recorded
// games yield an empty playing-team set rather than an error.
func BuildGameDays(calendar map[string]map[int]struct{}, currentPeriod, finalPeriod int, today time.Time) []domain.GameDay {
	if finalPeriod < currentPeriod {
		return nil
	}

	anchor := timeutil.Midnight(today)
	days := make([]domain.GameDay, 0, finalPeriod-currentPeriod+1)

	for period := currentPeriod; period <= finalPeriod; period++ {
		date := timeutil.AddDays(anchor, period-currentPeriod)
		teams := calendar[timeutil.CompactDate(date)]
		if teams == nil {
			teams = map[int]struct{}{}
		}
		days = append(days, domain.GameDay{
			ScoringPeriodID: period,
			PlayingTeamIDs:  teams,
			Date:            timeutil.FormatDate(date),
		})
	}

	return days
}
