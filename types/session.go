package types

import "time"

// Session is one trading day's subsequence of bars. Bars keep their original
// order; a session never splits mid-day.
type Session struct {
	Date time.Time
	Bars []Bar
}

// SplitSessions groups a bar series by calendar date. The input is assumed to
// be validated (strictly increasing timestamps), so each date appears as one
// contiguous run.
func SplitSessions(bars []Bar) []Session {
	var sessions []Session
	for _, b := range bars {
		y, m, d := b.Timestamp.Date()
		date := time.Date(y, m, d, 0, 0, 0, 0, b.Timestamp.Location())
		if n := len(sessions); n > 0 && sessions[n-1].Date.Equal(date) {
			sessions[n-1].Bars = append(sessions[n-1].Bars, b)
			continue
		}
		sessions = append(sessions, Session{Date: date, Bars: []Bar{b}})
	}
	return sessions
}
