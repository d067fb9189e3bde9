package entity

import "time"

// DateLayout formato de fechas de calendario en la API y en los reportes.
const DateLayout = "2006-01-02"

// DateOf normaliza un instante a su fecha de calendario (medianoche UTC).
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
