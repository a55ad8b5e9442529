package date

// Period is the calendar unit of a Range: a day, a month or a year.
type Period int

const (
	Daily Period = iota
	Monthly
	Yearly
)
