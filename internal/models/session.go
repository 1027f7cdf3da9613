package models

// PersistedSession is the saved copy of an in-progress form.
type PersistedSession struct {
	Answers Answers `json:"answers"`
	Step    int     `json:"step"`
	HasData bool    `json:"hasData"`
}

// IsValidStep reports whether step lies within MinStep..MaxStep.
func IsValidStep(step int) bool {
	return step >= MinStep && step <= MaxStep
}
