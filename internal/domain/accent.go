package domain

type Accent string

const (
	AccentNeutral  Accent = "neutral"
	AccentBritish  Accent = "british"
	AccentAmerican Accent = "american"
)

var Accents = []Accent{AccentNeutral, AccentBritish, AccentAmerican}

func (a Accent) Valid() bool {
	switch a {
	case AccentNeutral, AccentBritish, AccentAmerican:
		return true
	}
	return false
}
