package availability

import "strings"

// Section — канонические секции стенда.
type Section int

const (
	SectionUnknown Section = iota // default bucket for anything unrecognized
	SectionPRISM
	SectionHiSecOS
	SectionManual
	SectionRegression
)

func (s Section) String() string {
	switch s {
	case SectionPRISM:
		return "PRISM"
	case SectionHiSecOS:
		return "HiSecOS"
	case SectionManual:
		return "manual"
	case SectionRegression:
		return "regression"
	default:
		return "other"
	}
}

// ClassifySection maps a free-text section name to its canonical bucket.
// Matching ignores case and all whitespace ("Hi Sec OS" == "hisecos").
func ClassifySection(raw string) Section {
	key := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	switch key {
	case "prism":
		return SectionPRISM
	case "hisecos":
		return SectionHiSecOS
	case "manual":
		return SectionManual
	case "regression":
		return SectionRegression
	default:
		return SectionUnknown
	}
}
