package theory

import "fmt"

// Catalog error codes (T100-T199).
const (
	// ErrBadToken indicates an interval token that does not match the
	// degree+quality grammar at all.
	ErrBadToken = "T100"
	// ErrBadDegree indicates a degree outside 1..15.
	ErrBadDegree = "T101"
	// ErrQualityMismatch indicates P on a major-class degree or M/m on a
	// perfect-class degree.
	ErrQualityMismatch = "T102"
	// ErrBadQuality indicates an unknown or mixed quality letter sequence.
	ErrBadQuality = "T103"
	// ErrBadFormula indicates a structurally invalid formula definition.
	ErrBadFormula = "T110"
	// ErrDuplicateAlias indicates two formulas claiming the same alias.
	ErrDuplicateAlias = "T111"
)

// CatalogError is a construction-time catalog definition error. It is only
// produced while compiling catalog.cue; user input never triggers it.
type CatalogError struct {
	Code    string
	Formula string // formula id, if known
	Token   string // offending interval token, if any
	Message string
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	switch {
	case e.Formula != "" && e.Token != "":
		return fmt.Sprintf("[%s] formula %s: token %q: %s", e.Code, e.Formula, e.Token, e.Message)
	case e.Formula != "":
		return fmt.Sprintf("[%s] formula %s: %s", e.Code, e.Formula, e.Message)
	case e.Token != "":
		return fmt.Sprintf("[%s] token %q: %s", e.Code, e.Token, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// degreeBase maps a scale degree (reduced mod 7) to its semitone offset in
// the major scale. Degrees above 7 extend by octave: 9 -> 2+12, 11 -> 5+12.
var degreeBase = [8]int{0: 0, 1: 0, 2: 2, 3: 4, 4: 5, 5: 7, 6: 9, 7: 11}

// maxDegree bounds interval degrees; two octaves covers every formula.
const maxDegree = 15

// perfectClass reports whether a degree is perfect-class (1, 4, 5 and their
// octave extensions). Perfect-class degrees take P/A/d qualities;
// major-class degrees take M/m/A/d.
func perfectClass(degree int) bool {
	switch (degree-1)%7 + 1 {
	case 1, 4, 5:
		return true
	}
	return false
}

// ParseInterval parses a degree+quality interval token ("1P", "3M", "5d",
// "7m", "9M", "5AA") into a semitone offset from the root.
//
// The quality adjusts the major-scale baseline: P and M leave it unchanged,
// m lowers it by one, and each A/d raises/lowers it by one (chained letters
// accumulate). P on a non-perfect degree, or M/m on a perfect degree, is a
// grammar violation and fails.
func ParseInterval(token string) (int, error) {
	i := 0
	for i < len(token) && token[i] >= '0' && token[i] <= '9' {
		i++
	}
	if i == 0 || i == len(token) {
		return 0, &CatalogError{Code: ErrBadToken, Token: token, Message: "expected <degree digits><quality letters>"}
	}
	degree := 0
	for _, c := range token[:i] {
		degree = degree*10 + int(c-'0')
	}
	if degree < 1 || degree > maxDegree {
		return 0, &CatalogError{Code: ErrBadDegree, Token: token, Message: fmt.Sprintf("degree must be 1..%d", maxDegree)}
	}
	baseline := degreeBase[(degree-1)%7+1] + 12*((degree-1)/7)

	quality := token[i:]
	switch quality[0] {
	case 'P':
		if len(quality) != 1 {
			return 0, &CatalogError{Code: ErrBadQuality, Token: token, Message: "P does not chain"}
		}
		if !perfectClass(degree) {
			return 0, &CatalogError{Code: ErrQualityMismatch, Token: token, Message: "P only valid on perfect-class degrees"}
		}
		return baseline, nil
	case 'M', 'm':
		if len(quality) != 1 {
			return 0, &CatalogError{Code: ErrBadQuality, Token: token, Message: "M/m do not chain"}
		}
		if perfectClass(degree) {
			return 0, &CatalogError{Code: ErrQualityMismatch, Token: token, Message: "M/m only valid on major-class degrees"}
		}
		if quality[0] == 'm' {
			return baseline - 1, nil
		}
		return baseline, nil
	case 'A', 'd':
		delta := 0
		for _, c := range quality {
			switch c {
			case 'A':
				delta++
			case 'd':
				delta--
			default:
				return 0, &CatalogError{Code: ErrBadQuality, Token: token, Message: "A/d chains must be homogeneous"}
			}
		}
		if quality[0] == 'A' && delta != len(quality) || quality[0] == 'd' && -delta != len(quality) {
			return 0, &CatalogError{Code: ErrBadQuality, Token: token, Message: "A/d chains must be homogeneous"}
		}
		return baseline + delta, nil
	}
	return 0, &CatalogError{Code: ErrBadQuality, Token: token, Message: fmt.Sprintf("unknown quality %q", quality)}
}
