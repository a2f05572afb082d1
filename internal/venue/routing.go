package venue

import "strings"

// Handling departments with special routing.
const (
	DepartmentSA  = "sa"
	DepartmentPPK = "ppk"
)

// Requirements are derived once from the venue at booking creation and
// stored on the booking. They are never recomputed.
type Requirements struct {
	PaymentRequired   bool
	DocumentsRequired bool
	RequiresApproval  bool
}

// Route derives booking requirements from a venue's handling department:
//   - ppk venues require payment and documents
//   - sa venues require approval and documents
//   - any other department requires nothing extra
func Route(handledBy string) Requirements {
	d := strings.ToLower(strings.TrimSpace(handledBy))
	return Requirements{
		PaymentRequired:   d == DepartmentPPK,
		DocumentsRequired: d == DepartmentSA || d == DepartmentPPK,
		RequiresApproval:  d == DepartmentSA,
	}
}
