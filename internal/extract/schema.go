package extract

import (
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/pboc-bom/internal/coerce"
	"github.com/joseph-ayodele/pboc-bom/internal/common"
)

// Layout tells which tree variant a report uses.
type Layout int

const (
	// LayoutStructured trees carry contractInfo/awardCreditInfo objects per account.
	LayoutStructured Layout = 0
	// LayoutNarrative trees carry the head-of-record statement text per account.
	LayoutNarrative Layout = 1
)

func (l Layout) String() string {
	if l == LayoutStructured {
		return "structured"
	}
	return "narrative"
}

var (
	//go:embed schemas/narrative.json
	narrativeSchemaJSON string
	//go:embed schemas/structured.json
	structuredSchemaJSON string

	narrativeSchema  = jsonschema.MustCompileString("narrative.json", narrativeSchemaJSON)
	structuredSchema = jsonschema.MustCompileString("structured.json", structuredSchemaJSON)
)

// DetectLayout guesses the variant of a decoded tree: structured trees use
// the lower-case "loancard" key or put contractInfo on their loans.
func DetectLayout(tree any) Layout {
	if coerce.Lookup(tree, "creditDetail,loancard", nil) != nil {
		return LayoutStructured
	}
	if coerce.Lookup(tree, "creditDetail,loan,0,contractInfo", nil) != nil {
		return LayoutStructured
	}
	return LayoutNarrative
}

// ValidateTree checks a decoded tree against the schema of its layout.
func ValidateTree(tree any, layout Layout) error {
	s := narrativeSchema
	if layout == LayoutStructured {
		s = structuredSchema
	}
	if err := s.Validate(tree); err != nil {
		return &common.StructureError{Section: layout.String() + " tree", Detail: fmt.Sprint(err)}
	}
	return nil
}
