package domain

// EntityLabel is the semantic category assigned by an entity recognizer.
type EntityLabel string

const (
	// EntityLabelChemical covers medications and other chemical substances.
	EntityLabelChemical EntityLabel = "CHEMICAL"
)

// Entity is a span of text tagged with a semantic category.
// Start and End are byte offsets into the analyzed text.
type Entity struct {
	Text  string      `json:"text"`
	Label EntityLabel `json:"label"`
	Start int         `json:"start"`
	End   int         `json:"end"`
}
