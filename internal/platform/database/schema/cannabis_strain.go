package schema

// CannabisStrainTable represents the 'cannabis.strains' table
type CannabisStrainTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	Subspecies  string
	ImageURL    string
}

// CannabisStrain is the schema definition for cannabis.strains
var CannabisStrain = CannabisStrainTable{
	Table:       "cannabis.strains",
	ID:          "id",
	Name:        "name",
	Description: "description",
	Subspecies:  "subspecies",
	ImageURL:    "image_url",
}

// Columns returns all standard column names
func (t CannabisStrainTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.Subspecies, t.ImageURL}
}

// SubspeciesType is the Postgres enum backing the subspecies column.
const SubspeciesType = "cannabis.subspecies"
