package schema

// TagTable represents one of the tag dimension tables
// ('cannabis.flavors', 'cannabis.effects', 'cannabis.ailments').
type TagTable struct {
	Table string
	ID    string
	Name  string
}

// StrainTagTable represents a strain-to-tag join table.
type StrainTagTable struct {
	Table    string
	StrainID string
	TagID    string
}

// CannabisFlavor is the schema definition for cannabis.flavors
var CannabisFlavor = TagTable{
	Table: "cannabis.flavors",
	ID:    "id",
	Name:  "name",
}

// CannabisEffect is the schema definition for cannabis.effects
var CannabisEffect = TagTable{
	Table: "cannabis.effects",
	ID:    "id",
	Name:  "name",
}

// EffectIsPositive splits effects into positive and negative sets.
const EffectIsPositive = "is_positive"

// CannabisAilment is the schema definition for cannabis.ailments
var CannabisAilment = TagTable{
	Table: "cannabis.ailments",
	ID:    "id",
	Name:  "name",
}

// StrainFlavor is the schema definition for cannabis.strain_flavors
var StrainFlavor = StrainTagTable{
	Table:    "cannabis.strain_flavors",
	StrainID: "strain_id",
	TagID:    "flavor_id",
}

// StrainEffect is the schema definition for cannabis.strain_effects
var StrainEffect = StrainTagTable{
	Table:    "cannabis.strain_effects",
	StrainID: "strain_id",
	TagID:    "effect_id",
}

// StrainAilment is the schema definition for cannabis.strain_ailments
var StrainAilment = StrainTagTable{
	Table:    "cannabis.strain_ailments",
	StrainID: "strain_id",
	TagID:    "ailment_id",
}
