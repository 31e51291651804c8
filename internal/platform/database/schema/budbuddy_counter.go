package schema

// CounterTable represents a moderated puff counter table
// ('budbuddy.users' or 'budbuddy.guilds').
type CounterTable struct {
	Table       string
	ID          string
	Puffs       string
	Blacklisted string
	CreatedAt   string
	UpdatedAt   string
}

// BotUser is the schema definition for budbuddy.users
var BotUser = CounterTable{
	Table:       "budbuddy.users",
	ID:          "id",
	Puffs:       "puffs",
	Blacklisted: "blacklisted",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// BotGuild is the schema definition for budbuddy.guilds
var BotGuild = CounterTable{
	Table:       "budbuddy.guilds",
	ID:          "id",
	Puffs:       "puffs",
	Blacklisted: "blacklisted",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Columns returns all standard column names
func (t CounterTable) Columns() []string {
	return []string{t.ID, t.Puffs, t.Blacklisted, t.CreatedAt, t.UpdatedAt}
}
