package dto

// AffectedUser identifies a profile document whose storage key diverges from
// its uid field.
type AffectedUser struct {
	DocID string `json:"docId"`
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// MigrationCheckResponse reports whether a repair run is needed.
type MigrationCheckResponse struct {
	Needed bool           `json:"needed"`
	Count  int            `json:"count"`
	Users  []AffectedUser `json:"users"`
}

// MigrationRunResponse reports the outcome of a repair run.
type MigrationRunResponse struct {
	Success       bool     `json:"success"`
	MigratedCount int      `json:"migratedCount"`
	Errors        []string `json:"errors"`
}
