package service

// The resource structs are the view objects returned by the services and
// serialized by the HTTP layer. Dates cross the boundary as DD.MM.YYYY
// strings; passwords never appear here.

// PflegerResource is the external view of a caregiver account.
type PflegerResource struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
}

// ProtokollResource is the external view of a log header, enriched with the
// owner's display name and the summed Menge of its Eintraege.
type ProtokollResource struct {
	ID            string  `json:"id"`
	Patient       string  `json:"patient"`
	Datum         string  `json:"datum"`
	Public        bool    `json:"public"`
	Closed        bool    `json:"closed"`
	Ersteller     string  `json:"ersteller"`
	ErstellerName string  `json:"erstellerName"`
	UpdatedAt     string  `json:"updatedAt"`
	GesamtMenge   float64 `json:"gesamtMenge"`
}

// EintragResource is the external view of a line item, enriched with the
// owner's display name.
type EintragResource struct {
	ID            string  `json:"id"`
	Getraenk      string  `json:"getraenk"`
	Menge         float64 `json:"menge"`
	Kommentar     string  `json:"kommentar,omitempty"`
	Ersteller     string  `json:"ersteller"`
	ErstellerName string  `json:"erstellerName"`
	CreatedAt     string  `json:"createdAt"`
	Protokoll     string  `json:"protokoll"`
}

// LoginResource is the decoded claim set of a session token.
type LoginResource struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Exp  int64  `json:"exp"`
}
