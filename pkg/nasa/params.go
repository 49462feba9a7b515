package nasa

// DefaultRover is the rover queried when the caller does not name one.
const DefaultRover = "curiosity"

// MarsPhotosParams are the filters for a Mars Rover Photos query.
// All fields are optional; an empty Rover falls back to DefaultRover and
// empty filters are omitted from the upstream query.
type MarsPhotosParams struct {
	// Rover is the rover name (curiosity, opportunity, spirit, perseverance)
	Rover string

	// EarthDate filters photos by Earth date (YYYY-MM-DD)
	EarthDate string

	// Camera filters photos by camera abbreviation (e.g. NAVCAM, FHAZ)
	Camera string
}

// NEOFeedParams select the date range of the NeoWs close-approach feed.
// Empty dates are omitted; the upstream then applies its own defaults.
type NEOFeedParams struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
}

// SmallBodyParams identify a small body in the JPL Small-Body Database.
// At least one of SPKID or Designation should be set; both empty is passed
// through and rejected upstream.
type SmallBodyParams struct {
	// SPKID is the numeric SPK-ID of the body
	SPKID string

	// Designation is the body's designation (e.g. "433" or "2015 AB")
	Designation string
}
