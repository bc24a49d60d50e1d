// Package plan defines the waypoint value types shared by every stage of the
// route processing pipeline.
package plan

// WaypointType categorizes a waypoint.
type WaypointType string

const (
	TypeAirport  WaypointType = "AIRPORT"
	TypeVOR      WaypointType = "VOR"
	TypeNDB      WaypointType = "NDB"
	TypeUser     WaypointType = "USER"
	TypeWaypoint WaypointType = "WAYPOINT"
)

// Position is a geographic point. Altitude is in integer feet.
type Position struct {
	Lon float64
	Lat float64
	Alt int
}

// Waypoint is one entry of an ordered route. Name, Region and Comment are
// optional; the empty string means absent. The engine reassigns Ident and
// Comment on the copies it produces and never mutates its input.
type Waypoint struct {
	Name    string
	Ident   string
	Type    WaypointType
	Region  string
	Comment string
	Pos     Position
}
