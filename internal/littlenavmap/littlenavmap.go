// Package littlenavmap reads and writes the Little Navmap .lnmpln flight
// plan container. Only the waypoint list is touched by route processing;
// every other element round-trips unchanged.
package littlenavmap

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lowlevel-nav/planner/internal/plan"
)

const (
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "https://www.littlenavmap.org/schema/lnmpln.xsd"
)

// File is the root <LittleNavmap> document.
type File struct {
	XMLName        xml.Name   `xml:"LittleNavmap"`
	XSINamespace   string     `xml:"xmlns:xsi,attr,omitempty"`
	SchemaLocation string     `xml:"xsi:noNamespaceSchemaLocation,attr,omitempty"`
	Flightplan     Flightplan `xml:"Flightplan"`
}

// Flightplan holds the plan metadata and the waypoint list.
type Flightplan struct {
	Header              Header              `xml:"Header"`
	SimData             CycleValue          `xml:"SimData"`
	NavData             CycleValue          `xml:"NavData"`
	AircraftPerformance AircraftPerformance `xml:"AircraftPerformance"`
	Waypoints           Waypoints           `xml:"Waypoints"`
}

// Header is the plan metadata block.
type Header struct {
	FlightplanType string  `xml:"FlightplanType"`
	CruisingAlt    int     `xml:"CruisingAlt"`
	CruisingAltF   float64 `xml:"CruisingAltF"`
	CreationDate   string  `xml:"CreationDate"`
	FileVersion    string  `xml:"FileVersion"`
	ProgramName    string  `xml:"ProgramName"`
	ProgramVersion string  `xml:"ProgramVersion"`
	Documentation  string  `xml:"Documentation"`
}

// CycleValue is an AIRAC-cycled value such as <SimData Cycle="2410">MSFS</SimData>.
type CycleValue struct {
	Cycle string `xml:"Cycle,attr"`
	Value string `xml:",chardata"`
}

// AircraftPerformance names the performance profile the plan was built with.
type AircraftPerformance struct {
	FilePath string `xml:"FilePath,omitempty"`
	Type     string `xml:"Type"`
	Name     string `xml:"Name"`
}

// Waypoints wraps the waypoint list element.
type Waypoints struct {
	Waypoint []Waypoint `xml:"Waypoint"`
}

// Waypoint is one route entry as stored in the file.
type Waypoint struct {
	Name    string `xml:"Name,omitempty"`
	Ident   string `xml:"Ident"`
	Type    string `xml:"Type"`
	Region  string `xml:"Region,omitempty"`
	Comment string `xml:"Comment,omitempty"`
	Pos     Pos    `xml:"Pos"`
}

// Pos carries the position attributes. Altitude is a float in the file and
// truncated to integer feet in the engine's model.
type Pos struct {
	Lon float64 `xml:"Lon,attr"`
	Lat float64 `xml:"Lat,attr"`
	Alt float64 `xml:"Alt,attr"`
}

// Read parses a .lnmpln file.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("littlenavmap: reading %s: %w", path, err)
	}
	var f File
	if err := xml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("littlenavmap: parsing %s: %w", path, err)
	}
	return &f, nil
}

// Write serializes the plan to path, restoring the schema attributes if the
// source document did not carry them.
func (f *File) Write(path string) error {
	if f.XSINamespace == "" {
		f.XSINamespace = xsiNamespace
	}
	if f.SchemaLocation == "" {
		f.SchemaLocation = schemaLocation
	}
	data, err := xml.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("littlenavmap: encoding plan: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("littlenavmap: writing %s: %w", path, err)
	}
	return nil
}

// Route converts the stored waypoint list to the engine's model.
func (f *File) Route() []plan.Waypoint {
	wps := f.Flightplan.Waypoints.Waypoint
	route := make([]plan.Waypoint, 0, len(wps))
	for _, wp := range wps {
		route = append(route, plan.Waypoint{
			Name:    wp.Name,
			Ident:   wp.Ident,
			Type:    plan.WaypointType(wp.Type),
			Region:  wp.Region,
			Comment: wp.Comment,
			Pos: plan.Position{
				Lon: wp.Pos.Lon,
				Lat: wp.Pos.Lat,
				Alt: int(wp.Pos.Alt),
			},
		})
	}
	return route
}

// SetRoute replaces the stored waypoint list with the processed route.
func (f *File) SetRoute(route []plan.Waypoint) {
	wps := make([]Waypoint, 0, len(route))
	for _, wp := range route {
		wps = append(wps, Waypoint{
			Name:    wp.Name,
			Ident:   wp.Ident,
			Type:    string(wp.Type),
			Region:  wp.Region,
			Comment: wp.Comment,
			Pos: Pos{
				Lon: wp.Pos.Lon,
				Lat: wp.Pos.Lat,
				Alt: float64(wp.Pos.Alt),
			},
		})
	}
	f.Flightplan.Waypoints.Waypoint = wps
}

// ProcessedPath derives the output filename for a processed plan:
// "route.lnmpln" becomes "route [processed].lnmpln" in the same directory.
func ProcessedPath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return stem + " [processed]" + ext
}
