package mapview

import (
	"html/template"
	"strings"

	"github.com/paulmach/orb"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/pkg/clients/mapbox"
)

const markerSize = 20

// Health colors, shared with the legend shown next to the map.
const (
	ColorHealthy        = "#10B981"
	ColorSick           = "#EF4444"
	ColorUnderTreatment = "#F59E0B"
	ColorUnknown        = "#6B7280"
)

// HealthColor maps a health status to its marker fill color.
func HealthColor(status models.HealthStatus) string {
	switch status {
	case models.HealthHealthy:
		return ColorHealthy
	case models.HealthSick:
		return ColorSick
	case models.HealthUnderTreatment:
		return ColorUnderTreatment
	default:
		return ColorUnknown
	}
}

var popupTemplate = template.Must(template.New("popup").Parse(
	`<div class="p-2">` +
		`<h3 class="font-bold text-sm">{{.TagID}}</h3>` +
		`<p class="text-xs text-gray-600">{{.Breed}}</p>` +
		`<p class="text-xs">Age: {{.Age}} years</p>` +
		`<p class="text-xs">Weight: {{.Weight}} kg</p>` +
		`<p class="text-xs">Status: <span class="font-medium">{{.HealthStatus}}</span></p>` +
		`<p class="text-xs text-gray-500">{{.BranchName}}</p>` +
		`</div>`))

// PopupHTML renders the info popup attached to an animal's marker.
func PopupHTML(a models.Animal) string {
	var b strings.Builder
	if err := popupTemplate.Execute(&b, a); err != nil {
		return template.HTMLEscapeString(a.TagID)
	}
	return b.String()
}

// Marker is one animal's marker on a ready surface.
type Marker struct {
	AnimalID  string            `json:"animalId"`
	TagID     string            `json:"tagId"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Style     mapbox.MarkerStyle `json:"style"`
	Popup     string            `json:"popup"`
	PopupOpen bool              `json:"popupOpen"`

	handle mapbox.MarkerID
}

func (m *Marker) position() orb.Point {
	return orb.Point{m.Longitude, m.Latitude}
}

// sameAs reports whether the marker already shows what desired describes.
func (m *Marker) sameAs(desired *Marker) bool {
	return m.Latitude == desired.Latitude &&
		m.Longitude == desired.Longitude &&
		m.Style == desired.Style &&
		m.Popup == desired.Popup
}

func describe(a models.Animal) *Marker {
	return &Marker{
		AnimalID:  a.ID,
		TagID:     a.TagID,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		Style:     mapbox.MarkerStyle{Color: HealthColor(a.HealthStatus), Size: markerSize},
		Popup:     PopupHTML(a),
	}
}
