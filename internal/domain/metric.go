package domain

type MetricStatus string

const (
	MetricStatusNormal   MetricStatus = "normal"
	MetricStatusWarning  MetricStatus = "warning"
	MetricStatusCritical MetricStatus = "critical"
)

// EnvironmentalMetric is a lab sensor reading (temperature, humidity, smoke
// level and the like) displayed on the dashboards. Status is derived from
// the configured min/max bounds at ingest time.
type EnvironmentalMetric struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Value     float64      `json:"value"`
	Unit      string       `json:"unit"`
	Status    MetricStatus `json:"status"`
	Timestamp string       `json:"timestamp"`
	MinValue  float64      `json:"minValue"`
	MaxValue  float64      `json:"maxValue"`
	Icon      string       `json:"icon,omitempty"`
}
