package weather

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"weather-mcp/internal/domain/entity"
	"weather-mcp/internal/domain/model/external"
)

const recordSeparator = "\n---\n"

// FormatCurrent dumps the whole provider document as JSON indented with two spaces,
// keeping the provider's key order and number text.
func FormatCurrent(document external.OpenMeteoResponse) (string, error) {
	var body bytes.Buffer
	if err := json.Indent(&body, document.Raw(), "", "  "); err != nil {
		return "", fmt.Errorf("indent current conditions: %w", err)
	}
	return body.String(), nil
}

// ForecastRecords zips the parallel daily sequences into one record per day.
// Iteration stops at the shortest sequence; a missing daily object or sequence yields no records.
func ForecastRecords(document external.OpenMeteoResponse) []entity.WeatherForecast {
	daily, ok := document.Fields()["daily"].(map[string]any)
	if !ok {
		return nil
	}

	dates, _ := daily["time"].([]any)
	maxTemperatures, _ := daily["temperature_2m_max"].([]any)
	minTemperatures, _ := daily["temperature_2m_min"].([]any)
	precipitations, _ := daily["precipitation_sum"].([]any)

	size := min(len(dates), len(maxTemperatures), len(minTemperatures), len(precipitations))
	records := make([]entity.WeatherForecast, 0, size)
	for i := range size {
		records = append(records, entity.WeatherForecast{
			Date:           formatValue(dates[i]),
			MaxTemperature: formatValue(maxTemperatures[i]),
			MinTemperature: formatValue(minTemperatures[i]),
			Precipitation:  formatValue(precipitations[i]),
		})
	}
	return records
}

// FormatForecast renders every forecast record as a text block, blocks separated by "---" lines.
func FormatForecast(document external.OpenMeteoResponse) string {
	records := ForecastRecords(document)

	blocks := make([]string, 0, len(records))
	for _, record := range records {
		blocks = append(blocks, fmt.Sprintf(
			"Date: %s\nMax Temperature: %s°C\nMin Temperature: %s°C\nPrecipitation: %s mm",
			record.Date, record.MaxTemperature, record.MinTemperature, record.Precipitation,
		))
	}
	return strings.Join(blocks, recordSeparator)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "N/A"
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
