package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/urbanmobility/mobidatasim/internal/models"
)

// One record per line, pipe-delimited key=value pairs. service_zone is this
// producer's dialect for zones.
func encodePlanningTXT(w io.Writer, services []models.PlannedService) error {
	bw := bufio.NewWriter(w)
	for _, svc := range services {
		_, err := fmt.Fprintf(bw, "line_id=%s | service_zone=%s | day_type=%s | scheduled_time=%s | frequency_min=%d\n",
			svc.LineID, svc.ServiceZone, svc.DayType, svc.ScheduledTime, svc.FrequencyMin)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}
