package availability

import (
	"strconv"
	"strings"

	"labrack/internal/models"
	"labrack/internal/timeutil"
)

const (
	StatusAvailable    = "Available"
	StatusInUse        = "In Use"
	StatusNotAvailable = "Not Available"

	// Dash — пустое значение в таблице.
	Dash = "—"
)

// Row — derived point-in-time view of one device.
type Row struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	DeviceIP          string `json:"deviceIp"`
	Telnet            string `json:"telnet"`
	Status            string `json:"status"`
	ReservedBy        string `json:"reservedBy"`
	LoginActivity     string `json:"loginActivity"`
	Availability      string `json:"availability"`
	NextAvailableTime string `json:"nextAvailableTime"`
	Team              string `json:"team"`
	Section           string `json:"section"`
	SectionGroup      string `json:"sectionGroup"`
	Owner             string `json:"owner"`
	Location          string `json:"location"`
}

// Resolve computes the availability view for one device. Pure: same inputs
// and the same now give the same row, nothing is written.
func Resolve(d *models.Device, st *models.DeviceStatus, active *models.Reservation, nowMs int64) Row {
	isUp := models.EffectiveUp(d, st)

	row := Row{
		ID:           d.ID,
		Name:         d.Name,
		DeviceIP:     orDash(d.DeviceIP),
		Telnet:       TelnetString(d.ConsoleIP, d.ConsolePort),
		Team:         d.Team,
		Section:      d.Section,
		SectionGroup: ClassifySection(d.Section).String(),
		Owner:        d.Owner,
		Location:     d.Location,
	}

	if isUp {
		row.Status = "Up"
	} else {
		row.Status = "Down"
	}

	// login activity показываем только для живых устройств; на решение о
	// доступности не влияет
	row.LoginActivity = Dash
	if isUp {
		if st != nil && st.LoginActivity {
			row.LoginActivity = "Yes"
		} else {
			row.LoginActivity = "No"
		}
	}

	switch {
	case !isUp:
		row.Availability = StatusNotAvailable
		row.NextAvailableTime = Dash
		row.ReservedBy = Dash
	case active != nil && active.ActiveAt(nowMs):
		row.Availability = StatusInUse
		row.NextAvailableTime = timeutil.FormatDelta(active.EndTime - nowMs)
		row.ReservedBy = orDash(active.UserName)
	default:
		row.Availability = StatusAvailable
		row.NextAvailableTime = "Now"
		row.ReservedBy = Dash
	}

	return row
}

// TelnetString — консольная строка подключения, или "—" без console_ip.
func TelnetString(consoleIP string, consolePort int) string {
	if strings.TrimSpace(consoleIP) == "" {
		return Dash
	}
	return "telnet " + consoleIP + " " + strconv.Itoa(consolePort)
}

func orDash(s string) string {
	if s == "" {
		return Dash
	}
	return s
}
