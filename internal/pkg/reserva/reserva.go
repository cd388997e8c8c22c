package reserva

import "fmt"

const titleSeparator = " – "

// Reservation is a booking record as returned by the reservation API.
type Reservation struct {
	ID        string `json:"id,omitempty"`
	UsuariID  string `json:"usuari_id"`
	Servei    string `json:"servei"`
	Data      string `json:"data"`
	HoraInici string `json:"hora_inici"`
	HoraFi    string `json:"hora_fi"`
}

// Request is the body sent when creating a reservation. The server assigns the id.
type Request struct {
	UsuariID  string `json:"usuari_id"`
	Servei    string `json:"servei"`
	Data      string `json:"data"`
	HoraInici string `json:"hora_inici"`
	HoraFi    string `json:"hora_fi"`
}

// ViewModel is the display projection of a Reservation handed to the calendar.
type ViewModel struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToViewModel joins the date with both times into ISO-8601 datetimes.
// An inverted start/end pair is passed through untouched.
func ToViewModel(r Reservation) ViewModel {
	return ViewModel{
		Title: r.Servei + titleSeparator + r.UsuariID,
		Start: r.Data + "T" + r.HoraInici,
		End:   r.Data + "T" + r.HoraFi,
	}
}

func ToViewModels(reservations []Reservation) []ViewModel {
	views := make([]ViewModel, 0, len(reservations))

	for _, r := range reservations {
		views = append(views, ToViewModel(r))
	}

	return views
}

// ListLine formats a reservation the way the booking form lists it.
func ListLine(r Reservation) string {
	return fmt.Sprintf("%s | %s | %s - %s", r.Servei, r.Data, r.HoraInici, r.HoraFi)
}
