package reservation

// Space is a bookable room with a fixed seating capacity.
type Space struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// TimeSlots are the one-hour booking windows offered every day, 09:00 to 21:00.
var TimeSlots = []string{
	"09:00-10:00", "10:00-11:00", "11:00-12:00",
	"12:00-13:00", "13:00-14:00", "14:00-15:00",
	"15:00-16:00", "16:00-17:00", "17:00-18:00",
	"18:00-19:00", "19:00-20:00", "20:00-21:00",
}

// DefaultSpaces is the dormitory's room catalog.
var DefaultSpaces = []Space{
	{ID: "ROOM_A", Name: "스터디룸 A", Capacity: 2},
	{ID: "ROOM_B", Name: "스터디룸 B", Capacity: 2},
	{ID: "HALL_1", Name: "다목적홀 1", Capacity: 10},
}
