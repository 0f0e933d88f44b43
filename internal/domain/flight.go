package domain

import "fmt"

type Flight struct {
	ID         int64  `json:"fid"`
	DayOfMonth int    `json:"day_of_month"`
	Carrier    string `json:"carrier_id"`
	Number     string `json:"flight_num"`
	Origin     string `json:"origin_city"`
	Dest       string `json:"dest_city"`
	Duration   int    `json:"actual_time"`
	Capacity   int    `json:"capacity"`
	Price      int64  `json:"price"`
	Canceled   bool   `json:"canceled"`
}

func (f Flight) String() string {
	return fmt.Sprintf("ID: %d Day: %d Carrier: %s Number: %s Origin: %s Dest: %s Duration: %d Capacity: %d Price: %d",
		f.ID, f.DayOfMonth, f.Carrier, f.Number, f.Origin, f.Dest, f.Duration, f.Capacity, f.Price)
}
