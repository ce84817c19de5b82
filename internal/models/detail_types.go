package models

import "time"

// HotelDetail is the hotel variant of an inquiry's type-specific detail row.
type HotelDetail struct {
	ID              int       `json:"id"`
	InquiryID       int       `json:"inquiry_id"`
	CheckinDate     time.Time `json:"checkin_date"`
	CheckoutDate    time.Time `json:"checkout_date"`
	NumberOfRooms   int       `json:"number_of_rooms"`
	MealPlan        string    `json:"meal_plan"`
	Destination     string    `json:"destination"`
	DurationNights  int       `json:"duration_nights"`
	HotelCategory   string    `json:"hotel_category"`
	BudgetPerPerson *float64  `json:"budget_per_person,omitempty"`
	TotalBudget     *float64  `json:"total_budget,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TicketDetail is the ticket variant.
type TicketDetail struct {
	ID            int        `json:"id"`
	InquiryID     int        `json:"inquiry_id"`
	Destination   string     `json:"destination"`
	TravelDate    time.Time  `json:"travel_date"`
	TravelMode    string     `json:"travel_mode"` // air or train
	DepartureFrom *string    `json:"departure_from,omitempty"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	TripType      string     `json:"trip_type"` // one_way or round_trip
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TransportDetail is the transport variant.
type TransportDetail struct {
	ID             int       `json:"id"`
	InquiryID      int       `json:"inquiry_id"`
	Destination    string    `json:"destination"`
	VehicleType    string    `json:"vehicle_type"`
	PickupLocation *string   `json:"pickup_location,omitempty"`
	DropLocation   *string   `json:"drop_location,omitempty"`
	PickupDate     time.Time `json:"pickup_date"`
	PickupTime     *string   `json:"pickup_time,omitempty"`
	VehicleDetails *string   `json:"vehicle_details,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HotelDetailPayload is the hotel detail create/update payload.
type HotelDetailPayload struct {
	CheckinDate     *time.Time `json:"checkin_date"`
	CheckoutDate    *time.Time `json:"checkout_date"`
	NumberOfRooms   *int       `json:"number_of_rooms"`
	MealPlan        *string    `json:"meal_plan"`
	Destination     *string    `json:"destination"`
	DurationNights  *int       `json:"duration_nights"`
	HotelCategory   *string    `json:"hotel_category"`
	BudgetPerPerson *float64   `json:"budget_per_person"`
	TotalBudget     *float64   `json:"total_budget"`
}

// TicketDetailPayload is the ticket detail create/update payload.
type TicketDetailPayload struct {
	Destination   *string    `json:"destination"`
	TravelDate    *time.Time `json:"travel_date"`
	TravelMode    *string    `json:"travel_mode"`
	DepartureFrom *string    `json:"departure_from"`
	ReturnDate    *time.Time `json:"return_date"`
	TripType      *string    `json:"trip_type"`
}

// TransportDetailPayload is the transport detail create/update payload.
type TransportDetailPayload struct {
	Destination    *string    `json:"destination"`
	VehicleType    *string    `json:"vehicle_type"`
	PickupLocation *string    `json:"pickup_location"`
	DropLocation   *string    `json:"drop_location"`
	PickupDate     *time.Time `json:"pickup_date"`
	PickupTime     *string    `json:"pickup_time"`
	VehicleDetails *string    `json:"vehicle_details"`
}
