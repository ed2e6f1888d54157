package model

// Club carries the facility and financial inputs the engine treats as
// opaque: they feed the attendance and revenue formulas only.
type Club struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	StadiumCapacity int    `json:"stadiumCapacity"`
	DivisionTier    int    `json:"divisionTier"`
}
