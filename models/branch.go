package models

import "fmt"

// Branch is a bank branch with its daily working window.
type Branch struct {
	ID          int64  `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Address     string `bson:"address" json:"address"`
	City        string `bson:"city" json:"city"`
	OpenMinute  int    `bson:"openMinute" json:"-"`  // minutes from midnight (e.g., 480 for 08:00)
	CloseMinute int    `bson:"closeMinute" json:"-"` // minutes from midnight (e.g., 960 for 16:00)
	SlotMinutes int    `bson:"slotMinutes" json:"slot_minutes"`
}

// BranchDTO is the public view of a branch.
type BranchDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	OpenTime    string `json:"open_time"`
	CloseTime   string `json:"close_time"`
	SlotMinutes int    `json:"slot_minutes"`
}

func (b Branch) OpenTime() string  { return FormatClock(b.OpenMinute) }
func (b Branch) CloseTime() string { return FormatClock(b.CloseMinute) }

func (b Branch) DTO() BranchDTO {
	return BranchDTO{
		ID:          b.ID,
		Name:        b.Name,
		Address:     b.Address,
		City:        b.City,
		OpenTime:    b.OpenTime(),
		CloseTime:   b.CloseTime(),
		SlotMinutes: b.SlotMinutes,
	}
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
