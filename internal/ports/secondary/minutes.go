package secondary

import "context"

// MinutesGenerator produces the minutes (ata) of a held sitting and returns an
// opaque reference to the stored document.
type MinutesGenerator interface {
	Generate(ctx context.Context, draft *MinutesDraft) (string, error)
}

// MinutesReader retrieves stored minutes by reference.
type MinutesReader interface {
	GetByRef(ctx context.Context, ref string) (*MinutesRecord, error)
}

// MinutesDraft is everything the generator needs to write the minutes.
type MinutesDraft struct {
	Sitting    SittingRecord
	Attendance []AttendanceRecord
	Items      []MinutesItem
}

// MinutesItem is one agenda line of the minutes with its outcome.
type MinutesItem struct {
	ItemID      string
	MatterID    string
	MatterTitle string
	Section     string
	Position    int
	Status      string
	Yes         int
	No          int
	Abstain     int
	Outcome     string
}

// MinutesRecord represents stored minutes.
type MinutesRecord struct {
	Ref       string
	SittingID string
	Body      string
	CreatedAt string
}
