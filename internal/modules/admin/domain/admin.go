package domain

import "time"

type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Active    bool
	CreatedAt time.Time
}

type NewUser struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserPatch changes only the fields that are set.
type UserPatch struct {
	Role   *string
	Active *bool
}

func (p UserPatch) Empty() bool {
	return p.Role == nil && p.Active == nil
}

// Creator is a content creator as seen by the admin that manages them.
type Creator struct {
	ID            string
	Name          string
	Email         string
	AssignedCount int
	PendingCount  int
}

type Prompt struct {
	ID        string
	Name      string
	Provider  string
	Template  string
	UpdatedAt time.Time
}

type Guideline struct {
	ID          string
	Title       string
	ContentType string
	Body        string
	UpdatedAt   time.Time
}

// IsNew reports whether saving g creates it rather than replacing it.
func (g Guideline) IsNew() bool {
	return g.ID == ""
}
